package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/scirota/selection-api/internal/domain"
)

func TestResolveMasterContext(t *testing.T) {
	f := newFixture()
	r := NewRoleResolver(f.members, f.applications, f.affiliations)

	rc, err := r.Resolve(context.Background(), 2)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !rc.IsMaster() {
		t.Fatalf("expected master role, got %q", rc.Role)
	}
	if !rc.HasAffiliation(affiliationFirst) || !rc.HasDirection(directionRobotics) {
		t.Fatalf("expected affiliation and direction attached, got %+v", rc)
	}
}

func TestResolveSlaveDerivesFromApplication(t *testing.T) {
	f := newFixture()
	r := NewRoleResolver(f.members, f.applications, f.affiliations)

	rc, err := r.Resolve(context.Background(), 1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !rc.IsSlave() {
		t.Fatalf("expected slave role, got %q", rc.Role)
	}
	if !rc.HasDirection(directionRobotics) || !rc.HasAffiliation(affiliationFirst) {
		t.Fatalf("expected derived direction and affiliation, got %+v", rc)
	}
	if rc.HasAffiliation(affiliationSecond) {
		t.Fatalf("affiliation of an unchosen direction leaked: %+v", rc)
	}
}

func TestResolveSlaveWithoutApplication(t *testing.T) {
	f := newFixture()
	f.members.members[6] = domain.Member{ID: 6, Login: "fresh", Role: domain.RoleSlave}
	r := NewRoleResolver(f.members, f.applications, f.affiliations)

	rc, err := r.Resolve(context.Background(), 6)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(rc.DirectionIDs) != 0 || len(rc.AffiliationIDs) != 0 {
		t.Fatalf("expected empty capability set, got %+v", rc)
	}
}

func TestResolveNoRole(t *testing.T) {
	f := newFixture()
	f.members.members[8] = domain.Member{ID: 8, Login: "ghost"}
	r := NewRoleResolver(f.members, f.applications, f.affiliations)

	_, err := r.Resolve(context.Background(), 8)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for roleless member, got %v", err)
	}
}

func TestResolveAdminWithoutRole(t *testing.T) {
	f := newFixture()
	f.members.members[9] = domain.Member{ID: 9, Login: "ops", IsAdmin: true}
	r := NewRoleResolver(f.members, f.applications, f.affiliations)

	rc, err := r.Resolve(context.Background(), 9)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !rc.IsAdmin {
		t.Fatalf("expected admin flag, got %+v", rc)
	}
}

func TestFirstAffiliationFailsWhenEmpty(t *testing.T) {
	f := newFixture()
	f.members.members[10] = domain.Member{ID: 10, Login: "bare", Role: domain.RoleMaster}
	r := NewRoleResolver(f.members, f.applications, f.affiliations)

	rc, err := r.Resolve(context.Background(), 10)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if _, err := r.FirstAffiliation(context.Background(), rc); !errors.Is(err, domain.ErrNoDirectionsAssigned) {
		t.Fatalf("expected no-directions error, got %v", err)
	}
}

func TestResolverSentinelsStayDistinct(t *testing.T) {
	for _, sentinel := range []error{domain.ErrNoDirectionsAssigned, domain.ErrNoRole} {
		if !errors.Is(sentinel, domain.ErrForbidden) {
			t.Fatalf("%v must still map to forbidden", sentinel)
		}
		if errors.Is(domain.ForbiddenError{Reason: "unrelated denial"}, sentinel) {
			t.Fatalf("plain forbidden must not match %v", sentinel)
		}
	}
	if errors.Is(domain.ErrNoRole, domain.ErrNoDirectionsAssigned) {
		t.Fatal("no-role must not match no-directions")
	}
}
