package usecase

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/scirota/selection-api/internal/domain"
)

// RoleResolver resolves a member into its capability context. Masters carry
// their explicit affiliation set; slaves derive directions from their own
// application's chosen directions, and the affiliations of those directions
// are attached for matching purposes only.
type RoleResolver struct {
	members      MemberRepository
	applications ApplicationRepository
	affiliations AffiliationRepository
}

func NewRoleResolver(
	members MemberRepository,
	applications ApplicationRepository,
	affiliations AffiliationRepository,
) *RoleResolver {
	return &RoleResolver{
		members:      members,
		applications: applications,
		affiliations: affiliations,
	}
}

func (r *RoleResolver) Resolve(ctx context.Context, memberID uint) (domain.RoleContext, error) {
	member, err := r.members.Get(ctx, memberID)
	if err != nil {
		return domain.RoleContext{}, pkgerrors.Wrap(err, "RoleResolver.Resolve: member lookup failed")
	}

	rc := domain.RoleContext{
		MemberID: member.ID,
		Role:     member.Role,
		IsAdmin:  member.IsAdmin,
	}

	switch member.Role {
	case domain.RoleMaster:
		affiliations, err := r.members.Affiliations(ctx, member.ID)
		if err != nil {
			return domain.RoleContext{}, pkgerrors.Wrap(err, "RoleResolver.Resolve: affiliations lookup failed")
		}
		seen := map[uint]bool{}
		for _, a := range affiliations {
			rc.AffiliationIDs = append(rc.AffiliationIDs, a.ID)
			if !seen[a.Direction.ID] {
				seen[a.Direction.ID] = true
				rc.DirectionIDs = append(rc.DirectionIDs, a.Direction.ID)
			}
		}
	case domain.RoleSlave:
		app, err := r.applications.GetByMember(ctx, member.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return rc, nil
			}
			return domain.RoleContext{}, pkgerrors.Wrap(err, "RoleResolver.Resolve: application lookup failed")
		}
		directionIDs, err := r.applications.DirectionIDs(ctx, app.ID)
		if err != nil {
			return domain.RoleContext{}, pkgerrors.Wrap(err, "RoleResolver.Resolve: direction lookup failed")
		}
		rc.DirectionIDs = directionIDs
		affiliations, err := r.affiliations.ListByDirectionIDs(ctx, directionIDs)
		if err != nil {
			return domain.RoleContext{}, pkgerrors.Wrap(err, "RoleResolver.Resolve: affiliation lookup failed")
		}
		for _, a := range affiliations {
			rc.AffiliationIDs = append(rc.AffiliationIDs, a.ID)
		}
	default:
		if !member.IsAdmin {
			return domain.RoleContext{}, domain.ErrNoRole
		}
	}

	return rc, nil
}

// FirstAffiliation returns the master's first affiliation, used to seed the
// default document-generation scope. Raises ErrNoDirectionsAssigned when the
// master administers nothing.
func (r *RoleResolver) FirstAffiliation(ctx context.Context, actor domain.RoleContext) (domain.Affiliation, error) {
	affiliations, err := r.members.Affiliations(ctx, actor.MemberID)
	if err != nil {
		return domain.Affiliation{}, pkgerrors.Wrap(err, "RoleResolver.FirstAffiliation: lookup failed")
	}
	if len(affiliations) == 0 {
		return domain.Affiliation{}, domain.ErrNoDirectionsAssigned
	}
	return affiliations[0], nil
}
