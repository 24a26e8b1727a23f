package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/scirota/selection-api/internal/domain"
)

func TestDirectionCreateAdminOnly(t *testing.T) {
	f := newFixture()
	uc := NewDirectionUsecase(f.directions)
	ctx := context.Background()

	_, err := uc.Create(ctx, f.master, domain.Direction{Name: "radio engineering"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for master, got %v", err)
	}

	created, err := uc.Create(ctx, f.admin, domain.Direction{Name: "radio engineering"})
	if err != nil {
		t.Fatalf("admin create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := uc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after create failed: %v", err)
	}
	if got.Name != "radio engineering" {
		t.Fatalf("unexpected name %q", got.Name)
	}
}

func TestDirectionCreateRequiresName(t *testing.T) {
	f := newFixture()
	uc := NewDirectionUsecase(f.directions)

	_, err := uc.Create(context.Background(), f.admin, domain.Direction{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDirectionCreateDuplicateName(t *testing.T) {
	f := newFixture()
	uc := NewDirectionUsecase(f.directions)

	_, err := uc.Create(context.Background(), f.admin, domain.Direction{Name: "robotics"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
