package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/scirota/selection-api/internal/domain"
)

func TestBookThenSecondBookRejected(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()
	ctx := context.Background()

	booking, err := uc.Book(ctx, f.master, f.app.ID, affiliationFirst)
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}
	if booking.BookingType != domain.BookingBooked {
		t.Fatalf("expected booked type, got %s", booking.BookingType)
	}

	if _, err := uc.Book(ctx, f.master, f.app.ID, affiliationFirst); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error on double book, got %v", err)
	}

	if len(f.signaler.events) != 1 || f.signaler.events[0].Kind != domain.EventBooked {
		t.Fatalf("expected one booked event, got %+v", f.signaler.events)
	}
}

func TestBookRequiresAdministeredAffiliation(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()

	_, err := uc.Book(context.Background(), f.master, f.app.ID, affiliationSecond)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookRequiresDirectionMembership(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()

	// The candidate applied to robotics only, the other master administers
	// the information security affiliation.
	_, err := uc.Book(context.Background(), f.otherMaster, f.app.ID, affiliationSecond)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestBookDeniedForSlave(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()

	_, err := uc.Book(context.Background(), f.slave, f.app.ID, affiliationFirst)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestBookMissingApplicationIsNotFound(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()

	// Existence resolves before permission even for a slave actor.
	_, err := uc.Book(context.Background(), f.slave, 999, affiliationFirst)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUnbookCascadeClearsWorkGroupAndLock(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()
	appUC := f.applicationUsecase()
	ctx := context.Background()

	booking, err := uc.Book(ctx, f.master, f.app.ID, affiliationFirst)
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	wg, err := f.workGroups.Create(ctx, domain.WorkGroup{Name: "wg-1", AffiliationID: affiliationFirst})
	if err != nil {
		t.Fatalf("work group create failed: %v", err)
	}
	if err := appUC.SetWorkGroup(ctx, f.master, f.app.ID, &wg.ID); err != nil {
		t.Fatalf("set work group failed: %v", err)
	}
	if err := appUC.SetFinal(ctx, f.master, f.app.ID, true); err != nil {
		t.Fatalf("set final failed: %v", err)
	}

	if err := uc.Unbook(ctx, f.master, f.app.ID, booking.ID); err != nil {
		t.Fatalf("unbook failed: %v", err)
	}

	app, _ := f.applications.Get(ctx, f.app.ID)
	if app.WorkGroupID != nil {
		t.Fatalf("expected work group cleared, got %v", *app.WorkGroupID)
	}
	if app.IsFinal {
		t.Fatalf("expected lock flag cleared")
	}
}

func TestUnbookOnlyByCreatorOrAdmin(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()
	ctx := context.Background()

	booking, err := uc.Book(ctx, f.master, f.app.ID, affiliationFirst)
	if err != nil {
		t.Fatalf("book failed: %v", err)
	}

	if err := uc.Unbook(ctx, f.otherMaster, f.app.ID, booking.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden for other master, got %v", err)
	}
	if err := uc.Unbook(ctx, f.admin, f.app.ID, booking.ID); err != nil {
		t.Fatalf("admin unbook failed: %v", err)
	}
}

func TestWishlistDuplicateRejected(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()
	ctx := context.Background()

	if _, err := uc.Wishlist(ctx, f.master, f.app.ID, affiliationFirst); err != nil {
		t.Fatalf("wishlist failed: %v", err)
	}
	if _, err := uc.Wishlist(ctx, f.master, f.app.ID, affiliationFirst); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error on duplicate, got %v", err)
	}
}

func TestWishlistIgnoresDirectionMembership(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()

	// Shortlisting is open to any master for any candidate.
	if _, err := uc.Wishlist(context.Background(), f.otherMaster, f.app.ID, affiliationSecond); err != nil {
		t.Fatalf("wishlist failed: %v", err)
	}
}

func TestWishlistDoesNotBlockBooking(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()
	ctx := context.Background()

	if _, err := uc.Wishlist(ctx, f.master, f.app.ID, affiliationFirst); err != nil {
		t.Fatalf("wishlist failed: %v", err)
	}
	if _, err := uc.Book(ctx, f.master, f.app.ID, affiliationFirst); err != nil {
		t.Fatalf("book after wishlist failed: %v", err)
	}
}

func TestUnwishlistByCoAdministrator(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()
	ctx := context.Background()

	entry, err := uc.Wishlist(ctx, f.master, f.app.ID, affiliationFirst)
	if err != nil {
		t.Fatalf("wishlist failed: %v", err)
	}

	coAdmin := domain.RoleContext{
		MemberID:       7,
		Role:           domain.RoleMaster,
		AffiliationIDs: []uint{affiliationFirst},
		DirectionIDs:   []uint{directionRobotics},
	}
	if err := uc.Unwishlist(ctx, coAdmin, f.app.ID, entry.ID); err != nil {
		t.Fatalf("co-admin unwishlist failed: %v", err)
	}
}

func TestUnwishlistForeignAffiliationForbidden(t *testing.T) {
	f := newFixture()
	uc := f.bookingUsecase()
	ctx := context.Background()

	entry, err := uc.Wishlist(ctx, f.master, f.app.ID, affiliationFirst)
	if err != nil {
		t.Fatalf("wishlist failed: %v", err)
	}
	if err := uc.Unwishlist(ctx, f.otherMaster, f.app.ID, entry.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
