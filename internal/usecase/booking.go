package usecase

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

var bookingTracer = otel.Tracer("booking")

// BookingUsecase drives the booking state machine. Per slave the states are:
// unbooked, any number of wishlist entries, and at most one booked entry
// across the whole system.
type BookingUsecase struct {
	applications ApplicationRepository
	affiliations AffiliationRepository
	bookings     BookingRepository
	signaler     Signaler
}

func NewBookingUsecase(
	applications ApplicationRepository,
	affiliations AffiliationRepository,
	bookings BookingRepository,
	signaler Signaler,
) *BookingUsecase {
	return &BookingUsecase{
		applications: applications,
		affiliations: affiliations,
		bookings:     bookings,
		signaler:     signaler,
	}
}

// List returns the application's bookings of the given type. Existence
// resolves before permission: a missing application is not-found even for
// actors that would be denied.
func (uc *BookingUsecase) List(ctx context.Context, actor domain.RoleContext, applicationID uint, bookingType string) ([]domain.Booking, error) {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	action := policy.ActionBookingList
	if bookingType == domain.BookingInWishlist {
		action = policy.ActionWishlistList
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return nil, err
	}
	if err := authorize(action, actor, obj); err != nil {
		return nil, err
	}

	return uc.bookings.ListBySlave(ctx, app.MemberID, bookingType)
}

// Book reserves the candidate for one of the master's affiliations. Each
// precondition failure carries its own message.
func (uc *BookingUsecase) Book(ctx context.Context, actor domain.RoleContext, applicationID, affiliationID uint) (domain.Booking, error) {
	ctx, span := bookingTracer.Start(ctx, "Booking.Usecase.Book")
	defer span.End()

	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := authorize(policy.ActionBookingCreate, actor, nil); err != nil {
		return domain.Booking{}, err
	}

	affiliation, err := uc.affiliations.Get(ctx, affiliationID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !actor.HasAffiliation(affiliation.ID) {
		return domain.Booking{}, domain.ValidationError{Reason: "you do not administer this affiliation"}
	}

	directionIDs, err := uc.applications.DirectionIDs(ctx, app.ID)
	if err != nil {
		return domain.Booking{}, pkgerrors.Wrap(err, "BookingUsecase.Book: direction lookup failed")
	}
	if !containsID(directionIDs, affiliation.Direction.ID) {
		return domain.Booking{}, domain.ValidationError{Reason: "candidate has not applied to this affiliation's direction"}
	}

	existing, err := uc.bookings.GetBookedBySlave(ctx, app.MemberID)
	if err != nil {
		return domain.Booking{}, pkgerrors.Wrap(err, "BookingUsecase.Book: booked lookup failed")
	}
	if existing != nil {
		return domain.Booking{}, domain.ValidationError{Reason: "candidate is already booked"}
	}

	// The repository repeats the checks under a row lock; the ones above only
	// produce the friendly message in the common path.
	booking, err := uc.bookings.CreateBooked(ctx, domain.Booking{
		SlaveID:       app.MemberID,
		MasterID:      actor.MemberID,
		AffiliationID: affiliation.ID,
		BookingType:   domain.BookingBooked,
	})
	if err != nil {
		span.RecordError(err)
		return domain.Booking{}, err
	}

	uc.publish(ctx, domain.BookingEvent{
		Kind:          domain.EventBooked,
		BookingID:     booking.ID,
		SlaveID:       booking.SlaveID,
		MasterID:      booking.MasterID,
		AffiliationID: booking.AffiliationID,
		ApplicationID: app.ID,
	})
	return booking, nil
}

// Wishlist shortlists the candidate. Direction membership is not consulted:
// masters may wishlist anyone, duplicates per (slave, master, affiliation)
// are rejected.
func (uc *BookingUsecase) Wishlist(ctx context.Context, actor domain.RoleContext, applicationID, affiliationID uint) (domain.Booking, error) {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := authorize(policy.ActionWishlistCreate, actor, nil); err != nil {
		return domain.Booking{}, err
	}

	affiliation, err := uc.affiliations.Get(ctx, affiliationID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !actor.HasAffiliation(affiliation.ID) {
		return domain.Booking{}, domain.ValidationError{Reason: "you do not administer this affiliation"}
	}

	entries, err := uc.bookings.ListBySlave(ctx, app.MemberID, domain.BookingInWishlist)
	if err != nil {
		return domain.Booking{}, pkgerrors.Wrap(err, "BookingUsecase.Wishlist: wishlist lookup failed")
	}
	for _, entry := range entries {
		if entry.MasterID == actor.MemberID && entry.AffiliationID == affiliation.ID {
			return domain.Booking{}, domain.ValidationError{Reason: "candidate is already in the wishlist for this affiliation"}
		}
	}

	booking, err := uc.bookings.CreateWishlist(ctx, domain.Booking{
		SlaveID:       app.MemberID,
		MasterID:      actor.MemberID,
		AffiliationID: affiliation.ID,
		BookingType:   domain.BookingInWishlist,
	})
	if err != nil {
		return domain.Booking{}, err
	}

	uc.publish(ctx, domain.BookingEvent{
		Kind:          domain.EventWishlisted,
		BookingID:     booking.ID,
		SlaveID:       booking.SlaveID,
		MasterID:      booking.MasterID,
		AffiliationID: booking.AffiliationID,
		ApplicationID: app.ID,
	})
	return booking, nil
}

// Unbook deletes a booked-type booking and cascades: the application's work
// group is cleared and the lock flag unset, atomically with the delete. Only
// the master who created the booking (or an admin) may unbook.
func (uc *BookingUsecase) Unbook(ctx context.Context, actor domain.RoleContext, applicationID, bookingID uint) error {
	ctx, span := bookingTracer.Start(ctx, "Booking.Usecase.Unbook")
	defer span.End()

	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return err
	}
	booking, err := uc.bookings.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.SlaveID != app.MemberID || booking.BookingType != domain.BookingBooked {
		return domain.NotFoundError{Resource: "booking"}
	}

	obj := &policy.Object{
		OwnerID:             app.MemberID,
		IsFinal:             app.IsFinal,
		BookedAffiliationID: &booking.AffiliationID,
		BookingMasterID:     &booking.MasterID,
	}
	if err := authorize(policy.ActionBookingDelete, actor, obj); err != nil {
		return err
	}

	if err := uc.bookings.DeleteBookedCascade(ctx, booking); err != nil {
		span.RecordError(err)
		return err
	}

	uc.publish(ctx, domain.BookingEvent{
		Kind:          domain.EventUnbooked,
		BookingID:     booking.ID,
		SlaveID:       booking.SlaveID,
		MasterID:      booking.MasterID,
		AffiliationID: booking.AffiliationID,
		ApplicationID: app.ID,
	})
	return nil
}

// Unwishlist deletes a wishlist entry. Any co-administrator of the entry's
// affiliation may remove it; no cascade applies.
func (uc *BookingUsecase) Unwishlist(ctx context.Context, actor domain.RoleContext, applicationID, bookingID uint) error {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return err
	}
	booking, err := uc.bookings.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.SlaveID != app.MemberID || booking.BookingType != domain.BookingInWishlist {
		return domain.NotFoundError{Resource: "booking"}
	}

	if err := authorize(policy.ActionWishlistDelete, actor, nil); err != nil {
		return err
	}
	if !actor.HasAffiliation(booking.AffiliationID) {
		return domain.ErrForbidden
	}

	if err := uc.bookings.Delete(ctx, booking.ID); err != nil {
		return err
	}

	uc.publish(ctx, domain.BookingEvent{
		Kind:          domain.EventUnwishlisted,
		BookingID:     booking.ID,
		SlaveID:       booking.SlaveID,
		MasterID:      booking.MasterID,
		AffiliationID: booking.AffiliationID,
		ApplicationID: app.ID,
	})
	return nil
}

// publish is best-effort: the realtime feed is advisory and must not fail
// the transition that already committed.
func (uc *BookingUsecase) publish(ctx context.Context, event domain.BookingEvent) {
	if uc.signaler == nil {
		return
	}
	if err := uc.signaler.PublishBookingEvent(ctx, event); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
