package usecase

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

// objectSnapshot assembles the policy object for an application: ownership,
// lock state, and the booked-type booking holding it (if any).
func objectSnapshot(ctx context.Context, bookings BookingRepository, app domain.Application) (*policy.Object, error) {
	obj := &policy.Object{
		OwnerID: app.MemberID,
		IsFinal: app.IsFinal,
	}
	booked, err := bookings.GetBookedBySlave(ctx, app.MemberID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "objectSnapshot: booked lookup failed")
	}
	if booked != nil {
		obj.BookedAffiliationID = &booked.AffiliationID
		obj.BookingMasterID = &booked.MasterID
	}
	return obj, nil
}

// authorize runs both policy phases against the snapshot. Existence has
// already been resolved by the caller, so a denial is always forbidden, never
// not-found.
func authorize(action policy.Action, actor domain.RoleContext, obj *policy.Object) error {
	if !policy.Allows(action, actor, nil) {
		return domain.ErrForbidden
	}
	if obj != nil && !policy.Allows(action, actor, obj) {
		return domain.ErrForbidden
	}
	return nil
}
