package usecase

import (
	"context"

	pkgerrors "github.com/pkg/errors"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

// ListUsecase assembles the master's application list: a plain filtered fetch
// plus per-row flags computed in application code from bulk lookups, never by
// database-side aggregation.
type ListUsecase struct {
	applications ApplicationRepository
	members      MemberRepository
	educations   EducationRepository
	bookings     BookingRepository
	notes        NoteRepository
}

func NewListUsecase(
	applications ApplicationRepository,
	members MemberRepository,
	educations EducationRepository,
	bookings BookingRepository,
	notes NoteRepository,
) *ListUsecase {
	return &ListUsecase{
		applications: applications,
		members:      members,
		educations:   educations,
		bookings:     bookings,
		notes:        notes,
	}
}

func (uc *ListUsecase) List(ctx context.Context, actor domain.RoleContext, filter domain.ApplicationFilter) ([]domain.ApplicationListItem, error) {
	ctx, span := applicationTracer.Start(ctx, "Application.Usecase.List")
	defer span.End()

	if err := authorize(policy.ActionApplicationList, actor, nil); err != nil {
		return nil, err
	}
	if filter.PageSize <= 0 {
		filter.PageSize = domain.DefaultPageSize
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	// Applications on the master's own directions sort first.
	filter.PreferDirectionIDs = actor.DirectionIDs

	apps, err := uc.applications.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ListUsecase.List: fetch failed")
	}
	if len(apps) == 0 {
		return []domain.ApplicationListItem{}, nil
	}

	appIDs := make([]uint, 0, len(apps))
	slaveIDs := make([]uint, 0, len(apps))
	for _, app := range apps {
		appIDs = append(appIDs, app.ID)
		slaveIDs = append(slaveIDs, app.MemberID)
	}

	members, err := uc.members.GetByIDs(ctx, slaveIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ListUsecase.List: member fetch failed")
	}
	memberByID := make(map[uint]domain.Member, len(members))
	for _, m := range members {
		memberByID[m.ID] = m
	}

	educationsByApp, err := uc.educations.ListByApplications(ctx, appIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ListUsecase.List: education fetch failed")
	}
	directionsByApp, err := uc.applications.DirectionsByApplications(ctx, appIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ListUsecase.List: direction fetch failed")
	}
	bookingsBySlave, err := uc.bookingsBySlave(ctx, slaveIDs)
	if err != nil {
		return nil, err
	}
	viewed, err := uc.applications.ViewedSet(ctx, actor.MemberID, appIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ListUsecase.List: viewed fetch failed")
	}

	items := make([]domain.ApplicationListItem, 0, len(apps))
	for _, app := range apps {
		item := domain.ApplicationListItem{
			Application: app,
			Member:      memberByID[app.MemberID],
			Educations:  educationsByApp[app.ID],
			Directions:  directionsByApp[app.ID],
			IsViewed:    viewed[app.ID],
		}
		uc.applyBookingFlags(&item, actor, bookingsBySlave[app.MemberID])
		for _, d := range item.Directions {
			if actor.HasDirection(d.ID) {
				item.OurDirection = true
				break
			}
		}
		notes, err := uc.notes.ListVisible(ctx, app.ID, actor.AffiliationIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "ListUsecase.List: note fetch failed")
		}
		item.Notes = notes
		items = append(items, item)
	}
	return items, nil
}

func (uc *ListUsecase) bookingsBySlave(ctx context.Context, slaveIDs []uint) (map[uint][]domain.Booking, error) {
	all, err := uc.bookings.ListBySlaves(ctx, slaveIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "ListUsecase.List: booking fetch failed")
	}
	out := make(map[uint][]domain.Booking, len(slaveIDs))
	for _, b := range all {
		out[b.SlaveID] = append(out[b.SlaveID], b)
	}
	return out, nil
}

func (uc *ListUsecase) applyBookingFlags(item *domain.ApplicationListItem, actor domain.RoleContext, entries []domain.Booking) {
	for _, b := range entries {
		switch b.BookingType {
		case domain.BookingBooked:
			item.IsBooked = true
			if actor.HasAffiliation(b.AffiliationID) {
				item.IsBookedOur = true
			}
			if b.MasterID == actor.MemberID || actor.IsAdmin {
				item.CanUnbook = true
			}
		case domain.BookingInWishlist:
			item.WishlistLen++
			if actor.HasAffiliation(b.AffiliationID) {
				item.IsInWishlist = true
			}
		}
	}
}
