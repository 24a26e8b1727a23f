package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

var applicationTracer = otel.Tracer("application")

// ApplicationInput carries the writable profile fields. The lock flag and
// work group are never part of it: they change only through their dedicated
// master-gated operations.
type ApplicationInput struct {
	BirthDay     time.Time
	BirthPlace   string
	Nationality  string
	Commissariat string
	HealthGroup  string
	DraftYear    int
	DraftSeason  int

	ScientificAchievements string
	Scholarships           string
	CandidateExams         string
	SportingAchievements   string
	Hobby                  string
	OtherInformation       string
	ReadyToSecret          bool

	Merits domain.Merits
}

// ApplicationUsecase orchestrates the access gate over applications and their
// sub-resources, and triggers score recomputation on every contributing edit.
type ApplicationUsecase struct {
	applications  ApplicationRepository
	educations    EducationRepository
	directions    DirectionRepository
	bookings      BookingRepository
	workGroups    WorkGroupRepository
	notes         NoteRepository
	scores        *ScoreUpdater
	maxDirections int
}

func NewApplicationUsecase(
	applications ApplicationRepository,
	educations EducationRepository,
	directions DirectionRepository,
	bookings BookingRepository,
	workGroups WorkGroupRepository,
	notes NoteRepository,
	scores *ScoreUpdater,
	maxDirections int,
) *ApplicationUsecase {
	if maxDirections <= 0 {
		maxDirections = domain.DefaultMaxDirections
	}
	return &ApplicationUsecase{
		applications:  applications,
		educations:    educations,
		directions:    directions,
		bookings:      bookings,
		workGroups:    workGroups,
		notes:         notes,
		scores:        scores,
		maxDirections: maxDirections,
	}
}

func validateApplicationInput(input ApplicationInput) error {
	if input.DraftSeason != domain.DraftSeasonSpring && input.DraftSeason != domain.DraftSeasonAutumn {
		return domain.ValidationError{Reason: "draft season must be spring or autumn"}
	}
	if input.DraftYear < time.Now().Year() {
		return domain.ValidationError{Reason: "draft year cannot be in the past"}
	}
	return nil
}

// Create registers the requesting slave's application. One per member; a
// second create is a conflict, not an update.
func (uc *ApplicationUsecase) Create(ctx context.Context, actor domain.RoleContext, input ApplicationInput) (domain.Application, error) {
	ctx, span := applicationTracer.Start(ctx, "Application.Usecase.Create")
	defer span.End()

	if err := authorize(policy.ActionApplicationCreate, actor, nil); err != nil {
		return domain.Application{}, err
	}
	if err := validateApplicationInput(input); err != nil {
		return domain.Application{}, err
	}

	app := domain.Application{MemberID: actor.MemberID}
	applyInput(&app, input, false)

	created, err := uc.applications.Create(ctx, app)
	if err != nil {
		span.RecordError(err)
		return domain.Application{}, err
	}
	if err := uc.scores.Update(ctx, created.ID); err != nil {
		return domain.Application{}, err
	}
	return uc.applications.Get(ctx, created.ID)
}

// Get returns one application after the retrieve gate.
func (uc *ApplicationUsecase) Get(ctx context.Context, actor domain.RoleContext, id uint) (domain.Application, error) {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return domain.Application{}, err
	}
	if err := authorize(policy.ActionApplicationRetrieve, actor, obj); err != nil {
		return domain.Application{}, err
	}
	return app, nil
}

// Update edits profile fields through the access gate: the owner (or any
// master) while the application is a draft, the booking master regardless.
// The direction-compliance flags stay master-only.
func (uc *ApplicationUsecase) Update(ctx context.Context, actor domain.RoleContext, id uint, input ApplicationInput) (domain.Application, error) {
	ctx, span := applicationTracer.Start(ctx, "Application.Usecase.Update")
	defer span.End()

	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return domain.Application{}, err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return domain.Application{}, err
	}
	if err := authorize(policy.ActionApplicationUpdate, actor, obj); err != nil {
		return domain.Application{}, err
	}
	if err := validateApplicationInput(input); err != nil {
		return domain.Application{}, err
	}

	applyInput(&app, input, actor.IsMaster() || actor.IsAdmin)
	if err := uc.applications.Update(ctx, app); err != nil {
		span.RecordError(err)
		return domain.Application{}, err
	}
	if err := uc.scores.Update(ctx, app.ID); err != nil {
		return domain.Application{}, err
	}
	return uc.applications.Get(ctx, app.ID)
}

// Delete destroys the application entity. Reserved for admin-level actors
// regardless of state.
func (uc *ApplicationUsecase) Delete(ctx context.Context, actor domain.RoleContext, id uint) error {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return err
	}
	if err := authorize(policy.ActionApplicationDestroy, actor, obj); err != nil {
		return err
	}
	return uc.applications.Delete(ctx, id)
}

// applyInput copies writable fields. masterFields guards the four
// direction-compliance flags that only reviewers may assess.
func applyInput(app *domain.Application, input ApplicationInput, masterFields bool) {
	app.BirthDay = input.BirthDay
	app.BirthPlace = input.BirthPlace
	app.Nationality = input.Nationality
	app.Commissariat = input.Commissariat
	app.HealthGroup = input.HealthGroup
	app.DraftYear = input.DraftYear
	app.DraftSeason = input.DraftSeason
	app.ScientificAchievements = input.ScientificAchievements
	app.Scholarships = input.Scholarships
	app.CandidateExams = input.CandidateExams
	app.SportingAchievements = input.SportingAchievements
	app.Hobby = input.Hobby
	app.OtherInformation = input.OtherInformation
	app.ReadyToSecret = input.ReadyToSecret

	compliance := struct {
		prior, additional, pgPrior, pgAdditional bool
	}{
		app.Merits.CompliancePriorDirection,
		app.Merits.ComplianceAdditionalDirection,
		app.Merits.PostgraduatePriorDirection,
		app.Merits.PostgraduateAdditionalDirection,
	}
	app.Merits = input.Merits
	if !masterFields {
		app.Merits.CompliancePriorDirection = compliance.prior
		app.Merits.ComplianceAdditionalDirection = compliance.additional
		app.Merits.PostgraduatePriorDirection = compliance.pgPrior
		app.Merits.PostgraduateAdditionalDirection = compliance.pgAdditional
	}
}

// Directions returns the application's chosen directions.
func (uc *ApplicationUsecase) Directions(ctx context.Context, actor domain.RoleContext, id uint) ([]domain.Direction, error) {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.ActionGetDirections, actor, obj); err != nil {
		return nil, err
	}
	ids, err := uc.applications.DirectionIDs(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	return uc.directions.GetByIDs(ctx, ids)
}

// SetDirections replaces the chosen-directions list, capped at the configured
// maximum, and recomputes scores.
func (uc *ApplicationUsecase) SetDirections(ctx context.Context, actor domain.RoleContext, id uint, directionIDs []uint) error {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return err
	}
	if err := authorize(policy.ActionSetDirections, actor, obj); err != nil {
		return err
	}

	directionIDs = dedupeIDs(directionIDs)
	if len(directionIDs) > uc.maxDirections {
		return domain.ValidationError{Reason: "too many directions chosen"}
	}
	resolved, err := uc.directions.GetByIDs(ctx, directionIDs)
	if err != nil {
		return err
	}
	if len(resolved) != len(directionIDs) {
		return domain.NotFoundError{Resource: "direction"}
	}

	if err := uc.applications.SetDirections(ctx, app.ID, directionIDs); err != nil {
		return err
	}
	return uc.scores.Update(ctx, app.ID)
}

// Competencies returns the application's self-assessed levels.
func (uc *ApplicationUsecase) Competencies(ctx context.Context, actor domain.RoleContext, id uint) ([]domain.CompetencyAssessment, error) {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.ActionGetCompetencies, actor, obj); err != nil {
		return nil, err
	}
	return uc.applications.Assessments(ctx, app.ID)
}

// SetCompetencies upserts assessment levels: re-submitting a competence
// updates its level instead of duplicating the row.
func (uc *ApplicationUsecase) SetCompetencies(ctx context.Context, actor domain.RoleContext, id uint, assessments []domain.CompetencyAssessment) error {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return err
	}
	if err := authorize(policy.ActionSetCompetencies, actor, obj); err != nil {
		return err
	}

	for _, a := range assessments {
		if a.Level < domain.CompetencyLevelMin || a.Level > domain.CompetencyLevelMax {
			return domain.ValidationError{Reason: "competency level out of range"}
		}
	}
	if err := uc.applications.UpsertAssessments(ctx, app.ID, assessments); err != nil {
		return err
	}
	return uc.scores.Update(ctx, app.ID)
}

// WorkGroup returns the application's work group, nil when unset.
func (uc *ApplicationUsecase) WorkGroup(ctx context.Context, actor domain.RoleContext, id uint) (*domain.WorkGroup, error) {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.ActionGetWorkGroup, actor, obj); err != nil {
		return nil, err
	}
	if app.WorkGroupID == nil {
		return nil, nil
	}
	wg, err := uc.workGroups.Get(ctx, *app.WorkGroupID)
	if err != nil {
		return nil, err
	}
	return &wg, nil
}

// SetWorkGroup binds the application to a work group of the affiliation it is
// booked for, or clears it with nil.
func (uc *ApplicationUsecase) SetWorkGroup(ctx context.Context, actor domain.RoleContext, id uint, workGroupID *uint) error {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return err
	}
	if err := authorize(policy.ActionSetWorkGroup, actor, obj); err != nil {
		return err
	}

	if workGroupID != nil {
		wg, err := uc.workGroups.Get(ctx, *workGroupID)
		if err != nil {
			return err
		}
		if obj.BookedAffiliationID == nil || wg.AffiliationID != *obj.BookedAffiliationID {
			return domain.ValidationError{Reason: "work group does not belong to the affiliation the candidate is booked for"}
		}
	}
	return uc.applications.SetWorkGroup(ctx, app.ID, workGroupID)
}

// SetFinal toggles the edit lock. Locking requires a live booked-type booking
// held on one of the actor's affiliations; unlocking shares the same gate
// (the automatic unlock on unbook happens inside the booking cascade).
func (uc *ApplicationUsecase) SetFinal(ctx context.Context, actor domain.RoleContext, id uint, value bool) error {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return err
	}
	if err := authorize(policy.ActionSetFinal, actor, obj); err != nil {
		return err
	}
	if value && obj.BookedAffiliationID == nil {
		return domain.ValidationError{Reason: "candidate is not booked"}
	}
	return uc.applications.SetFinal(ctx, app.ID, value)
}

// MarkViewed records that the master opened the application. Idempotent.
func (uc *ApplicationUsecase) MarkViewed(ctx context.Context, actor domain.RoleContext, id uint) error {
	app, err := uc.applications.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(policy.ActionMarkViewed, actor, nil); err != nil {
		return err
	}
	return uc.applications.MarkViewed(ctx, actor.MemberID, app.ID)
}

func dedupeIDs(ids []uint) []uint {
	seen := map[uint]bool{}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
