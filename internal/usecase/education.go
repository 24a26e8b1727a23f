package usecase

import (
	"context"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

// EducationInput carries the writable fields of one education row.
type EducationInput struct {
	EducationType  string
	University     string
	Specialization string
	AvgScore       float64
	EndYear        int
	IsEnded        bool
	ThemeOfDiploma string
}

// EducationUsecase manages education rows nested under an application. Every
// write re-runs the score recomputation because the education average feeds
// the final score.
type EducationUsecase struct {
	applications ApplicationRepository
	educations   EducationRepository
	bookings     BookingRepository
	scores       *ScoreUpdater
}

func NewEducationUsecase(
	applications ApplicationRepository,
	educations EducationRepository,
	bookings BookingRepository,
	scores *ScoreUpdater,
) *EducationUsecase {
	return &EducationUsecase{
		applications: applications,
		educations:   educations,
		bookings:     bookings,
		scores:       scores,
	}
}

func validateEducationInput(input EducationInput) error {
	if !domain.ValidEducationType(input.EducationType) {
		return domain.ValidationError{Reason: "unknown education type"}
	}
	if input.AvgScore < 2 || input.AvgScore > 5 {
		return domain.ValidationError{Reason: "average score must be between 2 and 5"}
	}
	return nil
}

func (uc *EducationUsecase) gate(ctx context.Context, actor domain.RoleContext, applicationID uint, action policy.Action) (domain.Application, error) {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return domain.Application{}, err
	}
	obj, err := objectSnapshot(ctx, uc.bookings, app)
	if err != nil {
		return domain.Application{}, err
	}
	if err := authorize(action, actor, obj); err != nil {
		return domain.Application{}, err
	}
	return app, nil
}

func (uc *EducationUsecase) List(ctx context.Context, actor domain.RoleContext, applicationID uint) ([]domain.Education, error) {
	app, err := uc.gate(ctx, actor, applicationID, policy.ActionEducationList)
	if err != nil {
		return nil, err
	}
	return uc.educations.ListByApplication(ctx, app.ID)
}

func (uc *EducationUsecase) Create(ctx context.Context, actor domain.RoleContext, applicationID uint, input EducationInput) (domain.Education, error) {
	app, err := uc.gate(ctx, actor, applicationID, policy.ActionEducationWrite)
	if err != nil {
		return domain.Education{}, err
	}
	if err := validateEducationInput(input); err != nil {
		return domain.Education{}, err
	}

	created, err := uc.educations.Create(ctx, domain.Education{
		ApplicationID:  app.ID,
		EducationType:  input.EducationType,
		University:     input.University,
		Specialization: input.Specialization,
		AvgScore:       input.AvgScore,
		EndYear:        input.EndYear,
		IsEnded:        input.IsEnded,
		ThemeOfDiploma: input.ThemeOfDiploma,
	})
	if err != nil {
		return domain.Education{}, err
	}
	if err := uc.scores.Update(ctx, app.ID); err != nil {
		return domain.Education{}, err
	}
	return created, nil
}

func (uc *EducationUsecase) Update(ctx context.Context, actor domain.RoleContext, applicationID, educationID uint, input EducationInput) (domain.Education, error) {
	app, err := uc.gate(ctx, actor, applicationID, policy.ActionEducationWrite)
	if err != nil {
		return domain.Education{}, err
	}
	edu, err := uc.educations.Get(ctx, educationID)
	if err != nil {
		return domain.Education{}, err
	}
	if edu.ApplicationID != app.ID {
		return domain.Education{}, domain.NotFoundError{Resource: "education"}
	}
	if err := validateEducationInput(input); err != nil {
		return domain.Education{}, err
	}

	edu.EducationType = input.EducationType
	edu.University = input.University
	edu.Specialization = input.Specialization
	edu.AvgScore = input.AvgScore
	edu.EndYear = input.EndYear
	edu.IsEnded = input.IsEnded
	edu.ThemeOfDiploma = input.ThemeOfDiploma
	if err := uc.educations.Update(ctx, edu); err != nil {
		return domain.Education{}, err
	}
	if err := uc.scores.Update(ctx, app.ID); err != nil {
		return domain.Education{}, err
	}
	return edu, nil
}

func (uc *EducationUsecase) Delete(ctx context.Context, actor domain.RoleContext, applicationID, educationID uint) error {
	app, err := uc.gate(ctx, actor, applicationID, policy.ActionEducationWrite)
	if err != nil {
		return err
	}
	edu, err := uc.educations.Get(ctx, educationID)
	if err != nil {
		return err
	}
	if edu.ApplicationID != app.ID {
		return domain.NotFoundError{Resource: "education"}
	}
	if err := uc.educations.Delete(ctx, edu.ID); err != nil {
		return err
	}
	return uc.scores.Update(ctx, app.ID)
}
