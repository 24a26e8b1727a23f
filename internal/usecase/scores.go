package usecase

import (
	"context"

	pkgerrors "github.com/pkg/errors"
)

// ScoreUpdater recomputes and persists the derived fields after any edit that
// contributes to them. Every caller goes through here so fullness and
// final_score can never drift from the stored state.
type ScoreUpdater struct {
	applications ApplicationRepository
	educations   EducationRepository
	scorer       *Scorer
}

func NewScoreUpdater(
	applications ApplicationRepository,
	educations EducationRepository,
	scorer *Scorer,
) *ScoreUpdater {
	return &ScoreUpdater{
		applications: applications,
		educations:   educations,
		scorer:       scorer,
	}
}

func (su *ScoreUpdater) Update(ctx context.Context, applicationID uint) error {
	app, err := su.applications.Get(ctx, applicationID)
	if err != nil {
		return pkgerrors.Wrap(err, "ScoreUpdater.Update: application lookup failed")
	}
	educations, err := su.educations.ListByApplication(ctx, applicationID)
	if err != nil {
		return pkgerrors.Wrap(err, "ScoreUpdater.Update: education lookup failed")
	}
	directionIDs, err := su.applications.DirectionIDs(ctx, applicationID)
	if err != nil {
		return pkgerrors.Wrap(err, "ScoreUpdater.Update: direction lookup failed")
	}
	assessments, err := su.applications.Assessments(ctx, applicationID)
	if err != nil {
		return pkgerrors.Wrap(err, "ScoreUpdater.Update: assessment lookup failed")
	}

	fullness, finalScore := su.scorer.Recalculate(ScoreInput{
		Application:     app,
		Educations:      educations,
		DirectionCount:  len(directionIDs),
		CompetencyCount: len(assessments),
	})
	return su.applications.SaveScores(ctx, applicationID, fullness, finalScore)
}
