package usecase

import (
	"strings"

	"github.com/scirota/selection-api/internal/domain"
)

// ScoreInput is the full current state contributing to the derived fields.
type ScoreInput struct {
	Application     domain.Application
	Educations      []domain.Education
	DirectionCount  int
	CompetencyCount int
}

// Scorer recomputes fullness and final_score from scratch. It is a pure
// function of its input so repeated invocation is idempotent; it never reads
// storage and never patches incrementally.
type Scorer struct {
	weights domain.ScoringWeights
}

func NewScorer(weights domain.ScoringWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Recalculate returns the completeness percentage (0-100) and the weighted
// final score for the given state.
func (s *Scorer) Recalculate(in ScoreInput) (int, float64) {
	return s.fullness(in), s.finalScore(in)
}

func (s *Scorer) fullness(in ScoreInput) int {
	app := in.Application
	satisfied := map[string]bool{
		domain.SectionBiography: strings.TrimSpace(app.BirthPlace) != "" &&
			strings.TrimSpace(app.Nationality) != "" &&
			strings.TrimSpace(app.Commissariat) != "" &&
			strings.TrimSpace(app.HealthGroup) != "" &&
			!app.BirthDay.IsZero() &&
			app.DraftYear != 0,
		domain.SectionEducation:    len(in.Educations) > 0,
		domain.SectionDirections:   in.DirectionCount > 0,
		domain.SectionCompetencies: in.CompetencyCount > 0,
		domain.SectionAchievements: strings.TrimSpace(app.ScientificAchievements) != "" ||
			strings.TrimSpace(app.Scholarships) != "" ||
			strings.TrimSpace(app.SportingAchievements) != "",
		domain.SectionHobby: strings.TrimSpace(app.Hobby) != "" ||
			strings.TrimSpace(app.OtherInformation) != "",
	}

	total := 0
	got := 0
	for section, weight := range s.weights.Fullness {
		total += weight
		if satisfied[section] {
			got += weight
		}
	}
	if total == 0 {
		return 0
	}
	return got * 100 / total
}

func (s *Scorer) finalScore(in ScoreInput) float64 {
	// A profile without education rows scores an average of zero instead of
	// failing; an incomplete profile still yields a (low) number.
	var avg float64
	if len(in.Educations) > 0 {
		var sum float64
		for _, edu := range in.Educations {
			sum += edu.AvgScore
		}
		avg = sum / float64(len(in.Educations))
	}

	score := avg * s.weights.AvgEducationScore
	for _, flag := range in.Application.Merits.Flags() {
		if flag.Set {
			score += s.weights.Merit[flag.Name]
		}
	}
	return score
}
