package usecase

import (
	"testing"
	"time"

	"github.com/scirota/selection-api/internal/domain"
)

func fullProfile() ScoreInput {
	return ScoreInput{
		Application: domain.Application{
			BirthDay:               time.Date(2002, 5, 14, 0, 0, 0, 0, time.UTC),
			BirthPlace:             "Kazan",
			Nationality:            "RF",
			Commissariat:           "central",
			HealthGroup:            "A1",
			DraftYear:              2027,
			DraftSeason:            domain.DraftSeasonSpring,
			ScientificAchievements: "two papers",
			Hobby:                  "chess",
		},
		Educations:      []domain.Education{{AvgScore: 4.5}},
		DirectionCount:  2,
		CompetencyCount: 5,
	}
}

func TestScorerIdempotent(t *testing.T) {
	s := NewScorer(domain.DefaultScoringWeights())
	in := fullProfile()

	f1, score1 := s.Recalculate(in)
	f2, score2 := s.Recalculate(in)
	if f1 != f2 || score1 != score2 {
		t.Fatalf("recalculation diverged: (%d, %f) vs (%d, %f)", f1, score1, f2, score2)
	}
}

func TestScorerFullProfileIsComplete(t *testing.T) {
	s := NewScorer(domain.DefaultScoringWeights())

	fullness, _ := s.Recalculate(fullProfile())
	if fullness != 100 {
		t.Fatalf("expected fullness 100, got %d", fullness)
	}
}

func TestScorerEmptyProfile(t *testing.T) {
	s := NewScorer(domain.DefaultScoringWeights())

	fullness, score := s.Recalculate(ScoreInput{})
	if fullness != 0 {
		t.Fatalf("expected fullness 0, got %d", fullness)
	}
	if score != 0 {
		t.Fatalf("expected score 0, got %f", score)
	}
}

func TestScorerZeroEducationAverage(t *testing.T) {
	s := NewScorer(domain.DefaultScoringWeights())

	in := fullProfile()
	in.Educations = nil
	in.Application.Merits.Patents = true

	// Without education rows the average contributes nothing but the merit
	// flags still count.
	_, score := s.Recalculate(in)
	weights := domain.DefaultScoringWeights()
	if score != weights.Merit["patents"] {
		t.Fatalf("expected bare patents weight %f, got %f", weights.Merit["patents"], score)
	}
}

func TestScorerMeritMonotonicity(t *testing.T) {
	s := NewScorer(domain.DefaultScoringWeights())

	in := fullProfile()
	_, base := s.Recalculate(in)
	in.Application.Merits.InternationalOlympics = true
	_, boosted := s.Recalculate(in)
	if boosted <= base {
		t.Fatalf("expected score to grow with a merit flag, got %f -> %f", base, boosted)
	}
}

func TestScorerPartialFullness(t *testing.T) {
	s := NewScorer(domain.DefaultScoringWeights())

	in := fullProfile()
	in.Educations = nil
	fullness, _ := s.Recalculate(in)
	if fullness <= 0 || fullness >= 100 {
		t.Fatalf("expected partial fullness, got %d", fullness)
	}
}
