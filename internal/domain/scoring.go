package domain

// ScoringWeights is the external coefficient table for derived scores. Values
// are policy, not code: they are loaded from configuration and injected into
// the aggregator.
type ScoringWeights struct {
	// AvgEducationScore multiplies the mean avg_score over education rows.
	AvgEducationScore float64 `yaml:"avgEducationScore"`
	// Merit maps a merit flag name to its contribution when the flag is set.
	// Flags missing from the table contribute nothing.
	Merit map[string]float64 `yaml:"merit"`
	// Fullness maps a profile checklist section to its weight. Fullness is
	// the percentage of satisfied weight over total weight.
	Fullness map[string]int `yaml:"fullness"`
}

// Checklist section names for the fullness computation.
const (
	SectionBiography    = "biography"
	SectionEducation    = "education"
	SectionDirections   = "directions"
	SectionCompetencies = "competencies"
	SectionAchievements = "achievements"
	SectionHobby        = "hobby"
)

// DefaultScoringWeights returns the table used when the config omits one.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		AvgEducationScore: 10,
		Merit: map[string]float64{
			"international_articles":            5,
			"patents":                           5,
			"vac_articles":                      4,
			"innovation_proposals":              3,
			"rinc_articles":                     3,
			"evm_register":                      3,
			"international_olympics":            5,
			"president_scholarship":             4,
			"country_olympics":                  4,
			"government_scholarship":            3,
			"military_grants":                   3,
			"region_olympics":                   2,
			"city_olympics":                     1,
			"commercial_experience":             3,
			"opk_experience":                    4,
			"science_experience":                5,
			"military_sport_achievements":       2,
			"sport_achievements":                1,
			"compliance_prior_direction":        5,
			"compliance_additional_direction":   3,
			"postgraduate_prior_direction":      5,
			"postgraduate_additional_direction": 3,
		},
		Fullness: map[string]int{
			SectionBiography:    30,
			SectionEducation:    25,
			SectionDirections:   20,
			SectionCompetencies: 15,
			SectionAchievements: 5,
			SectionHobby:        5,
		},
	}
}
