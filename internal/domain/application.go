package domain

import "time"

// Application is a candidate's profile. One per member.
type Application struct {
	ID       uint `json:"id"`
	MemberID uint `json:"memberId"`

	// Biographical data.
	BirthDay     time.Time `json:"birthDay"`
	BirthPlace   string    `json:"birthPlace"`
	Nationality  string    `json:"nationality"`
	Commissariat string    `json:"commissariat"`
	HealthGroup  string    `json:"healthGroup"`
	DraftYear    int       `json:"draftYear"`
	DraftSeason  int       `json:"draftSeason"`

	// Free-text merit sections.
	ScientificAchievements string `json:"scientificAchievements,omitempty"`
	Scholarships           string `json:"scholarships,omitempty"`
	CandidateExams         string `json:"candidateExams,omitempty"`
	SportingAchievements   string `json:"sportingAchievements,omitempty"`
	Hobby                  string `json:"hobby,omitempty"`
	OtherInformation       string `json:"otherInformation,omitempty"`
	ReadyToSecret          bool   `json:"readyToSecret"`

	Merits Merits `json:"merits"`

	// Derived fields, recomputed by the aggregator on every contributing edit.
	Fullness   int     `json:"fullness"`
	FinalScore float64 `json:"finalScore"`

	// State controlled through the access gate and the booking machine.
	IsFinal     bool  `json:"isFinal"`
	WorkGroupID *uint `json:"workGroupId,omitempty"`

	CreateDate time.Time `json:"createDate"`
	UpdateDate time.Time `json:"updateDate"`
}

// Merits is the fixed set of boolean merit indicators contributing to the
// final score.
type Merits struct {
	InternationalArticles           bool `json:"internationalArticles"`
	Patents                         bool `json:"patents"`
	VacArticles                     bool `json:"vacArticles"`
	InnovationProposals             bool `json:"innovationProposals"`
	RincArticles                    bool `json:"rincArticles"`
	EvmRegister                     bool `json:"evmRegister"`
	InternationalOlympics           bool `json:"internationalOlympics"`
	PresidentScholarship            bool `json:"presidentScholarship"`
	CountryOlympics                 bool `json:"countryOlympics"`
	GovernmentScholarship           bool `json:"governmentScholarship"`
	MilitaryGrants                  bool `json:"militaryGrants"`
	RegionOlympics                  bool `json:"regionOlympics"`
	CityOlympics                    bool `json:"cityOlympics"`
	CommercialExperience            bool `json:"commercialExperience"`
	OpkExperience                   bool `json:"opkExperience"`
	ScienceExperience               bool `json:"scienceExperience"`
	MilitarySportAchievements       bool `json:"militarySportAchievements"`
	SportAchievements               bool `json:"sportAchievements"`
	CompliancePriorDirection        bool `json:"compliancePriorDirection"`
	ComplianceAdditionalDirection   bool `json:"complianceAdditionalDirection"`
	PostgraduatePriorDirection      bool `json:"postgraduatePriorDirection"`
	PostgraduateAdditionalDirection bool `json:"postgraduateAdditionalDirection"`
}

// Flags yields the merit indicators as (name, set) pairs in a fixed order so
// score computation stays deterministic.
func (m Merits) Flags() []MeritFlag {
	return []MeritFlag{
		{"international_articles", m.InternationalArticles},
		{"patents", m.Patents},
		{"vac_articles", m.VacArticles},
		{"innovation_proposals", m.InnovationProposals},
		{"rinc_articles", m.RincArticles},
		{"evm_register", m.EvmRegister},
		{"international_olympics", m.InternationalOlympics},
		{"president_scholarship", m.PresidentScholarship},
		{"country_olympics", m.CountryOlympics},
		{"government_scholarship", m.GovernmentScholarship},
		{"military_grants", m.MilitaryGrants},
		{"region_olympics", m.RegionOlympics},
		{"city_olympics", m.CityOlympics},
		{"commercial_experience", m.CommercialExperience},
		{"opk_experience", m.OpkExperience},
		{"science_experience", m.ScienceExperience},
		{"military_sport_achievements", m.MilitarySportAchievements},
		{"sport_achievements", m.SportAchievements},
		{"compliance_prior_direction", m.CompliancePriorDirection},
		{"compliance_additional_direction", m.ComplianceAdditionalDirection},
		{"postgraduate_prior_direction", m.PostgraduatePriorDirection},
		{"postgraduate_additional_direction", m.PostgraduateAdditionalDirection},
	}
}

type MeritFlag struct {
	Name string
	Set  bool
}

// Education is one education record of an application.
type Education struct {
	ID             uint    `json:"id"`
	ApplicationID  uint    `json:"applicationId"`
	EducationType  string  `json:"educationType"`
	University     string  `json:"university"`
	Specialization string  `json:"specialization"`
	AvgScore       float64 `json:"avgScore"`
	EndYear        int     `json:"endYear"`
	IsEnded        bool    `json:"isEnded"`
	ThemeOfDiploma string  `json:"themeOfDiploma,omitempty"`
}

// Competence is a node in the competence forest. Root nodes have nil parent.
// Only is_estimated leaves carry candidate levels.
type Competence struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ParentID     *uint  `json:"parentId,omitempty"`
	IsEstimated  bool   `json:"isEstimated"`
	DirectionIDs []uint `json:"directionIds,omitempty"`
}

// CompetenceNode is a projected tree node with resolved children and,
// optionally, one application's self-assessed level.
type CompetenceNode struct {
	Competence
	Level    *int             `json:"level,omitempty"`
	Children []CompetenceNode `json:"children,omitempty"`
}

// CompetencyAssessment records one application's level for one competence.
// Unique per (application, competence); re-submission updates in place.
type CompetencyAssessment struct {
	ApplicationID uint `json:"applicationId"`
	CompetenceID  uint `json:"competenceId"`
	Level         int  `json:"level"`
}

// WorkGroup groups booked applications inside one affiliation.
type WorkGroup struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	AffiliationID uint   `json:"affiliationId"`
}

// ApplicationNote is a master's annotation, visible to masters sharing at
// least one of its tagged affiliations.
type ApplicationNote struct {
	ID             uint      `json:"id"`
	ApplicationID  uint      `json:"applicationId"`
	AuthorID       uint      `json:"authorId"`
	Text           string    `json:"text"`
	AffiliationIDs []uint    `json:"affiliationIds"`
	CreateDate     time.Time `json:"createDate"`
}

// File is member-owned blob metadata. Blob storage itself is external.
type File struct {
	ID         uint      `json:"id"`
	MemberID   uint      `json:"memberId"`
	FileName   string    `json:"fileName"`
	FilePath   string    `json:"filePath"`
	IsTemplate bool      `json:"isTemplate"`
	CreateDate time.Time `json:"createDate"`
}
