package presenter

import (
	"time"

	"github.com/scirota/selection-api/internal/domain"
)

// Application renders an application for the requesting role. Reviewers see
// the full record; candidates get their own record without the four
// direction-compliance flags, which are reviewer assessments.
func Application(actor domain.RoleContext, app domain.Application) any {
	if actor.IsMaster() || actor.IsAdmin {
		return app
	}
	return slaveApplicationView(app)
}

type slaveMeritsView struct {
	InternationalArticles     bool `json:"internationalArticles"`
	Patents                   bool `json:"patents"`
	VacArticles               bool `json:"vacArticles"`
	InnovationProposals       bool `json:"innovationProposals"`
	RincArticles              bool `json:"rincArticles"`
	EvmRegister               bool `json:"evmRegister"`
	InternationalOlympics     bool `json:"internationalOlympics"`
	PresidentScholarship      bool `json:"presidentScholarship"`
	CountryOlympics           bool `json:"countryOlympics"`
	GovernmentScholarship     bool `json:"governmentScholarship"`
	MilitaryGrants            bool `json:"militaryGrants"`
	RegionOlympics            bool `json:"regionOlympics"`
	CityOlympics              bool `json:"cityOlympics"`
	CommercialExperience      bool `json:"commercialExperience"`
	OpkExperience             bool `json:"opkExperience"`
	ScienceExperience         bool `json:"scienceExperience"`
	MilitarySportAchievements bool `json:"militarySportAchievements"`
	SportAchievements         bool `json:"sportAchievements"`
}

type slaveApplication struct {
	ID       uint `json:"id"`
	MemberID uint `json:"memberId"`

	BirthDay     time.Time `json:"birthDay"`
	BirthPlace   string    `json:"birthPlace"`
	Nationality  string    `json:"nationality"`
	Commissariat string    `json:"commissariat"`
	HealthGroup  string    `json:"healthGroup"`
	DraftYear    int       `json:"draftYear"`
	DraftSeason  int       `json:"draftSeason"`

	ScientificAchievements string `json:"scientificAchievements,omitempty"`
	Scholarships           string `json:"scholarships,omitempty"`
	CandidateExams         string `json:"candidateExams,omitempty"`
	SportingAchievements   string `json:"sportingAchievements,omitempty"`
	Hobby                  string `json:"hobby,omitempty"`
	OtherInformation       string `json:"otherInformation,omitempty"`
	ReadyToSecret          bool   `json:"readyToSecret"`

	Merits slaveMeritsView `json:"merits"`

	Fullness   int     `json:"fullness"`
	FinalScore float64 `json:"finalScore"`
	IsFinal    bool    `json:"isFinal"`

	CreateDate time.Time `json:"createDate"`
	UpdateDate time.Time `json:"updateDate"`
}

func slaveApplicationView(app domain.Application) slaveApplication {
	m := app.Merits
	return slaveApplication{
		ID:                     app.ID,
		MemberID:               app.MemberID,
		BirthDay:               app.BirthDay,
		BirthPlace:             app.BirthPlace,
		Nationality:            app.Nationality,
		Commissariat:           app.Commissariat,
		HealthGroup:            app.HealthGroup,
		DraftYear:              app.DraftYear,
		DraftSeason:            app.DraftSeason,
		ScientificAchievements: app.ScientificAchievements,
		Scholarships:           app.Scholarships,
		CandidateExams:         app.CandidateExams,
		SportingAchievements:   app.SportingAchievements,
		Hobby:                  app.Hobby,
		OtherInformation:       app.OtherInformation,
		ReadyToSecret:          app.ReadyToSecret,
		Merits: slaveMeritsView{
			InternationalArticles:     m.InternationalArticles,
			Patents:                   m.Patents,
			VacArticles:               m.VacArticles,
			InnovationProposals:       m.InnovationProposals,
			RincArticles:              m.RincArticles,
			EvmRegister:               m.EvmRegister,
			InternationalOlympics:     m.InternationalOlympics,
			PresidentScholarship:      m.PresidentScholarship,
			CountryOlympics:           m.CountryOlympics,
			GovernmentScholarship:     m.GovernmentScholarship,
			MilitaryGrants:            m.MilitaryGrants,
			RegionOlympics:            m.RegionOlympics,
			CityOlympics:              m.CityOlympics,
			CommercialExperience:      m.CommercialExperience,
			OpkExperience:             m.OpkExperience,
			ScienceExperience:         m.ScienceExperience,
			MilitarySportAchievements: m.MilitarySportAchievements,
			SportAchievements:         m.SportAchievements,
		},
		Fullness:   app.Fullness,
		FinalScore: app.FinalScore,
		IsFinal:    app.IsFinal,
		CreateDate: app.CreateDate,
		UpdateDate: app.UpdateDate,
	}
}
