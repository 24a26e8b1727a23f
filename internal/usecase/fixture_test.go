package usecase

import (
	"context"
	"time"

	"github.com/scirota/selection-api/internal/domain"
)

// fixture wires the in-memory repositories with one slave application and two
// masters administering different affiliations.
type fixture struct {
	members      *mockMemberRepo
	affiliations *mockAffiliationRepo
	directions   *mockDirectionRepo
	applications *mockApplicationRepo
	educations   *mockEducationRepo
	bookings     *mockBookingRepo
	competences  *mockCompetenceRepo
	workGroups   *mockWorkGroupRepo
	notes        *mockNoteRepo
	signaler     *mockSignaler

	scores *ScoreUpdater

	app domain.Application

	slave       domain.RoleContext
	master      domain.RoleContext
	otherMaster domain.RoleContext
	admin       domain.RoleContext
}

const (
	directionRobotics = uint(10)
	directionCyber    = uint(20)
	affiliationFirst  = uint(100)
	affiliationSecond = uint(200)
)

func newFixture() *fixture {
	f := &fixture{
		members:      newMockMemberRepo(),
		affiliations: newMockAffiliationRepo(),
		directions:   newMockDirectionRepo(),
		educations:   newMockEducationRepo(),
		competences:  newMockCompetenceRepo(),
		workGroups:   newMockWorkGroupRepo(),
		notes:        newMockNoteRepo(),
		signaler:     &mockSignaler{},
	}
	f.applications = newMockApplicationRepo(f.directions)
	f.bookings = newMockBookingRepo(f.applications)
	f.scores = NewScoreUpdater(f.applications, f.educations, NewScorer(domain.DefaultScoringWeights()))

	f.directions.directions[directionRobotics] = domain.Direction{ID: directionRobotics, Name: "robotics"}
	f.directions.directions[directionCyber] = domain.Direction{ID: directionCyber, Name: "information security"}
	f.affiliations.affiliations[affiliationFirst] = domain.Affiliation{
		ID:        affiliationFirst,
		Direction: domain.Direction{ID: directionRobotics, Name: "robotics"},
		Company:   1,
		Platoon:   1,
	}
	f.affiliations.affiliations[affiliationSecond] = domain.Affiliation{
		ID:        affiliationSecond,
		Direction: domain.Direction{ID: directionCyber, Name: "information security"},
		Company:   2,
		Platoon:   1,
	}

	f.members.members[1] = domain.Member{ID: 1, Login: "ivanov", Role: domain.RoleSlave}
	f.members.members[2] = domain.Member{ID: 2, Login: "petrov", Role: domain.RoleMaster}
	f.members.members[3] = domain.Member{ID: 3, Login: "sidorov", Role: domain.RoleMaster}
	f.members.members[4] = domain.Member{ID: 4, Login: "root", Role: domain.RoleMaster, IsAdmin: true}
	f.members.affiliations[2] = []domain.Affiliation{f.affiliations.affiliations[affiliationFirst]}
	f.members.affiliations[3] = []domain.Affiliation{f.affiliations.affiliations[affiliationSecond]}

	app, _ := f.applications.Create(context.Background(), domain.Application{
		MemberID:    1,
		BirthDay:    time.Date(2002, 5, 14, 0, 0, 0, 0, time.UTC),
		BirthPlace:  "Kazan",
		Nationality: "RF",
		DraftYear:   time.Now().Year() + 1,
		DraftSeason: domain.DraftSeasonSpring,
	})
	f.app = app
	f.applications.directions[app.ID] = []uint{directionRobotics}

	f.slave = domain.RoleContext{
		MemberID:       1,
		Role:           domain.RoleSlave,
		DirectionIDs:   []uint{directionRobotics},
		AffiliationIDs: []uint{affiliationFirst},
	}
	f.master = domain.RoleContext{
		MemberID:       2,
		Role:           domain.RoleMaster,
		DirectionIDs:   []uint{directionRobotics},
		AffiliationIDs: []uint{affiliationFirst},
	}
	f.otherMaster = domain.RoleContext{
		MemberID:       3,
		Role:           domain.RoleMaster,
		DirectionIDs:   []uint{directionCyber},
		AffiliationIDs: []uint{affiliationSecond},
	}
	f.admin = domain.RoleContext{
		MemberID: 4,
		Role:     domain.RoleMaster,
		IsAdmin:  true,
	}
	return f
}

func (f *fixture) bookingUsecase() *BookingUsecase {
	return NewBookingUsecase(f.applications, f.affiliations, f.bookings, f.signaler)
}

func (f *fixture) applicationUsecase() *ApplicationUsecase {
	return NewApplicationUsecase(
		f.applications, f.educations, f.directions, f.bookings,
		f.workGroups, f.notes, f.scores, domain.DefaultMaxDirections,
	)
}

func (f *fixture) educationUsecase() *EducationUsecase {
	return NewEducationUsecase(f.applications, f.educations, f.bookings, f.scores)
}

func (f *fixture) competenceUsecase() *CompetenceUsecase {
	return NewCompetenceUsecase(f.competences, f.directions, f.applications)
}

func (f *fixture) listUsecase() *ListUsecase {
	return NewListUsecase(f.applications, f.members, f.educations, f.bookings, f.notes)
}
