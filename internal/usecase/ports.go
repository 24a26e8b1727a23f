package usecase

import (
	"context"

	"github.com/scirota/selection-api/internal/domain"
)

// MemberRepository defines persistence/lookup for member accounts.
type MemberRepository interface {
	Get(ctx context.Context, id uint) (domain.Member, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Member, error)
	GetByLogin(ctx context.Context, login string) (domain.Member, string, error)
	Affiliations(ctx context.Context, memberID uint) ([]domain.Affiliation, error)
}

// AffiliationRepository resolves affiliations and their directions.
type AffiliationRepository interface {
	Get(ctx context.Context, id uint) (domain.Affiliation, error)
	ListByDirectionIDs(ctx context.Context, directionIDs []uint) ([]domain.Affiliation, error)
}

// DirectionRepository lists research directions.
type DirectionRepository interface {
	All(ctx context.Context) ([]domain.Direction, error)
	Get(ctx context.Context, id uint) (domain.Direction, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Direction, error)
	Create(ctx context.Context, d domain.Direction) (domain.Direction, error)
}

// ApplicationRepository defines storage operations for applications and their
// direct sub-entities.
type ApplicationRepository interface {
	Create(ctx context.Context, app domain.Application) (domain.Application, error)
	Get(ctx context.Context, id uint) (domain.Application, error)
	GetByMember(ctx context.Context, memberID uint) (domain.Application, error)
	Update(ctx context.Context, app domain.Application) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error)

	SaveScores(ctx context.Context, id uint, fullness int, finalScore float64) error
	SetFinal(ctx context.Context, id uint, isFinal bool) error
	SetWorkGroup(ctx context.Context, id uint, workGroupID *uint) error

	DirectionIDs(ctx context.Context, id uint) ([]uint, error)
	SetDirections(ctx context.Context, id uint, directionIDs []uint) error
	DirectionsByApplications(ctx context.Context, ids []uint) (map[uint][]domain.Direction, error)

	Assessments(ctx context.Context, id uint) ([]domain.CompetencyAssessment, error)
	UpsertAssessments(ctx context.Context, id uint, assessments []domain.CompetencyAssessment) error

	MarkViewed(ctx context.Context, memberID, applicationID uint) error
	ViewedSet(ctx context.Context, memberID uint, applicationIDs []uint) (map[uint]bool, error)
}

// EducationRepository defines storage for education rows.
type EducationRepository interface {
	Get(ctx context.Context, id uint) (domain.Education, error)
	ListByApplication(ctx context.Context, applicationID uint) ([]domain.Education, error)
	ListByApplications(ctx context.Context, applicationIDs []uint) (map[uint][]domain.Education, error)
	Create(ctx context.Context, edu domain.Education) (domain.Education, error)
	Update(ctx context.Context, edu domain.Education) error
	Delete(ctx context.Context, id uint) error
}

// BookingRepository defines storage for the booking state machine. The
// write operations run in one transaction and re-verify preconditions under
// a row lock so racing writers cannot violate the single-booked invariant.
type BookingRepository interface {
	Get(ctx context.Context, id uint) (domain.Booking, error)
	ListBySlave(ctx context.Context, slaveID uint, bookingType string) ([]domain.Booking, error)
	ListBySlaves(ctx context.Context, slaveIDs []uint) ([]domain.Booking, error)
	GetBookedBySlave(ctx context.Context, slaveID uint) (*domain.Booking, error)
	CreateBooked(ctx context.Context, b domain.Booking) (domain.Booking, error)
	CreateWishlist(ctx context.Context, b domain.Booking) (domain.Booking, error)
	DeleteBookedCascade(ctx context.Context, b domain.Booking) error
	Delete(ctx context.Context, id uint) error
}

// CompetenceRepository defines storage for the competence forest.
type CompetenceRepository interface {
	All(ctx context.Context) ([]domain.Competence, error)
	Get(ctx context.Context, id uint) (domain.Competence, error)
	Create(ctx context.Context, c domain.Competence) (domain.Competence, error)
	ByDirection(ctx context.Context, directionID uint, picked bool) ([]domain.Competence, error)
	DirectionCompetenceIDs(ctx context.Context, directionID uint) ([]uint, error)
	ResolveIDs(ctx context.Context, ids []uint) ([]uint, error)
	UpdateDirectionSet(ctx context.Context, directionID uint, add, remove []uint) error
}

// WorkGroupRepository defines storage for work groups.
type WorkGroupRepository interface {
	Get(ctx context.Context, id uint) (domain.WorkGroup, error)
	ListByAffiliations(ctx context.Context, affiliationIDs []uint) ([]domain.WorkGroup, error)
	Create(ctx context.Context, wg domain.WorkGroup) (domain.WorkGroup, error)
	Update(ctx context.Context, wg domain.WorkGroup) error
	Delete(ctx context.Context, id uint) error
}

// NoteRepository defines storage for application notes.
type NoteRepository interface {
	Get(ctx context.Context, id uint) (domain.ApplicationNote, error)
	ListVisible(ctx context.Context, applicationID uint, affiliationIDs []uint) ([]domain.ApplicationNote, error)
	Create(ctx context.Context, note domain.ApplicationNote) (domain.ApplicationNote, error)
	Update(ctx context.Context, note domain.ApplicationNote) error
	Delete(ctx context.Context, id uint) error
}

// FileRepository defines storage for blob metadata. Blob bytes live outside
// the core.
type FileRepository interface {
	Get(ctx context.Context, id uint) (domain.File, error)
	ListVisible(ctx context.Context, memberID uint) ([]domain.File, error)
	ListByOwner(ctx context.Context, memberID uint) ([]domain.File, error)
	Create(ctx context.Context, f domain.File) (domain.File, error)
	Delete(ctx context.Context, id uint) error
}

// Signaler publishes booking transitions for the realtime feed.
type Signaler interface {
	PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error
}
