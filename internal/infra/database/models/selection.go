package models

import (
	"time"

	"github.com/scirota/selection-api/internal/domain"
)

type Application struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID uint   `json:"memberId" gorm:"uniqueIndex"`
	Member   Member `json:"-" gorm:"constraint:OnDelete:CASCADE;"`

	BirthDay     time.Time `json:"birthDay" gorm:"type:date"`
	BirthPlace   string    `json:"birthPlace" gorm:"type:text"`
	Nationality  string    `json:"nationality" gorm:"type:text"`
	Commissariat string    `json:"commissariat" gorm:"type:text"`
	HealthGroup  string    `json:"healthGroup" gorm:"type:text"`
	DraftYear    int       `json:"draftYear" gorm:"index"`
	DraftSeason  int       `json:"draftSeason" gorm:"index"`

	ScientificAchievements string `json:"scientificAchievements" gorm:"type:text"`
	Scholarships           string `json:"scholarships" gorm:"type:text"`
	CandidateExams         string `json:"candidateExams" gorm:"type:text"`
	SportingAchievements   string `json:"sportingAchievements" gorm:"type:text"`
	Hobby                  string `json:"hobby" gorm:"type:text"`
	OtherInformation       string `json:"otherInformation" gorm:"type:text"`
	ReadyToSecret          bool   `json:"readyToSecret" gorm:"type:boolean;not null;default:false"`

	Merits domain.Merits `json:"merits" gorm:"embedded"`

	Fullness   int     `json:"fullness" gorm:"not null;default:0"`
	FinalScore float64 `json:"finalScore" gorm:"not null;default:0"`

	IsFinal     bool       `json:"isFinal" gorm:"type:boolean;not null;default:false"`
	WorkGroupID *uint      `json:"workGroupId"`
	WorkGroup   *WorkGroup `json:"-" gorm:"constraint:OnDelete:SET NULL;"`

	CreateDate time.Time `json:"createDate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	UpdateDate time.Time `json:"updateDate" gorm:"autoUpdateTime"`
}

type ApplicationDirection struct {
	ApplicationID uint        `json:"applicationId" gorm:"primaryKey"`
	Application   Application `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	DirectionID   uint        `json:"directionId" gorm:"primaryKey"`
	Direction     Direction   `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type Education struct {
	ID             uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	ApplicationID  uint        `json:"applicationId" gorm:"index"`
	Application    Application `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	EducationType  string      `json:"educationType" gorm:"type:text"` // b, m, a, s
	University     string      `json:"university" gorm:"type:text"`
	Specialization string      `json:"specialization" gorm:"type:text"`
	AvgScore       float64     `json:"avgScore"`
	EndYear        int         `json:"endYear"`
	IsEnded        bool        `json:"isEnded" gorm:"type:boolean;not null;default:false"`
	ThemeOfDiploma string      `json:"themeOfDiploma" gorm:"type:text"`
}

type Competence struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:text;not null"`
	ParentID    *uint  `json:"parentId" gorm:"index"`
	IsEstimated bool   `json:"isEstimated" gorm:"type:boolean;not null;default:false"`
}

type DirectionCompetence struct {
	DirectionID  uint       `json:"directionId" gorm:"primaryKey"`
	Direction    Direction  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	CompetenceID uint       `json:"competenceId" gorm:"primaryKey"`
	Competence   Competence `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type ApplicationCompetency struct {
	ApplicationID uint        `json:"applicationId" gorm:"index:app_competence,unique"`
	Application   Application `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	CompetenceID  uint        `json:"competenceId" gorm:"index:app_competence,unique"`
	Competence    Competence  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Level         int         `json:"level" gorm:"not null;default:0"`
}

// Booking carries both machine states: booked and in_wishlist. The composite
// unique index is the race backstop for duplicate wishlist rows; the
// single-booked invariant is enforced under a row lock in the repository.
type Booking struct {
	ID            uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	SlaveID       uint        `json:"slaveId" gorm:"index;index:booking_entry,unique"`
	Slave         Member      `json:"-" gorm:"foreignKey:SlaveID;constraint:OnDelete:CASCADE;"`
	MasterID      uint        `json:"masterId" gorm:"index:booking_entry,unique"`
	Master        Member      `json:"-" gorm:"foreignKey:MasterID;constraint:OnDelete:CASCADE;"`
	AffiliationID uint        `json:"affiliationId" gorm:"index:booking_entry,unique"`
	Affiliation   Affiliation `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	BookingType   string      `json:"bookingType" gorm:"type:text;index:booking_entry,unique"` // booked, in_wishlist
	CreateDate    time.Time   `json:"createDate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type WorkGroup struct {
	ID            uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string      `json:"name" gorm:"type:text;not null"`
	Description   string      `json:"description" gorm:"type:text"`
	AffiliationID uint        `json:"affiliationId" gorm:"index"`
	Affiliation   Affiliation `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type ApplicationNote struct {
	ID            uint        `json:"id" gorm:"primaryKey;autoIncrement"`
	ApplicationID uint        `json:"applicationId" gorm:"index"`
	Application   Application `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	AuthorID      uint        `json:"authorId" gorm:"index"`
	Author        Member      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Text          string      `json:"text" gorm:"type:text;not null"`
	CreateDate    time.Time   `json:"createDate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type NoteAffiliation struct {
	NoteID        uint            `json:"noteId" gorm:"primaryKey"`
	Note          ApplicationNote `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	AffiliationID uint            `json:"affiliationId" gorm:"primaryKey"`
	Affiliation   Affiliation     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type ViewedApplication struct {
	MemberID      uint        `json:"memberId" gorm:"primaryKey"`
	Member        Member      `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ApplicationID uint        `json:"applicationId" gorm:"primaryKey"`
	Application   Application `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}

type File struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	MemberID   uint      `json:"memberId" gorm:"index"`
	Member     Member    `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	FileName   string    `json:"fileName" gorm:"type:text;not null"`
	FilePath   string    `json:"filePath" gorm:"type:text;not null"`
	IsTemplate bool      `json:"isTemplate" gorm:"type:boolean;not null;default:false"`
	CreateDate time.Time `json:"createDate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
