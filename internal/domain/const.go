package domain

const (
	RequesterIDCtxKey      = "sel-requesterId"
	RequesterContextCtxKey = "sel-requesterContext"
)

// Member roles. A superuser flag is orthogonal to the role and lives on the
// member itself.
const (
	RoleSlave  = "slave"
	RoleMaster = "master"
)

// Booking types.
const (
	BookingBooked     = "booked"
	BookingInWishlist = "in_wishlist"
)

// Draft seasons.
const (
	DraftSeasonSpring = 1
	DraftSeasonAutumn = 2
)

func DraftSeasonString(season int) string {
	switch season {
	case DraftSeasonSpring:
		return "spring"
	case DraftSeasonAutumn:
		return "autumn"
	default:
		return "unknown"
	}
}

// Education program types.
const (
	EducationBachelor   = "b"
	EducationMaster     = "m"
	EducationPostgrad   = "a"
	EducationSpecialist = "s"
)

func ValidEducationType(t string) bool {
	switch t {
	case EducationBachelor, EducationMaster, EducationPostgrad, EducationSpecialist:
		return true
	}
	return false
}

func EducationTypeString(t string) string {
	switch t {
	case EducationBachelor:
		return "bachelor"
	case EducationMaster:
		return "master"
	case EducationPostgrad:
		return "postgraduate"
	case EducationSpecialist:
		return "specialist"
	default:
		return "unknown"
	}
}

// Competency self-assessment bounds.
const (
	CompetencyLevelMin = 0
	CompetencyLevelMax = 3
)

// DefaultMaxDirections caps the chosen-directions list when the config does
// not override it.
const DefaultMaxDirections = 4

// DefaultPageSize is the application list page size.
const DefaultPageSize = 50
