package domain

// Member is a person account. Role is immutable after registration.
type Member struct {
	ID         uint   `json:"id"`
	Login      string `json:"login"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FatherName string `json:"fatherName,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsAdmin    bool   `json:"isAdmin"`
}

// Direction is a research topic area.
type Direction struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Affiliation is one deployable unit a master administers. Its direction is
// fixed at creation.
type Affiliation struct {
	ID        uint      `json:"id"`
	Direction Direction `json:"direction"`
	Company   int       `json:"company"`
	Platoon   int       `json:"platoon"`
}

// RoleContext is the resolved capability set of a requester. For slaves the
// affiliation/direction ids are derived transitively from the chosen
// directions of their own application, for matching purposes only.
type RoleContext struct {
	MemberID       uint
	Role           string
	IsAdmin        bool
	AffiliationIDs []uint
	DirectionIDs   []uint
}

func (rc RoleContext) IsMaster() bool { return rc.Role == RoleMaster }
func (rc RoleContext) IsSlave() bool  { return rc.Role == RoleSlave }

// HasAffiliation reports whether id is among the requester's affiliations.
func (rc RoleContext) HasAffiliation(id uint) bool {
	for _, a := range rc.AffiliationIDs {
		if a == id {
			return true
		}
	}
	return false
}

// HasDirection reports whether id is among the requester's directions.
func (rc RoleContext) HasDirection(id uint) bool {
	for _, d := range rc.DirectionIDs {
		if d == id {
			return true
		}
	}
	return false
}
