package models

type Member struct {
	ID           uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Login        string `json:"login" gorm:"type:text;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"type:text;not null"`
	FirstName    string `json:"firstName" gorm:"type:text"`
	LastName     string `json:"lastName" gorm:"type:text"`
	FatherName   string `json:"fatherName" gorm:"type:text"`
	Phone        string `json:"phone" gorm:"type:text"`
	Role         string `json:"role" gorm:"type:text;index"` // slave, master
	IsAdmin      bool   `json:"isAdmin" gorm:"type:boolean;not null;default:false"`
}

type Direction struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:text;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
}

type Affiliation struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	DirectionID uint      `json:"directionId" gorm:"index:affiliation_unit,unique"`
	Direction   Direction `json:"direction" gorm:"constraint:OnDelete:CASCADE;"`
	Company     int       `json:"company" gorm:"index:affiliation_unit,unique"`
	Platoon     int       `json:"platoon" gorm:"index:affiliation_unit,unique"`
}

type MemberAffiliation struct {
	MemberID      uint        `json:"memberId" gorm:"primaryKey"`
	Member        Member      `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	AffiliationID uint        `json:"affiliationId" gorm:"primaryKey"`
	Affiliation   Affiliation `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
}
