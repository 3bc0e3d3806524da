package entity

import (
	"strings"
	"time"
)

// User is the account record shared by patients and psychologists.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"column:hashed_password;type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(150);not null" json:"name"`
	Surname      string    `gorm:"type:varchar(150)" json:"surname,omitempty"`
	Center       string    `gorm:"type:varchar(255)" json:"center,omitempty"`
	Phone        string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role         Role      `gorm:"type:varchar(50);not null;index" json:"role"`
	TokenVersion int       `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	PatientProfile      *PatientProfile      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"patient_profile,omitempty"`
	PsychologistProfile *PsychologistProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"psychologist_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

func (u *User) IsPsychologist() bool {
	return u.Role == RolePsychologist
}

// NormalizeEmail is applied on every write and lookup so that uniqueness
// does not depend on letter case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
