package entity

import "time"

// PatientProfile holds patient-only data, keyed by the owning user.
type PatientProfile struct {
	UserID    uint       `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Birthdate *time.Time `gorm:"type:date" json:"birthdate,omitempty"`
	Treatment string     `gorm:"type:varchar(20)" json:"treatment,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
