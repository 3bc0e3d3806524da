package entity

import "time"

// TherapistPatient is a directed edge from a psychologist to an assigned
// patient. The composite key makes each pair unique; PatientID carries its
// own index for the reverse lookup.
type TherapistPatient struct {
	TherapistID uint      `gorm:"primaryKey;autoIncrement:false" json:"therapist_id"`
	PatientID   uint      `gorm:"primaryKey;autoIncrement:false;index" json:"patient_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Therapist *User `gorm:"foreignKey:TherapistID;constraint:OnDelete:CASCADE" json:"-"`
	Patient   *User `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TherapistPatient) TableName() string {
	return "therapist_patients"
}
