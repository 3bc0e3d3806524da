package entity

import "time"

type PatientAvatar struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    uint      `gorm:"not null;index" json:"patient_id"`
	HairStyle    string    `gorm:"type:varchar(50)" json:"hair_style"`
	HairColor    string    `gorm:"type:varchar(50)" json:"hair_color"`
	EyeColor     string    `gorm:"type:varchar(50)" json:"eye_color"`
	EyebrowStyle string    `gorm:"type:varchar(50)" json:"eyebrow_style"`
	SkinTone     string    `gorm:"type:varchar(50)" json:"skin_tone"`
	FaceShape    string    `gorm:"type:varchar(50)" json:"face_shape"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PatientAvatar) TableName() string {
	return "patient_avatars"
}
