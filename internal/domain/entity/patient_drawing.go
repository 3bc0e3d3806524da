package entity

import "time"

// PatientDrawing stores a drawing as an opaque base64 or SVG payload.
type PatientDrawing struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID   uint      `gorm:"not null;index" json:"patient_id"`
	Title       string    `gorm:"type:varchar(100)" json:"title,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageData   string    `gorm:"type:text;not null" json:"image_data"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PatientDrawing) TableName() string {
	return "patient_drawings"
}
