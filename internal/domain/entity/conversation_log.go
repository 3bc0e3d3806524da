package entity

import "time"

type ConversationLog struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID  uint      `gorm:"not null;index" json:"patient_id"`
	Transcript string    `gorm:"type:text;not null" json:"transcript"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Patient *User `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ConversationLog) TableName() string {
	return "conversation_logs"
}
