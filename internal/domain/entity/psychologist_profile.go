package entity

type PsychologistProfile struct {
	UserID    uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Specialty string `gorm:"type:varchar(150)" json:"specialty,omitempty"`
}

func (PsychologistProfile) TableName() string {
	return "psychologist_profiles"
}
