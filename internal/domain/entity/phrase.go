package entity

// Phrase is a motivational phrase tagged with an eating-disorder (TCA) type.
type Phrase struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TcaType string `gorm:"type:varchar(50);not null;index" json:"tca_type"`
	Phrase  string `gorm:"type:text;not null" json:"phrase"`
}

func (Phrase) TableName() string {
	return "tca_phrases"
}

const (
	TcaTypeAnorexia = "anorexia"
	TcaTypeBulimia  = "bulimia"
	TcaTypeGeneral  = "general"
)
