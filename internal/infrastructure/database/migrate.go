package database

import (
	"fmt"

	"holo-api/internal/domain/entity"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table. Order matters: users first so
// the foreign keys of the dependent tables resolve.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&entity.User{},
		&entity.PatientProfile{},
		&entity.PsychologistProfile{},
		&entity.TherapistPatient{},
		&entity.PatientAvatar{},
		&entity.PatientDrawing{},
		&entity.ConversationLog{},
		&entity.Phrase{},
		&entity.AuditLog{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}
