package repository

import (
	"context"

	"holo-api/internal/domain/entity"

	"gorm.io/gorm"
)

// Profiles are read through the user preloads; these repositories only write.
type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	Delete(ctx context.Context, db *gorm.DB, userID uint) error
}

type PsychologistProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PsychologistProfile) error
	Update(ctx context.Context, db *gorm.DB, profile *entity.PsychologistProfile) error
	Delete(ctx context.Context, db *gorm.DB, userID uint) error
}
