package repository

import (
	"context"

	"holo-api/internal/domain/entity"
	domainRepo "holo-api/internal/domain/repository"

	"gorm.io/gorm"
)

// Patient Profile Repository

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *patientProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return db.WithContext(ctx).Save(profile).Error
}

func (r *patientProfileRepository) Delete(ctx context.Context, db *gorm.DB, userID uint) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.PatientProfile{}).Error
}

// Psychologist Profile Repository

type psychologistProfileRepository struct{}

func NewPsychologistProfileRepository() domainRepo.PsychologistProfileRepository {
	return &psychologistProfileRepository{}
}

func (r *psychologistProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PsychologistProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *psychologistProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.PsychologistProfile) error {
	return db.WithContext(ctx).Save(profile).Error
}

func (r *psychologistProfileRepository) Delete(ctx context.Context, db *gorm.DB, userID uint) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.PsychologistProfile{}).Error
}
