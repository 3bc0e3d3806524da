package repository

import (
	"context"

	"holo-api/internal/domain/entity"
	domainRepo "holo-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type relationshipRepository struct{}

func NewRelationshipRepository() domainRepo.RelationshipRepository {
	return &relationshipRepository{}
}

func (r *relationshipRepository) Create(ctx context.Context, db *gorm.DB, edge *entity.TherapistPatient) error {
	return db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error
}

func (r *relationshipRepository) Delete(ctx context.Context, db *gorm.DB, therapistID, patientID uint) (int64, error) {
	result := db.WithContext(ctx).
		Where("therapist_id = ? AND patient_id = ?", therapistID, patientID).
		Delete(&entity.TherapistPatient{})
	return result.RowsAffected, result.Error
}

func (r *relationshipRepository) Exists(ctx context.Context, db *gorm.DB, therapistID, patientID uint) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&entity.TherapistPatient{}).
		Where("therapist_id = ? AND patient_id = ?", therapistID, patientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *relationshipRepository) FindPatientsByTherapist(ctx context.Context, db *gorm.DB, therapistID uint) ([]entity.User, error) {
	var patients []entity.User
	err := db.WithContext(ctx).
		Joins("JOIN therapist_patients ON therapist_patients.patient_id = users.id").
		Where("therapist_patients.therapist_id = ? AND users.role = ?", therapistID, entity.RolePatient).
		Preload("PatientProfile").
		Order("users.id ASC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *relationshipRepository) FindTherapistsByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.User, error) {
	var therapists []entity.User
	err := db.WithContext(ctx).
		Joins("JOIN therapist_patients ON therapist_patients.therapist_id = users.id").
		Where("therapist_patients.patient_id = ? AND users.role = ?", patientID, entity.RolePsychologist).
		Preload("PsychologistProfile").
		Order("users.id ASC").
		Find(&therapists).Error
	if err != nil {
		return nil, err
	}
	return therapists, nil
}

// DeleteByUser removes every edge touching userID, in either direction.
func (r *relationshipRepository) DeleteByUser(ctx context.Context, db *gorm.DB, userID uint) error {
	return db.WithContext(ctx).
		Where("therapist_id = ? OR patient_id = ?", userID, userID).
		Delete(&entity.TherapistPatient{}).Error
}
