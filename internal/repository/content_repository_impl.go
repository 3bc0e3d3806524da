package repository

import (
	"context"

	"holo-api/internal/domain/entity"
	domainRepo "holo-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Avatar Repository

type avatarRepository struct{}

func NewAvatarRepository() domainRepo.AvatarRepository {
	return &avatarRepository{}
}

func (r *avatarRepository) Create(ctx context.Context, db *gorm.DB, avatar *entity.PatientAvatar) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(avatar).Error
}

func (r *avatarRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID uint, limit, offset int) ([]entity.PatientAvatar, error) {
	var avatars []entity.PatientAvatar
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&avatars).Error
	if err != nil {
		return nil, err
	}
	return avatars, nil
}

func (r *avatarRepository) DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uint) error {
	return db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.PatientAvatar{}).Error
}

// Drawing Repository

type drawingRepository struct{}

func NewDrawingRepository() domainRepo.DrawingRepository {
	return &drawingRepository{}
}

func (r *drawingRepository) Create(ctx context.Context, db *gorm.DB, drawing *entity.PatientDrawing) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(drawing).Error
}

func (r *drawingRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID uint, limit, offset int) ([]entity.PatientDrawing, error) {
	var drawings []entity.PatientDrawing
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&drawings).Error
	if err != nil {
		return nil, err
	}
	return drawings, nil
}

func (r *drawingRepository) DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uint) error {
	return db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.PatientDrawing{}).Error
}

// Conversation Log Repository

type conversationLogRepository struct{}

func NewConversationLogRepository() domainRepo.ConversationLogRepository {
	return &conversationLogRepository{}
}

func (r *conversationLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.ConversationLog) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(log).Error
}

func (r *conversationLogRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID uint, limit, offset int) ([]entity.ConversationLog, error) {
	var logs []entity.ConversationLog
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *conversationLogRepository) DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uint) error {
	return db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&entity.ConversationLog{}).Error
}
