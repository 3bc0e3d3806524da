package repository

import (
	"context"

	"holo-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AvatarRepository interface {
	Create(ctx context.Context, db *gorm.DB, avatar *entity.PatientAvatar) error
	FindByPatient(ctx context.Context, db *gorm.DB, patientID uint, limit, offset int) ([]entity.PatientAvatar, error)
	DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uint) error
}

type DrawingRepository interface {
	Create(ctx context.Context, db *gorm.DB, drawing *entity.PatientDrawing) error
	FindByPatient(ctx context.Context, db *gorm.DB, patientID uint, limit, offset int) ([]entity.PatientDrawing, error)
	DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uint) error
}

type ConversationLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.ConversationLog) error
	FindByPatient(ctx context.Context, db *gorm.DB, patientID uint, limit, offset int) ([]entity.ConversationLog, error)
	DeleteByPatient(ctx context.Context, db *gorm.DB, patientID uint) error
}
