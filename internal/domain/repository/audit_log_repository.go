package repository

import (
	"context"

	"holo-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uint, limit int) ([]entity.AuditLog, error)
}
