package service

import (
	"context"
	"strconv"

	"holo-api/internal/domain/entity"
	"holo-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit entries inside the caller's transaction.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, oldValue interface{}) error
	LogEvent(ctx context.Context, tx *gorm.DB, userID *uint, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatUint(uint64(entityID), 10),
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatUint(uint64(entityID), 10),
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID uint, oldValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatUint(uint64(entityID), 10),
		"old_value": oldValue,
		"new_value": nil,
	})
}

// LogEvent logs an action that is not tied to a single entity change.
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *uint, action string, metadata entity.JSON) error {
	return s.write(ctx, tx, userID, action, metadata)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, userID *uint, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
