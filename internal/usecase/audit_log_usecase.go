package usecase

import (
	"context"

	"holo-api/internal/converter"
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
	"holo-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditTrailLimit = 200

type AuditLogUsecase interface {
	GetMyAuditLogs(ctx context.Context, caller *entity.User) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetMyAuditLogs(ctx context.Context, caller *entity.User) (*dto.AuditLogListResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	logs, err := u.auditLogRepo.FindByUserID(ctx, u.db, caller.ID, auditTrailLimit)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
