package usecase

import (
	"context"

	"holo-api/internal/domain/entity"
	"holo-api/internal/domain/repository"
	"holo-api/internal/service"
	"holo-api/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AccountUsecase covers operations on the caller's own account. Each of
// them invalidates tokens issued before it.
type AccountUsecase interface {
	ChangePassword(ctx context.Context, caller *entity.User, oldPassword, newPassword string) error
	LogoutAll(ctx context.Context, caller *entity.User) error
	DeleteAccount(ctx context.Context, caller *entity.User) error
}

type accountUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	userRepo                repository.UserRepository
	patientProfileRepo      repository.PatientProfileRepository
	psychologistProfileRepo repository.PsychologistProfileRepository
	relationshipRepo        repository.RelationshipRepository
	avatarRepo              repository.AvatarRepository
	drawingRepo             repository.DrawingRepository
	conversationLogRepo     repository.ConversationLogRepository
	auditService            service.AuditService
	hasher                  *password.Hasher
}

func NewAccountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	psychologistProfileRepo repository.PsychologistProfileRepository,
	relationshipRepo repository.RelationshipRepository,
	avatarRepo repository.AvatarRepository,
	drawingRepo repository.DrawingRepository,
	conversationLogRepo repository.ConversationLogRepository,
	auditService service.AuditService,
	hasher *password.Hasher,
) AccountUsecase {
	return &accountUsecase{
		db:                      db,
		log:                     log,
		userRepo:                userRepo,
		patientProfileRepo:      patientProfileRepo,
		psychologistProfileRepo: psychologistProfileRepo,
		relationshipRepo:        relationshipRepo,
		avatarRepo:              avatarRepo,
		drawingRepo:             drawingRepo,
		conversationLogRepo:     conversationLogRepo,
		auditService:            auditService,
		hasher:                  hasher,
	}
}

func (u *accountUsecase) ChangePassword(ctx context.Context, caller *entity.User, oldPassword, newPassword string) error {
	if caller == nil {
		return ErrUnauthenticated
	}

	hashedPassword, err := u.hasher.Hash(newPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return ErrUnknownSubject
	}

	// Validate old password
	if !u.hasher.Verify(oldPassword, user.Password) {
		return ErrInvalidOldPassword
	}

	if err := u.userRepo.UpdatePassword(ctx, tx, user.ID, hashedPassword); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.auditService.LogEvent(ctx, tx, &user.ID, entity.AuditActionUserPasswordChange, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *accountUsecase) LogoutAll(ctx context.Context, caller *entity.User) error {
	if caller == nil {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.IncrementTokenVersion(ctx, tx, caller.ID); err != nil {
		u.log.Warnf("Failed to increment token version: %+v", err)
		return err
	}

	if err := u.auditService.LogEvent(ctx, tx, &caller.ID, entity.AuditActionUserLogoutAll, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// DeleteAccount removes the account together with its relationship edges
// in both directions, its profiles and its content.
func (u *accountUsecase) DeleteAccount(ctx context.Context, caller *entity.User) error {
	if caller == nil {
		return ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, caller.ID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil {
		return ErrUnknownSubject
	}

	if err := u.relationshipRepo.DeleteByUser(ctx, tx, user.ID); err != nil {
		u.log.Warnf("Failed to delete relationships: %+v", err)
		return err
	}

	switch user.Role {
	case entity.RolePatient:
		if err := u.deletePatientData(ctx, tx, user.ID); err != nil {
			return err
		}
	case entity.RolePsychologist:
		if err := u.psychologistProfileRepo.Delete(ctx, tx, user.ID); err != nil {
			u.log.Warnf("Failed to delete psychologist profile: %+v", err)
			return err
		}
	}

	if err := u.userRepo.Delete(ctx, tx, user.ID); err != nil {
		u.log.Warnf("Failed to delete user: %+v", err)
		return err
	}

	// Audit log
	oldValue := map[string]string{"email": user.Email, "role": user.Role.String()}
	if err := u.auditService.LogDelete(ctx, tx, &user.ID, entity.AuditActionUserDelete, "user", user.ID, oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *accountUsecase) deletePatientData(ctx context.Context, tx *gorm.DB, patientID uint) error {
	if err := u.avatarRepo.DeleteByPatient(ctx, tx, patientID); err != nil {
		u.log.Warnf("Failed to delete avatars: %+v", err)
		return err
	}
	if err := u.drawingRepo.DeleteByPatient(ctx, tx, patientID); err != nil {
		u.log.Warnf("Failed to delete drawings: %+v", err)
		return err
	}
	if err := u.conversationLogRepo.DeleteByPatient(ctx, tx, patientID); err != nil {
		u.log.Warnf("Failed to delete conversation logs: %+v", err)
		return err
	}
	if err := u.patientProfileRepo.Delete(ctx, tx, patientID); err != nil {
		u.log.Warnf("Failed to delete patient profile: %+v", err)
		return err
	}
	return nil
}
