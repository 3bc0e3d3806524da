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

// ContentUsecase stores patient-owned content. Patients write and read
// their own records; a psychologist may read the records of a patient
// assigned to them.
type ContentUsecase interface {
	CreateAvatar(ctx context.Context, caller *entity.User, req *dto.CreateAvatarRequest) (*dto.AvatarResponse, error)
	ListAvatars(ctx context.Context, caller *entity.User, query dto.ListQuery) ([]dto.AvatarResponse, error)
	CreateDrawing(ctx context.Context, caller *entity.User, req *dto.CreateDrawingRequest) (*dto.DrawingResponse, error)
	ListDrawings(ctx context.Context, caller *entity.User, query dto.ListQuery) ([]dto.DrawingResponse, error)
	CreateConversationLog(ctx context.Context, caller *entity.User, req *dto.CreateConversationLogRequest) (*dto.ConversationLogResponse, error)
	ListConversationLogs(ctx context.Context, caller *entity.User, query dto.ListQuery) ([]dto.ConversationLogResponse, error)
	ListPatientDrawings(ctx context.Context, caller *entity.User, therapistID, patientID uint, query dto.ListQuery) ([]dto.DrawingResponse, error)
	ListPatientConversationLogs(ctx context.Context, caller *entity.User, therapistID, patientID uint, query dto.ListQuery) ([]dto.ConversationLogResponse, error)
}

type contentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	userRepo            repository.UserRepository
	relationshipRepo    repository.RelationshipRepository
	avatarRepo          repository.AvatarRepository
	drawingRepo         repository.DrawingRepository
	conversationLogRepo repository.ConversationLogRepository
}

func NewContentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	relationshipRepo repository.RelationshipRepository,
	avatarRepo repository.AvatarRepository,
	drawingRepo repository.DrawingRepository,
	conversationLogRepo repository.ConversationLogRepository,
) ContentUsecase {
	return &contentUsecase{
		db:                  db,
		log:                 log,
		userRepo:            userRepo,
		relationshipRepo:    relationshipRepo,
		avatarRepo:          avatarRepo,
		drawingRepo:         drawingRepo,
		conversationLogRepo: conversationLogRepo,
	}
}

func requirePatient(caller *entity.User) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !caller.IsPatient() {
		return ErrForbidden
	}
	return nil
}

func (u *contentUsecase) CreateAvatar(ctx context.Context, caller *entity.User, req *dto.CreateAvatarRequest) (*dto.AvatarResponse, error) {
	if err := requirePatient(caller); err != nil {
		return nil, err
	}

	avatar := &entity.PatientAvatar{
		PatientID:    caller.ID,
		HairStyle:    req.HairStyle,
		HairColor:    req.HairColor,
		EyeColor:     req.EyeColor,
		EyebrowStyle: req.EyebrowStyle,
		SkinTone:     req.SkinTone,
		FaceShape:    req.FaceShape,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.avatarRepo.Create(ctx, tx, avatar); err != nil {
		u.log.Warnf("Failed to create avatar: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AvatarToResponse(avatar), nil
}

func (u *contentUsecase) ListAvatars(ctx context.Context, caller *entity.User, query dto.ListQuery) ([]dto.AvatarResponse, error) {
	if err := requirePatient(caller); err != nil {
		return nil, err
	}

	limit, offset := normalizePaging(query.Limit, query.Offset)
	avatars, err := u.avatarRepo.FindByPatient(ctx, u.db, caller.ID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find avatars: %+v", err)
		return nil, err
	}

	return converter.AvatarsToResponses(avatars), nil
}

func (u *contentUsecase) CreateDrawing(ctx context.Context, caller *entity.User, req *dto.CreateDrawingRequest) (*dto.DrawingResponse, error) {
	if err := requirePatient(caller); err != nil {
		return nil, err
	}

	drawing := &entity.PatientDrawing{
		PatientID:   caller.ID,
		Title:       req.Title,
		Description: req.Description,
		ImageData:   req.ImageData,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.drawingRepo.Create(ctx, tx, drawing); err != nil {
		u.log.Warnf("Failed to create drawing: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DrawingToResponse(drawing), nil
}

func (u *contentUsecase) ListDrawings(ctx context.Context, caller *entity.User, query dto.ListQuery) ([]dto.DrawingResponse, error) {
	if err := requirePatient(caller); err != nil {
		return nil, err
	}

	limit, offset := normalizePaging(query.Limit, query.Offset)
	drawings, err := u.drawingRepo.FindByPatient(ctx, u.db, caller.ID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find drawings: %+v", err)
		return nil, err
	}

	return converter.DrawingsToResponses(drawings), nil
}

func (u *contentUsecase) CreateConversationLog(ctx context.Context, caller *entity.User, req *dto.CreateConversationLogRequest) (*dto.ConversationLogResponse, error) {
	if err := requirePatient(caller); err != nil {
		return nil, err
	}

	log := &entity.ConversationLog{
		PatientID:  caller.ID,
		Transcript: req.Transcript,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.conversationLogRepo.Create(ctx, tx, log); err != nil {
		u.log.Warnf("Failed to create conversation log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ConversationLogToResponse(log), nil
}

func (u *contentUsecase) ListConversationLogs(ctx context.Context, caller *entity.User, query dto.ListQuery) ([]dto.ConversationLogResponse, error) {
	if err := requirePatient(caller); err != nil {
		return nil, err
	}

	limit, offset := normalizePaging(query.Limit, query.Offset)
	logs, err := u.conversationLogRepo.FindByPatient(ctx, u.db, caller.ID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find conversation logs: %+v", err)
		return nil, err
	}

	return converter.ConversationLogsToResponses(logs), nil
}

func (u *contentUsecase) ListPatientDrawings(ctx context.Context, caller *entity.User, therapistID, patientID uint, query dto.ListQuery) ([]dto.DrawingResponse, error) {
	if err := u.authorizeTherapistRead(ctx, caller, therapistID, patientID); err != nil {
		return nil, err
	}

	limit, offset := normalizePaging(query.Limit, query.Offset)
	drawings, err := u.drawingRepo.FindByPatient(ctx, u.db, patientID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find drawings: %+v", err)
		return nil, err
	}

	return converter.DrawingsToResponses(drawings), nil
}

func (u *contentUsecase) ListPatientConversationLogs(ctx context.Context, caller *entity.User, therapistID, patientID uint, query dto.ListQuery) ([]dto.ConversationLogResponse, error) {
	if err := u.authorizeTherapistRead(ctx, caller, therapistID, patientID); err != nil {
		return nil, err
	}

	limit, offset := normalizePaging(query.Limit, query.Offset)
	logs, err := u.conversationLogRepo.FindByPatient(ctx, u.db, patientID, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to find conversation logs: %+v", err)
		return nil, err
	}

	return converter.ConversationLogsToResponses(logs), nil
}

// authorizeTherapistRead requires the caller to be therapistID and to be
// assigned to patientID.
func (u *contentUsecase) authorizeTherapistRead(ctx context.Context, caller *entity.User, therapistID, patientID uint) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if !caller.IsPsychologist() || caller.ID != therapistID {
		return ErrForbidden
	}

	patient, err := u.userRepo.FindByIDAndRole(ctx, u.db, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrNotFound
	}

	assigned, err := u.relationshipRepo.Exists(ctx, u.db, therapistID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return err
	}
	if !assigned {
		return ErrForbidden
	}

	return nil
}
