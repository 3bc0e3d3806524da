package usecase

import (
	"context"

	"holo-api/internal/converter"
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
	"holo-api/internal/domain/repository"
	"holo-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RelationshipUsecase manages therapist to patient assignments. Every
// operation takes the authenticated caller and checks it against the ids
// it acts on.
type RelationshipUsecase interface {
	Assign(ctx context.Context, caller *entity.User, therapistID, patientID uint) (*dto.TherapistWithPatientsResponse, error)
	Remove(ctx context.Context, caller *entity.User, therapistID, patientID uint) (*dto.TherapistWithPatientsResponse, error)
	ListPatientsOf(ctx context.Context, caller *entity.User, therapistID uint) (*dto.TherapistWithPatientsResponse, error)
	ListTherapistsOf(ctx context.Context, caller *entity.User, patientID uint) (*dto.TherapistListResponse, error)
	IsAssigned(ctx context.Context, therapistID, patientID uint) (bool, error)
}

type relationshipUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	relationshipRepo repository.RelationshipRepository
	auditService     service.AuditService
}

func NewRelationshipUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	relationshipRepo repository.RelationshipRepository,
	auditService service.AuditService,
) RelationshipUsecase {
	return &relationshipUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		relationshipRepo: relationshipRepo,
		auditService:     auditService,
	}
}

// Assign is idempotent: assigning an existing pair leaves one edge.
func (u *relationshipUsecase) Assign(ctx context.Context, caller *entity.User, therapistID, patientID uint) (*dto.TherapistWithPatientsResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	therapist, _, err := u.findPair(ctx, tx, therapistID, patientID)
	if err != nil {
		return nil, err
	}
	if caller.ID != therapist.ID {
		return nil, ErrForbidden
	}

	edge := &entity.TherapistPatient{TherapistID: therapistID, PatientID: patientID}
	if err := u.relationshipRepo.Create(ctx, tx, edge); err != nil {
		u.log.Warnf("Failed to create relationship: %+v", err)
		return nil, err
	}

	// Audit log
	if err := u.auditService.LogCreate(ctx, tx, &caller.ID, entity.AuditActionRelationshipAssign, "therapist_patient", patientID, map[string]uint{
		"therapist_id": therapistID,
		"patient_id":   patientID,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	patients, err := u.relationshipRepo.FindPatientsByTherapist(ctx, tx, therapistID)
	if err != nil {
		u.log.Warnf("Failed to find patients of therapist: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TherapistWithPatientsToResponse(therapist, patients), nil
}

// Remove deletes the edge if present. Removing an absent edge is not an error.
func (u *relationshipUsecase) Remove(ctx context.Context, caller *entity.User, therapistID, patientID uint) (*dto.TherapistWithPatientsResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	therapist, _, err := u.findPair(ctx, tx, therapistID, patientID)
	if err != nil {
		return nil, err
	}
	if caller.ID != therapist.ID {
		return nil, ErrForbidden
	}

	removed, err := u.relationshipRepo.Delete(ctx, tx, therapistID, patientID)
	if err != nil {
		u.log.Warnf("Failed to delete relationship: %+v", err)
		return nil, err
	}

	if removed > 0 {
		if err := u.auditService.LogDelete(ctx, tx, &caller.ID, entity.AuditActionRelationshipRemove, "therapist_patient", patientID, map[string]uint{
			"therapist_id": therapistID,
			"patient_id":   patientID,
		}); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	patients, err := u.relationshipRepo.FindPatientsByTherapist(ctx, tx, therapistID)
	if err != nil {
		u.log.Warnf("Failed to find patients of therapist: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TherapistWithPatientsToResponse(therapist, patients), nil
}

func (u *relationshipUsecase) ListPatientsOf(ctx context.Context, caller *entity.User, therapistID uint) (*dto.TherapistWithPatientsResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	therapist, err := u.userRepo.FindByIDAndRole(ctx, u.db, therapistID, entity.RolePsychologist)
	if err != nil {
		u.log.Warnf("Failed to find therapist: %+v", err)
		return nil, err
	}
	if therapist == nil {
		return nil, ErrNotFound
	}
	if caller.ID != therapist.ID {
		return nil, ErrForbidden
	}

	patients, err := u.relationshipRepo.FindPatientsByTherapist(ctx, u.db, therapistID)
	if err != nil {
		u.log.Warnf("Failed to find patients of therapist: %+v", err)
		return nil, err
	}

	return converter.TherapistWithPatientsToResponse(therapist, patients), nil
}

// ListTherapistsOf is visible to the patient and to therapists assigned to them.
func (u *relationshipUsecase) ListTherapistsOf(ctx context.Context, caller *entity.User, patientID uint) (*dto.TherapistListResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	patient, err := u.userRepo.FindByIDAndRole(ctx, u.db, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}

	therapists, err := u.relationshipRepo.FindTherapistsByPatient(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find therapists of patient: %+v", err)
		return nil, err
	}

	if caller.ID != patient.ID && !containsUser(therapists, caller.ID) {
		return nil, ErrForbidden
	}

	return &dto.TherapistListResponse{
		Therapists: converter.UsersToResponses(therapists),
		Total:      len(therapists),
	}, nil
}

func (u *relationshipUsecase) IsAssigned(ctx context.Context, therapistID, patientID uint) (bool, error) {
	assigned, err := u.relationshipRepo.Exists(ctx, u.db, therapistID, patientID)
	if err != nil {
		u.log.Warnf("Failed to check relationship: %+v", err)
		return false, err
	}
	return assigned, nil
}

// findPair loads both ends of an edge. A missing id and an id with the
// wrong role are reported the same way.
func (u *relationshipUsecase) findPair(ctx context.Context, db *gorm.DB, therapistID, patientID uint) (*entity.User, *entity.User, error) {
	therapist, err := u.userRepo.FindByIDAndRole(ctx, db, therapistID, entity.RolePsychologist)
	if err != nil {
		u.log.Warnf("Failed to find therapist: %+v", err)
		return nil, nil, err
	}
	if therapist == nil {
		return nil, nil, ErrNotFound
	}

	patient, err := u.userRepo.FindByIDAndRole(ctx, db, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, nil, err
	}
	if patient == nil {
		return nil, nil, ErrNotFound
	}

	return therapist, patient, nil
}

func containsUser(users []entity.User, id uint) bool {
	for i := range users {
		if users[i].ID == id {
			return true
		}
	}
	return false
}
