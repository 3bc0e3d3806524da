package usecase

import (
	"context"
	"time"

	"holo-api/internal/converter"
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
	"holo-api/internal/domain/repository"
	"holo-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProfileUsecase interface {
	UpdatePatientProfile(ctx context.Context, caller *entity.User, patientID uint, req *dto.UpdatePatientProfileRequest) (*dto.UserResponse, error)
	UpdatePsychologistProfile(ctx context.Context, caller *entity.User, psychologistID uint, req *dto.UpdatePsychologistProfileRequest) (*dto.UserResponse, error)
}

type profileUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	userRepo                repository.UserRepository
	patientProfileRepo      repository.PatientProfileRepository
	psychologistProfileRepo repository.PsychologistProfileRepository
	relationshipRepo        repository.RelationshipRepository
	auditService            service.AuditService
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	psychologistProfileRepo repository.PsychologistProfileRepository,
	relationshipRepo repository.RelationshipRepository,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		db:                      db,
		log:                     log,
		userRepo:                userRepo,
		patientProfileRepo:      patientProfileRepo,
		psychologistProfileRepo: psychologistProfileRepo,
		relationshipRepo:        relationshipRepo,
		auditService:            auditService,
	}
}

// UpdatePatientProfile applies the non-nil fields of req. The patient and
// any psychologist assigned to them may edit the profile.
func (u *profileUsecase) UpdatePatientProfile(ctx context.Context, caller *entity.User, patientID uint, req *dto.UpdatePatientProfileRequest) (*dto.UserResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.userRepo.FindByIDAndRole(ctx, tx, patientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}

	if caller.ID != patient.ID {
		if !caller.IsPsychologist() {
			return nil, ErrForbidden
		}
		assigned, err := u.relationshipRepo.Exists(ctx, tx, caller.ID, patient.ID)
		if err != nil {
			u.log.Warnf("Failed to check relationship: %+v", err)
			return nil, err
		}
		if !assigned {
			return nil, ErrForbidden
		}
	}

	// Capture old value for audit
	oldValue := converter.UserToResponse(patient)

	profile := patient.PatientProfile
	if profile == nil {
		profile = &entity.PatientProfile{UserID: patient.ID}
	}

	applyIdentityFields(patient, req.Name, req.Surname, req.Center, req.Phone)

	if req.Birthdate != nil {
		if *req.Birthdate == "" {
			profile.Birthdate = nil
		} else {
			birthdate, err := time.Parse(dateLayout, *req.Birthdate)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			profile.Birthdate = &birthdate
		}
	}
	if req.Treatment != nil {
		profile.Treatment = *req.Treatment
	}

	if err := u.userRepo.UpdateIdentity(ctx, tx, patient); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.patientProfileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}
	patient.PatientProfile = profile

	// Audit log
	newValue := converter.UserToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionProfileUpdate, "patient_profile", patient.ID, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func (u *profileUsecase) UpdatePsychologistProfile(ctx context.Context, caller *entity.User, psychologistID uint, req *dto.UpdatePsychologistProfileRequest) (*dto.UserResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	psychologist, err := u.userRepo.FindByIDAndRole(ctx, tx, psychologistID, entity.RolePsychologist)
	if err != nil {
		u.log.Warnf("Failed to find psychologist: %+v", err)
		return nil, err
	}
	if psychologist == nil {
		return nil, ErrNotFound
	}
	if caller.ID != psychologist.ID {
		return nil, ErrForbidden
	}

	oldValue := converter.UserToResponse(psychologist)

	profile := psychologist.PsychologistProfile
	if profile == nil {
		profile = &entity.PsychologistProfile{UserID: psychologist.ID}
	}

	applyIdentityFields(psychologist, req.Name, req.Surname, req.Center, req.Phone)
	if req.Specialty != nil {
		profile.Specialty = *req.Specialty
	}

	if err := u.userRepo.UpdateIdentity(ctx, tx, psychologist); err != nil {
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if err := u.psychologistProfileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update psychologist profile: %+v", err)
		return nil, err
	}
	psychologist.PsychologistProfile = profile

	newValue := converter.UserToResponse(psychologist)
	if err := u.auditService.LogUpdate(ctx, tx, &caller.ID, entity.AuditActionProfileUpdate, "psychologist_profile", psychologist.ID, oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return newValue, nil
}

func applyIdentityFields(user *entity.User, name, surname, center, phone *string) {
	if name != nil {
		user.Name = *name
	}
	if surname != nil {
		user.Surname = *surname
	}
	if center != nil {
		user.Center = *center
	}
	if phone != nil {
		user.Phone = *phone
	}
}
