package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"holo-api/internal/converter"
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
	"holo-api/internal/domain/repository"
	"holo-api/internal/service"
	"holo-api/pkg/jwt"
	"holo-api/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const tokenTypeBearer = "bearer"

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	GetCurrentUser(ctx context.Context, caller *entity.User) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                      *gorm.DB
	log                     *logrus.Logger
	userRepo                repository.UserRepository
	patientProfileRepo      repository.PatientProfileRepository
	psychologistProfileRepo repository.PsychologistProfileRepository
	auditService            service.AuditService
	loginThrottle           service.LoginThrottleService
	jwtService              *jwt.JWTService
	hasher                  *password.Hasher
	now                     func() time.Time

	// decoyHash is compared against when the email is unknown so that both
	// failure paths cost one bcrypt comparison.
	decoyOnce sync.Once
	decoyHash string
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	psychologistProfileRepo repository.PsychologistProfileRepository,
	auditService service.AuditService,
	loginThrottle service.LoginThrottleService,
	jwtService *jwt.JWTService,
	hasher *password.Hasher,
) AuthUsecase {
	return &authUsecase{
		db:                      db,
		log:                     log,
		userRepo:                userRepo,
		patientProfileRepo:      patientProfileRepo,
		psychologistProfileRepo: psychologistProfileRepo,
		auditService:            auditService,
		loginThrottle:           loginThrottle,
		jwtService:              jwtService,
		hasher:                  hasher,
		now:                     time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role, err := entity.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(req.Email)

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByEmail(ctx, tx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	user := &entity.User{
		Email:    email,
		Password: hashedPassword,
		Name:     req.Name,
		Surname:  req.Surname,
		Center:   req.Center,
		Phone:    req.Phone,
		Role:     role,
	}

	if err := u.userRepo.Create(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	switch role {
	case entity.RolePatient:
		profile := &entity.PatientProfile{UserID: user.ID}
		if err := u.patientProfileRepo.Create(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return nil, err
		}
		user.PatientProfile = profile
	case entity.RolePsychologist:
		profile := &entity.PsychologistProfile{UserID: user.ID}
		if err := u.psychologistProfileRepo.Create(ctx, tx, profile); err != nil {
			u.log.Warnf("Failed to create psychologist profile: %+v", err)
			return nil, err
		}
		user.PsychologistProfile = profile
	}

	// Audit log
	newValue := map[string]string{"email": user.Email, "role": user.Role.String()}
	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := entity.NormalizeEmail(req.Email)

	if err := u.loginThrottle.Check(ctx, email); err != nil {
		return nil, err
	}

	// Read-only, no transaction needed
	user, err := u.userRepo.FindByEmailWithProfile(ctx, u.db, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if user == nil {
		u.hasher.Verify(req.Password, u.fallbackHash())
		u.loginThrottle.RecordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if !u.hasher.Verify(req.Password, user.Password) {
		u.loginThrottle.RecordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	u.loginThrottle.Reset(ctx, email)

	accessToken, expiresAt, err := u.jwtService.Issue(user.Email, user.Role.String(), user.TokenVersion, u.now())
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogEvent(ctx, u.db.WithContext(ctx), &user.ID, entity.AuditActionUserLogin, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(u.jwtService.GetAccessExpiry().Seconds()),
		ExpiresAt:   expiresAt,
		Role:        user.Role.String(),
		User:        converter.UserToResponse(user),
	}, nil
}

// Authenticate resolves a bearer token to the current state of its account.
// The account is re-read on every call; a token outlives neither the
// account nor a bump of its token version.
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := u.jwtService.Verify(token, u.now())
	if err != nil {
		return nil, ErrInvalidToken
	}

	role, err := entity.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := u.userRepo.FindByEmailWithProfile(ctx, u.db, claims.Subject)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownSubject
	}

	if user.TokenVersion != claims.Generation || user.Role != role {
		return nil, ErrInvalidToken
	}

	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, caller *entity.User) (*dto.UserResponse, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	return converter.UserToResponse(caller), nil
}

func (u *authUsecase) fallbackHash() string {
	u.decoyOnce.Do(func() {
		hash, err := u.hasher.Hash("holo-decoy-password")
		if err != nil {
			u.log.Warnf("Failed to hash decoy password: %+v", err)
			return
		}
		u.decoyHash = hash
	})
	return u.decoyHash
}

func isDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
