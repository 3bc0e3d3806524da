package usecase

import (
	"context"
	"testing"
	"time"

	"holo-api/config"
	"holo-api/internal/delivery/dto"
	"holo-api/internal/domain/entity"
	"holo-api/internal/repository"
	"holo-api/internal/service"
	"holo-api/internal/testutil"
	"holo-api/pkg/jwt"
	"holo-api/pkg/password"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testTokenTTL = 30 * time.Minute

type testEnv struct {
	db           *gorm.DB
	auth         *authUsecase
	account      AccountUsecase
	relationship RelationshipUsecase
	profile      ProfileUsecase
	content      ContentUsecase
	phrase       PhraseUsecase
	auditLog     AuditLogUsecase
	jwtService   *jwt.JWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.NewLogger()

	jwtService, err := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: testTokenTTL})
	require.NoError(t, err)
	hasher := password.NewHasher(bcrypt.MinCost)

	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	psychologistProfileRepo := repository.NewPsychologistProfileRepository()
	relationshipRepo := repository.NewRelationshipRepository()
	avatarRepo := repository.NewAvatarRepository()
	drawingRepo := repository.NewDrawingRepository()
	conversationLogRepo := repository.NewConversationLogRepository()
	phraseRepo := repository.NewPhraseRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	// A nil client disables throttling.
	loginThrottle := service.NewLoginThrottleService(nil, log, service.LoginThrottleConfig{})

	auth := NewAuthUsecase(db, log, userRepo, patientProfileRepo, psychologistProfileRepo, auditService, loginThrottle, jwtService, hasher).(*authUsecase)

	return &testEnv{
		db:           db,
		auth:         auth,
		account:      NewAccountUsecase(db, log, userRepo, patientProfileRepo, psychologistProfileRepo, relationshipRepo, avatarRepo, drawingRepo, conversationLogRepo, auditService, hasher),
		relationship: NewRelationshipUsecase(db, log, userRepo, relationshipRepo, auditService),
		profile:      NewProfileUsecase(db, log, userRepo, patientProfileRepo, psychologistProfileRepo, relationshipRepo, auditService),
		content:      NewContentUsecase(db, log, userRepo, relationshipRepo, avatarRepo, drawingRepo, conversationLogRepo),
		phrase:       NewPhraseUsecase(db, log, phraseRepo),
		auditLog:     NewAuditLogUsecase(db, log, auditLogRepo),
		jwtService:   jwtService,
	}
}

// register creates an account and returns the identity as the access gate
// would resolve it.
func (e *testEnv) register(t *testing.T, email, pw string, role entity.Role) *entity.User {
	t.Helper()

	ctx := context.Background()
	_, err := e.auth.Register(ctx, &dto.RegisterRequest{
		Email:    email,
		Password: pw,
		Name:     "Name",
		Role:     role.String(),
	})
	require.NoError(t, err)

	return e.login(t, email, pw)
}

func (e *testEnv) login(t *testing.T, email, pw string) *entity.User {
	t.Helper()

	ctx := context.Background()
	token, err := e.auth.Login(ctx, &dto.LoginRequest{Email: email, Password: pw})
	require.NoError(t, err)

	user, err := e.auth.Authenticate(ctx, token.AccessToken)
	require.NoError(t, err)
	return user
}

func (e *testEnv) token(t *testing.T, email, pw string) string {
	t.Helper()

	resp, err := e.auth.Login(context.Background(), &dto.LoginRequest{Email: email, Password: pw})
	require.NoError(t, err)
	return resp.AccessToken
}

func patientIDs(resp *dto.TherapistWithPatientsResponse) []uint {
	ids := make([]uint, 0, len(resp.Patients))
	for _, p := range resp.Patients {
		ids = append(ids, p.ID)
	}
	return ids
}

func strPtr(s string) *string {
	return &s
}
