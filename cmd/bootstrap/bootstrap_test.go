package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"holo-api/config"
	"holo-api/internal/delivery/dto"
	"holo-api/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

type testServer struct {
	handler  http.Handler
	services *Services
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	cfg := &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "test-secret", Algorithm: "HS256", AccessExpiry: time.Minute},
		Security: config.SecurityConfig{
			BcryptCost:         bcrypt.MinCost,
			LoginMaxAttempts:   3,
			LoginLockoutWindow: time.Minute,
		},
	}

	services, err := NewServices(Dependencies{
		Config:      cfg,
		DB:          testutil.NewDB(t),
		RedisClient: redisClient,
		Log:         testutil.NewLogger(),
		Registry:    prometheus.NewRegistry(),
	})
	require.NoError(t, err)
	t.Cleanup(services.RateLimiter.Stop)

	return &testServer{handler: services.Handler, services: services}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *testServer) register(t *testing.T, email, pw, role string) dto.UserResponse {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email: email, Password: pw, Name: "Name", Role: role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &user))
	return user
}

func (s *testServer) login(t *testing.T, email, pw string) string {
	t.Helper()

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: pw})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var token dto.TokenResponse
	require.NoError(t, json.Unmarshal(env.Data, &token))
	return token.AccessToken
}

func patientIDsOf(t *testing.T, env envelope) []uint {
	t.Helper()

	var resp dto.TherapistWithPatientsResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	ids := []uint{}
	for _, p := range resp.Patients {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestAPI_AssignListRemoveScenario(t *testing.T) {
	s := newTestServer(t)

	a := s.register(t, "a@x.com", "pw1pw1", "patient")
	b := s.register(t, "b@x.com", "pw2pw2", "psychologist")
	aToken := s.login(t, "a@x.com", "pw1pw1")
	bToken := s.login(t, "b@x.com", "pw2pw2")

	patientsPath := fmt.Sprintf("/api/v1/therapists/%d/patients", b.ID)

	rec, env := s.do(t, http.MethodPost, patientsPath, bToken, dto.AssignPatientRequest{PatientID: a.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []uint{a.ID}, patientIDsOf(t, env))

	rec, _ = s.do(t, http.MethodPost, patientsPath, bToken, dto.AssignPatientRequest{PatientID: a.ID})
	require.Equal(t, http.StatusOK, rec.Code, "assign is idempotent")

	rec, env = s.do(t, http.MethodGet, patientsPath, bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{a.ID}, patientIDsOf(t, env))

	rec, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/patients/%d/therapists", a.ID), aToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var therapists dto.TherapistListResponse
	require.NoError(t, json.Unmarshal(env.Data, &therapists))
	assert.Equal(t, 1, therapists.Total)

	removePath := fmt.Sprintf("%s/%d", patientsPath, a.ID)
	for i := 0; i < 2; i++ {
		rec, env = s.do(t, http.MethodDelete, removePath, bToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, patientIDsOf(t, env))
	}

	rec, env = s.do(t, http.MethodGet, patientsPath, bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, patientIDsOf(t, env))
}

func TestAPI_RelationshipErrors(t *testing.T) {
	s := newTestServer(t)

	a := s.register(t, "a@x.com", "pw1pw1", "patient")
	b := s.register(t, "b@x.com", "pw2pw2", "psychologist")
	c := s.register(t, "c@x.com", "pw3pw3", "psychologist")
	aToken := s.login(t, "a@x.com", "pw1pw1")
	bToken := s.login(t, "b@x.com", "pw2pw2")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/therapists/9999/patients", bToken, dto.AssignPatientRequest{PatientID: a.ID})
	assert.Equal(t, http.StatusNotFound, rec.Code, "nonexistent therapist")

	rec, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/therapists/%d/patients", c.ID), bToken, dto.AssignPatientRequest{PatientID: a.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code, "caller is not the therapist in the path")

	rec, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/therapists/%d/patients", b.ID), aToken, dto.AssignPatientRequest{PatientID: a.ID})
	assert.Equal(t, http.StatusForbidden, rec.Code, "patients cannot assign")

	rec, env := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/therapists/%d/patients", b.ID), bToken, map[string]int{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "patient_id")
}

func TestAPI_AuthFlow(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "a@x.com", "pw1pw1", "patient")

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterRequest{
		Email: "A@x.com", Password: "another", Name: "Other", Role: "psychologist",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", env.Message)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "nobody@x.com", Password: "pw1pw1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	token := s.login(t, "a@x.com", "pw1pw1")
	rec, env = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "a@x.com", me.Email)
	assert.NotContains(t, rec.Body.String(), "password")

	rec, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout-all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "logout-all revokes the token")
}

func TestAPI_LoginWithForm(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "a@x.com", "pw1pw1", "patient")

	form := url.Values{"username": {"a@x.com"}, "password": {"pw1pw1"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestAPI_LoginThrottle(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "a@x.com", "pw1pw1", "patient")

	for i := 0; i < 3; i++ {
		rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "a@x.com", Password: "wrong"})
		require.Equal(t, http.StatusUnauthorized, rec.Code, "attempt %d", i)
	}

	rec, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Email: "a@x.com", Password: "pw1pw1"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAPI_AccountLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "a@x.com", "pw1pw1", "patient")
	token := s.login(t, "a@x.com", "pw1pw1")

	rec, _ := s.do(t, http.MethodPut, "/api/v1/users/me/password", token, dto.ChangePasswordRequest{OldPassword: "bad", NewPassword: "newpw1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/api/v1/users/me/password", token, dto.ChangePasswordRequest{OldPassword: "pw1pw1", NewPassword: "newpw1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token = s.login(t, "a@x.com", "newpw1")

	rec, env := s.do(t, http.MethodGet, "/api/v1/users/me/audit-logs", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "user.password_change")

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_ContentAndProfile(t *testing.T) {
	s := newTestServer(t)
	a := s.register(t, "a@x.com", "pw1pw1", "patient")
	b := s.register(t, "b@x.com", "pw2pw2", "psychologist")
	aToken := s.login(t, "a@x.com", "pw1pw1")
	bToken := s.login(t, "b@x.com", "pw2pw2")

	rec, _ := s.do(t, http.MethodPost, "/api/v1/users/me/drawings", aToken, dto.CreateDrawingRequest{Title: "sun", ImageData: "<svg/>"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = s.do(t, http.MethodPost, "/api/v1/users/me/drawings", bToken, dto.CreateDrawingRequest{ImageData: "<svg/>"})
	assert.Equal(t, http.StatusForbidden, rec.Code, "psychologists have no own content")

	drawingsPath := fmt.Sprintf("/api/v1/therapists/%d/patients/%d/drawings", b.ID, a.ID)
	rec, _ = s.do(t, http.MethodGet, drawingsPath, bToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "not assigned yet")

	rec, _ = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/therapists/%d/patients", b.ID), bToken, dto.AssignPatientRequest{PatientID: a.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodGet, drawingsPath+"?limit=10", bToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var drawings []dto.DrawingResponse
	require.NoError(t, json.Unmarshal(env.Data, &drawings))
	require.Len(t, drawings, 1)
	assert.Equal(t, "sun", drawings[0].Title)

	treatment := "anorexia"
	rec, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/patients/%d/profile", a.ID), bToken, dto.UpdatePatientProfileRequest{Treatment: &treatment})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated dto.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.NotNil(t, updated.PatientProfile)
	assert.Equal(t, "anorexia", updated.PatientProfile.Treatment)

	badDate := "31-12-2000"
	rec, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/patients/%d/profile", a.ID), aToken, dto.UpdatePatientProfileRequest{Birthdate: &badDate})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "birthdate")

	blank := ""
	rec, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/patients/%d/profile", a.ID), aToken, dto.UpdatePatientProfileRequest{Name: &blank})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "a blank name would clear a required field")
	assert.Contains(t, env.Error, "name")

	rec, env = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/psychologists/%d/profile", b.ID), bToken, dto.UpdatePsychologistProfileRequest{Name: &blank})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "name")

	specialty := "eating disorders"
	rec, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/v1/psychologists/%d/profile", b.ID), aToken, dto.UpdatePsychologistProfileRequest{Specialty: &specialty})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAPI_PhrasesHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/phrases/anorexia", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, Seed(context.Background(), s.services, testutil.NewLogger()))
	require.NoError(t, Seed(context.Background(), s.services, testutil.NewLogger()), "seeding twice is harmless")

	rec, env := s.do(t, http.MethodGet, "/api/v1/phrases/anorexia", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var phrase dto.PhraseResponse
	require.NoError(t, json.Unmarshal(env.Data, &phrase))
	assert.Equal(t, "anorexia", phrase.TcaType)

	s.login(t, "patient@test.com", "123456")

	rec, _ = s.do(t, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `holo_login_attempts_total{result="success"} 1`)
	assert.Contains(t, body, `route="/api/v1/phrases/{tcaType}"`)
}

func TestAPI_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
