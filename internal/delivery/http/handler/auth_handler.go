package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"holo-api/internal/delivery/dto"
	"holo-api/internal/delivery/http/middleware"
	"holo-api/internal/infrastructure/metrics"
	"holo-api/internal/usecase"
	"holo-api/pkg/response"
	"holo-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
	metrics        *metrics.Collector
	log            *logrus.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	accountUsecase usecase.AccountUsecase,
	validator *validator.CustomValidator,
	metrics *metrics.Collector,
	log *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		accountUsecase: accountUsecase,
		validator:      validator,
		metrics:        metrics,
		log:            log,
	}
}

// Register handles account registration
// @Summary Register a new account
// @Description Register a patient or psychologist with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to register user")
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", user)
}

// Login handles user login
// @Summary Login
// @Description Login with a JSON body or an OAuth2 password form (username, password)
// @Tags Auth
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLoginRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			h.metrics.RecordLogin(metrics.LoginFailed)
		case errors.Is(err, usecase.ErrTooManyAttempts):
			h.metrics.RecordLogin(metrics.LoginThrottled)
		default:
			h.metrics.RecordLogin(metrics.LoginServerError)
		}
		writeError(w, h.log, err, "Failed to login")
		return
	}

	h.metrics.RecordLogin(metrics.LoginSuccess)
	response.Success(w, http.StatusOK, "Login successful", token)
}

// decodeLoginRequest accepts JSON or a urlencoded/multipart form where the
// email travels as "username".
func decodeLoginRequest(r *http.Request) (*dto.LoginRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		email := r.PostFormValue("username")
		if email == "" {
			email = r.PostFormValue("email")
		}
		return &dto.LoginRequest{Email: email, Password: r.PostFormValue("password")}, nil
	default:
		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}
}

// GetCurrentUser handles getting current user info
// @Summary Get current user
// @Description Get the authenticated account with its profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	user, err := h.authUsecase.GetCurrentUser(r.Context(), caller)
	if err != nil {
		writeError(w, h.log, err, "Failed to get user info")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

// LogoutAll revokes every token issued to the caller
// @Summary Logout everywhere
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	if err := h.accountUsecase.LogoutAll(r.Context(), caller); err != nil {
		writeError(w, h.log, err, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logged out from all sessions", nil)
}
