package handler

import (
	"errors"
	"net/http"
	"strconv"

	"holo-api/internal/domain/entity"
	"holo-api/internal/usecase"
	"holo-api/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// writeError maps usecase errors to the response envelope. Unknown errors
// become a 500 carrying fallback; their details are only logged.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid email or password")
	case errors.Is(err, usecase.ErrInvalidToken):
		response.Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, usecase.ErrUnknownSubject), errors.Is(err, usecase.ErrUnauthenticated):
		response.Unauthorized(w, "Could not validate credentials")
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		response.BadRequest(w, "Email already registered")
	case errors.Is(err, usecase.ErrInvalidOldPassword):
		response.BadRequest(w, "Invalid old password")
	case errors.Is(err, usecase.ErrInvalidDateFormat):
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	case errors.Is(err, entity.ErrInvalidRole):
		response.BadRequest(w, "Role must be patient or psychologist")
	case errors.Is(err, usecase.ErrNotFound):
		response.NotFound(w, "")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, "You don't have permission to access this resource")
	case errors.Is(err, usecase.ErrTooManyAttempts):
		response.TooManyRequests(w, "Too many failed login attempts, please try again later", 0)
	default:
		log.WithError(err).Error(fallback)
		response.InternalServerError(w, fallback)
	}
}

// pathID reads a positive numeric id from the route variables.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}
