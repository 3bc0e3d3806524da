package usecase

import (
	"errors"

	"holo-api/internal/service"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrUnknownSubject         = errors.New("could not validate credentials")
	ErrNotFound               = errors.New("resource not found")
	ErrForbidden              = errors.New("operation not allowed for this account")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrInvalidOldPassword     = errors.New("invalid old password")
	ErrInvalidDateFormat      = errors.New("invalid date format, use YYYY-MM-DD")
	ErrTooManyAttempts        = service.ErrTooManyLoginAttempts
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
	dateLayout       = "2006-01-02"
)

func normalizePaging(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
