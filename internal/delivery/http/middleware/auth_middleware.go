package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"holo-api/internal/domain/entity"
	"holo-api/internal/usecase"
	"holo-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// Authenticator resolves a bearer token to the account it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	log           *logrus.Logger
}

func NewAuthMiddleware(authenticator Authenticator, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		log:           log,
	}
}

// Authenticate rejects requests without a valid bearer token and stores
// the resolved account in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		user, err := m.authenticator.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidToken):
				response.Unauthorized(w, "Invalid or expired token")
			case errors.Is(err, usecase.ErrUnknownSubject):
				response.Unauthorized(w, "Could not validate credentials")
			default:
				m.log.WithError(err).Error("Failed to authenticate request")
				response.InternalServerError(w, "Failed to validate token")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCurrentUser(r.Context(), user)))
	})
}

func WithCurrentUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the account set by Authenticate, if any.
func CurrentUser(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*entity.User)
	return user, ok && user != nil
}
