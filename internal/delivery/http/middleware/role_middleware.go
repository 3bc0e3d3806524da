package middleware

import (
	"net/http"

	"holo-api/internal/domain/entity"
	"holo-api/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles.
// It must run after AuthMiddleware.Authenticate.
func RequireRole(allowedRoles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			allowed := false
			for _, role := range allowedRoles {
				if user.Role == role {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}

// RequirePsychologist is a convenience middleware for psychologist-only endpoints
func RequirePsychologist(next http.Handler) http.Handler {
	return RequireRole(entity.RolePsychologist)(next)
}
