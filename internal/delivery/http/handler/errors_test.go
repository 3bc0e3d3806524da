package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"holo-api/internal/domain/entity"
	"holo-api/internal/testutil"
	"holo-api/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{usecase.ErrInvalidToken, http.StatusUnauthorized},
		{usecase.ErrUnknownSubject, http.StatusUnauthorized},
		{usecase.ErrEmailAlreadyRegistered, http.StatusBadRequest},
		{usecase.ErrInvalidOldPassword, http.StatusBadRequest},
		{usecase.ErrInvalidDateFormat, http.StatusBadRequest},
		{entity.ErrInvalidRole, http.StatusBadRequest},
		{usecase.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", usecase.ErrForbidden), http.StatusForbidden},
		{usecase.ErrTooManyAttempts, http.StatusTooManyRequests},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, testutil.NewLogger(), tt.err, "Failed")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection reset")
			}
		})
	}
}
