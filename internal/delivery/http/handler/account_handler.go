package handler

import (
	"encoding/json"
	"net/http"

	"holo-api/internal/delivery/dto"
	"holo-api/internal/delivery/http/middleware"
	"holo-api/internal/usecase"
	"holo-api/pkg/response"
	"holo-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	accountUsecase  usecase.AccountUsecase
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
	log             *logrus.Logger
}

func NewAccountHandler(
	accountUsecase usecase.AccountUsecase,
	auditLogUsecase usecase.AuditLogUsecase,
	validator *validator.CustomValidator,
	log *logrus.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUsecase:  accountUsecase,
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
		log:             log,
	}
}

// ChangePassword handles a password change for the caller
// @Summary Change password
// @Description Changing the password revokes all previously issued tokens
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me/password [put]
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.accountUsecase.ChangePassword(r.Context(), caller, req.OldPassword, req.NewPassword); err != nil {
		writeError(w, h.log, err, "Failed to change password")
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully", nil)
}

// DeleteAccount removes the caller's account
// @Summary Delete account
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me [delete]
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	if err := h.accountUsecase.DeleteAccount(r.Context(), caller); err != nil {
		writeError(w, h.log, err, "Failed to delete account")
		return
	}

	response.Success(w, http.StatusOK, "Account deleted successfully", nil)
}

// GetMyAuditLogs lists the caller's audit trail, newest first
// @Summary My audit trail
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/me/audit-logs [get]
func (h *AccountHandler) GetMyAuditLogs(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	logs, err := h.auditLogUsecase.GetMyAuditLogs(r.Context(), caller)
	if err != nil {
		writeError(w, h.log, err, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
