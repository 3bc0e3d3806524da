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

type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
		validator:      validator,
		log:            log,
	}
}

// UpdatePatientProfile handles a partial patient profile update
// @Summary Update patient profile
// @Description Allowed for the patient and for psychologists assigned to them
// @Tags Profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param patientId path int true "Patient ID"
// @Param request body dto.UpdatePatientProfileRequest true "Update Patient Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{patientId}/profile [put]
func (h *ProfileHandler) UpdatePatientProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	var req dto.UpdatePatientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.UpdatePatientProfile(r.Context(), caller, patientID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

// UpdatePsychologistProfile handles a partial psychologist profile update
// @Summary Update psychologist profile
// @Tags Profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param psychologistId path int true "Psychologist ID"
// @Param request body dto.UpdatePsychologistProfileRequest true "Update Psychologist Profile Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /psychologists/{psychologistId}/profile [put]
func (h *ProfileHandler) UpdatePsychologistProfile(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	psychologistID, ok := pathID(r, "psychologistId")
	if !ok {
		response.BadRequest(w, "Invalid psychologist ID")
		return
	}

	var req dto.UpdatePsychologistProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.UpdatePsychologistProfile(r.Context(), caller, psychologistID, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}
