package handler

import (
	"encoding/json"
	"net/http"

	"holo-api/internal/delivery/dto"
	"holo-api/internal/delivery/http/middleware"
	"holo-api/internal/infrastructure/metrics"
	"holo-api/internal/usecase"
	"holo-api/pkg/response"
	"holo-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type RelationshipHandler struct {
	relationshipUsecase usecase.RelationshipUsecase
	validator           *validator.CustomValidator
	metrics             *metrics.Collector
	log                 *logrus.Logger
}

func NewRelationshipHandler(
	relationshipUsecase usecase.RelationshipUsecase,
	validator *validator.CustomValidator,
	metrics *metrics.Collector,
	log *logrus.Logger,
) *RelationshipHandler {
	return &RelationshipHandler{
		relationshipUsecase: relationshipUsecase,
		validator:           validator,
		metrics:             metrics,
		log:                 log,
	}
}

// AssignPatient handles assigning a patient to a therapist
// @Summary Assign patient
// @Tags Relationships
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param therapistId path int true "Therapist ID"
// @Param request body dto.AssignPatientRequest true "Assign Patient Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapists/{therapistId}/patients [post]
func (h *RelationshipHandler) AssignPatient(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	therapistID, ok := pathID(r, "therapistId")
	if !ok {
		response.BadRequest(w, "Invalid therapist ID")
		return
	}

	var req dto.AssignPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.relationshipUsecase.Assign(r.Context(), caller, therapistID, req.PatientID)
	if err != nil {
		writeError(w, h.log, err, "Failed to assign patient")
		return
	}

	h.metrics.RecordRelationshipChange("assign")
	response.Success(w, http.StatusOK, "Patient assigned successfully", result)
}

// RemovePatient handles removing a patient from a therapist
// @Summary Remove patient
// @Tags Relationships
// @Security BearerAuth
// @Produce json
// @Param therapistId path int true "Therapist ID"
// @Param patientId path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapists/{therapistId}/patients/{patientId} [delete]
func (h *RelationshipHandler) RemovePatient(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	therapistID, ok := pathID(r, "therapistId")
	if !ok {
		response.BadRequest(w, "Invalid therapist ID")
		return
	}
	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	result, err := h.relationshipUsecase.Remove(r.Context(), caller, therapistID, patientID)
	if err != nil {
		writeError(w, h.log, err, "Failed to remove patient")
		return
	}

	h.metrics.RecordRelationshipChange("remove")
	response.Success(w, http.StatusOK, "Patient removed successfully", result)
}

// ListPatients handles listing a therapist's patients
// @Summary List patients of a therapist
// @Tags Relationships
// @Security BearerAuth
// @Produce json
// @Param therapistId path int true "Therapist ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapists/{therapistId}/patients [get]
func (h *RelationshipHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	therapistID, ok := pathID(r, "therapistId")
	if !ok {
		response.BadRequest(w, "Invalid therapist ID")
		return
	}

	result, err := h.relationshipUsecase.ListPatientsOf(r.Context(), caller, therapistID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", result)
}

// ListTherapists handles listing a patient's therapists
// @Summary List therapists of a patient
// @Tags Relationships
// @Security BearerAuth
// @Produce json
// @Param patientId path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{patientId}/therapists [get]
func (h *RelationshipHandler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	result, err := h.relationshipUsecase.ListTherapistsOf(r.Context(), caller, patientID)
	if err != nil {
		writeError(w, h.log, err, "Failed to get therapists")
		return
	}

	response.Success(w, http.StatusOK, "Therapists retrieved successfully", result)
}
