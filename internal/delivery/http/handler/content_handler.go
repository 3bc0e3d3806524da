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

type ContentHandler struct {
	contentUsecase usecase.ContentUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewContentHandler(contentUsecase usecase.ContentUsecase, validator *validator.CustomValidator, log *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		contentUsecase: contentUsecase,
		validator:      validator,
		log:            log,
	}
}

func listQuery(r *http.Request) dto.ListQuery {
	return dto.ListQuery{
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
}

func listMeta(query dto.ListQuery, count int) *response.Meta {
	return &response.Meta{Limit: query.Limit, Offset: query.Offset, Count: count}
}

// decodeAndValidate writes the error response itself and reports whether
// the handler may continue.
func (h *ContentHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

// CreateAvatar stores an avatar configuration for the calling patient
// @Summary Create avatar
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAvatarRequest true "Create Avatar Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users/me/avatars [post]
func (h *ContentHandler) CreateAvatar(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	var req dto.CreateAvatarRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	avatar, err := h.contentUsecase.CreateAvatar(r.Context(), caller, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create avatar")
		return
	}

	response.Success(w, http.StatusCreated, "Avatar created successfully", avatar)
}

// ListAvatars
// @Summary List my avatars
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Response
// @Router /users/me/avatars [get]
func (h *ContentHandler) ListAvatars(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())
	query := listQuery(r)

	avatars, err := h.contentUsecase.ListAvatars(r.Context(), caller, query)
	if err != nil {
		writeError(w, h.log, err, "Failed to get avatars")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Avatars retrieved successfully", avatars, listMeta(query, len(avatars)))
}

// CreateDrawing
// @Summary Create drawing
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDrawingRequest true "Create Drawing Request"
// @Success 201 {object} response.Response
// @Router /users/me/drawings [post]
func (h *ContentHandler) CreateDrawing(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	var req dto.CreateDrawingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	drawing, err := h.contentUsecase.CreateDrawing(r.Context(), caller, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create drawing")
		return
	}

	response.Success(w, http.StatusCreated, "Drawing created successfully", drawing)
}

// ListDrawings
// @Summary List my drawings
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/me/drawings [get]
func (h *ContentHandler) ListDrawings(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())
	query := listQuery(r)

	drawings, err := h.contentUsecase.ListDrawings(r.Context(), caller, query)
	if err != nil {
		writeError(w, h.log, err, "Failed to get drawings")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Drawings retrieved successfully", drawings, listMeta(query, len(drawings)))
}

// CreateConversationLog
// @Summary Store a conversation transcript
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateConversationLogRequest true "Create Conversation Log Request"
// @Success 201 {object} response.Response
// @Router /users/me/conversations [post]
func (h *ContentHandler) CreateConversationLog(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	var req dto.CreateConversationLogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	log, err := h.contentUsecase.CreateConversationLog(r.Context(), caller, &req)
	if err != nil {
		writeError(w, h.log, err, "Failed to create conversation log")
		return
	}

	response.Success(w, http.StatusCreated, "Conversation log created successfully", log)
}

// ListConversationLogs
// @Summary List my conversation transcripts
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /users/me/conversations [get]
func (h *ContentHandler) ListConversationLogs(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())
	query := listQuery(r)

	logs, err := h.contentUsecase.ListConversationLogs(r.Context(), caller, query)
	if err != nil {
		writeError(w, h.log, err, "Failed to get conversation logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Conversation logs retrieved successfully", logs, listMeta(query, len(logs)))
}

// ListPatientDrawings lets a therapist read an assigned patient's drawings
// @Summary List drawings of an assigned patient
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param therapistId path int true "Therapist ID"
// @Param patientId path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapists/{therapistId}/patients/{patientId}/drawings [get]
func (h *ContentHandler) ListPatientDrawings(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	therapistID, patientID, ok := therapistPatientIDs(w, r)
	if !ok {
		return
	}
	query := listQuery(r)

	drawings, err := h.contentUsecase.ListPatientDrawings(r.Context(), caller, therapistID, patientID, query)
	if err != nil {
		writeError(w, h.log, err, "Failed to get drawings")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Drawings retrieved successfully", drawings, listMeta(query, len(drawings)))
}

// ListPatientConversationLogs lets a therapist read an assigned patient's transcripts
// @Summary List conversation logs of an assigned patient
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param therapistId path int true "Therapist ID"
// @Param patientId path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /therapists/{therapistId}/patients/{patientId}/conversations [get]
func (h *ContentHandler) ListPatientConversationLogs(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.CurrentUser(r.Context())

	therapistID, patientID, ok := therapistPatientIDs(w, r)
	if !ok {
		return
	}
	query := listQuery(r)

	logs, err := h.contentUsecase.ListPatientConversationLogs(r.Context(), caller, therapistID, patientID, query)
	if err != nil {
		writeError(w, h.log, err, "Failed to get conversation logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Conversation logs retrieved successfully", logs, listMeta(query, len(logs)))
}

func therapistPatientIDs(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	therapistID, ok := pathID(r, "therapistId")
	if !ok {
		response.BadRequest(w, "Invalid therapist ID")
		return 0, 0, false
	}
	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.BadRequest(w, "Invalid patient ID")
		return 0, 0, false
	}
	return therapistID, patientID, true
}
