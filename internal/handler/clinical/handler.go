package clinical

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/handler"
	"github.com/havenmed/records-api/internal/middleware"
	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/service/clinical"
	"github.com/havenmed/records-api/pkg/metrics"
)

// Handler serves the clinical sub-resources nested under a case folder.
type Handler struct {
	svc     *clinical.Service
	metrics *metrics.Metrics
}

func NewHandler(svc *clinical.Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	folder := r.Group("/casefolders/:id")
	{
		folder.GET("/medical-history", auth.RequireAccess(model.ResourceMedicalHistory, model.OpRead), h.GetMedicalHistory)
		folder.POST("/medical-history", auth.RequireAccess(model.ResourceMedicalHistory, model.OpCreate), h.CreateMedicalHistory)
		folder.PUT("/medical-history", auth.RequireAccess(model.ResourceMedicalHistory, model.OpUpdate), h.UpdateMedicalHistory)

		folder.GET("/diagnoses", auth.RequireAccess(model.ResourceDiagnosisAdmission, model.OpList), h.ListDiagnoses)
		folder.POST("/diagnoses", auth.RequireAccess(model.ResourceDiagnosisAdmission, model.OpCreate), h.CreateDiagnosis)

		folder.GET("/vitals", auth.RequireAccess(model.ResourceVitalSigns, model.OpList), h.ListVitalSigns)
		folder.POST("/vitals", auth.RequireAccess(model.ResourceVitalSigns, model.OpCreate), h.CreateVitalSigns)

		folder.GET("/notes", auth.RequireAccess(model.ResourcePatientNote, model.OpList), h.ListNotes)
		folder.POST("/notes", auth.RequireAccess(model.ResourcePatientNote, model.OpCreate), h.CreateNote)
	}
}

func folderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case folder ID"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) CreateMedicalHistory(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	var req model.CreateMedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	history, err := h.svc.CreateMedicalHistory(c.Request.Context(), id, &req, caller.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.RecordsCreated.WithLabelValues(string(model.ResourceMedicalHistory)).Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(history))
}

func (h *Handler) UpdateMedicalHistory(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	var req model.CreateMedicalHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	history, err := h.svc.UpdateMedicalHistory(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}

func (h *Handler) GetMedicalHistory(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	history, err := h.svc.GetMedicalHistory(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(history))
}

func (h *Handler) CreateDiagnosis(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	var req model.CreateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	diagnosis, err := h.svc.CreateDiagnosis(c.Request.Context(), id, &req, caller.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.RecordsCreated.WithLabelValues(string(model.ResourceDiagnosisAdmission)).Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(diagnosis))
}

func (h *Handler) ListDiagnoses(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	diagnoses, err := h.svc.ListDiagnoses(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(diagnoses))
}

func (h *Handler) CreateVitalSigns(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	var req model.CreateVitalSignsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	vitals, err := h.svc.CreateVitalSigns(c.Request.Context(), id, &req, caller.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.RecordsCreated.WithLabelValues(string(model.ResourceVitalSigns)).Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(vitals))
}

func (h *Handler) ListVitalSigns(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	vitals, err := h.svc.ListVitalSigns(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(vitals))
}

func (h *Handler) CreateNote(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	var req model.CreatePatientNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	note, err := h.svc.CreateNote(c.Request.Context(), id, &req, caller)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.RecordsCreated.WithLabelValues(string(model.ResourcePatientNote)).Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(note))
}

func (h *Handler) ListNotes(c *gin.Context) {
	id, ok := folderID(c)
	if !ok {
		return
	}

	notes, err := h.svc.ListNotes(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(notes))
}
