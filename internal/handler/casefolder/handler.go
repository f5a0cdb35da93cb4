package casefolder

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/handler"
	"github.com/havenmed/records-api/internal/middleware"
	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/service/casefolder"
	"github.com/havenmed/records-api/pkg/metrics"
)

type Handler struct {
	svc     *casefolder.Service
	metrics *metrics.Metrics
}

func NewHandler(svc *casefolder.Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	folders := r.Group("/casefolders")
	{
		folders.GET("", auth.RequireAccess(model.ResourceCaseFolder, model.OpList), h.List)
		folders.POST("", auth.RequireAccess(model.ResourceCaseFolder, model.OpCreate), h.Create)
		folders.GET("/:id", auth.RequireAccess(model.ResourceCaseFolder, model.OpRead), h.Get)
		folders.PUT("/:id", auth.RequireAccess(model.ResourceCaseFolder, model.OpUpdate), h.Update)
		folders.DELETE("/:id", auth.RequireAccess(model.ResourceCaseFolder, model.OpDelete), h.Delete)
	}
	r.GET("/patients/:id/casefolders", auth.RequireAccess(model.ResourceCaseFolder, model.OpList), h.ListByPatient)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateCaseFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req, caller.ID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.RecordsCreated.WithLabelValues(string(model.ResourceCaseFolder)).Inc()
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case folder ID"))
		return
	}

	folder, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(folder))
}

func (h *Handler) List(c *gin.Context) {
	folders, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(folders))
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	folders, err := h.svc.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(folders))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case folder ID"))
		return
	}

	var req model.UpdateCaseFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case folder ID"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("case folder deleted successfully"))
}
