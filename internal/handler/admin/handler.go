package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/havenmed/records-api/internal/handler"
	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/service/user"
)

// AccountCache invalidates cached account lookups when authorization
// state changes, so the change applies on the next request.
type AccountCache interface {
	InvalidateUser(id uuid.UUID)
}

// Handler exposes the account administration surface. Routes are
// protected by the admin key middleware, not by bearer tokens, so a
// fresh deployment can authorize its first account.
type Handler struct {
	svc   *user.Service
	cache AccountCache
}

func NewHandler(svc *user.Service, cache AccountCache) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/:id", h.Get)
		users.POST("/:id/authorize", h.Authorize)
	}
}

func (h *Handler) List(c *gin.Context) {
	accounts, err := h.svc.List(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	profiles := make([]*model.UserProfile, 0, len(accounts))
	for _, a := range accounts {
		profiles = append(profiles, a.Profile())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(profiles))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	account, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(account.Profile()))
}

func (h *Handler) Authorize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	account, err := h.svc.Authorize(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	h.cache.InvalidateUser(account.ID)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(account.Profile()))
}
