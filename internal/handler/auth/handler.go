package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/havenmed/records-api/internal/handler"
	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/service/auth"
	"github.com/havenmed/records-api/pkg/metrics"
)

const refreshCookieName = "refreshToken"

type Handler struct {
	svc     *auth.Service
	metrics *metrics.Metrics
}

func NewHandler(svc *auth.Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/login/code", h.LoginWithCode)
		auth.POST("/login/code/request", h.RequestLoginCode)
		auth.POST("/logout", h.Logout)
		auth.POST("/token/refresh", h.RefreshToken)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(user.Profile()))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		handler.RespondError(c, err)
		return
	}

	h.metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.setRefreshCookie(c, tokens.RefreshToken)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) LoginWithCode(c *gin.Context) {
	var req model.CodeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.LoginWithCode(c.Request.Context(), req.Username, req.Code)
	if err != nil {
		h.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		handler.RespondError(c, err)
		return
	}

	h.metrics.LoginAttempts.WithLabelValues("success").Inc()
	h.setRefreshCookie(c, tokens.RefreshToken)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) RequestLoginCode(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.RequestLoginCode(c.Request.Context(), req.Username); err != nil {
		handler.RespondError(c, err)
		return
	}

	// same response whether or not the account exists
	c.JSON(http.StatusOK, handler.NewSuccessResponse("if the account exists, a login code has been sent"))
}

func (h *Handler) Logout(c *gin.Context) {
	var req model.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.TokensRevoked.Inc()
	c.SetCookie(refreshCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse("logged out successfully"))
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.metrics.TokensRevoked.Inc()
	h.setRefreshCookie(c, tokens.RefreshToken)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, token, 0, "/", "", true, true)
}
