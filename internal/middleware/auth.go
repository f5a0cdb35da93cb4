package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/havenmed/records-api/internal/handler"
	"github.com/havenmed/records-api/internal/model"
	"github.com/havenmed/records-api/internal/repository"
	"github.com/havenmed/records-api/internal/service/rbac"
	"github.com/havenmed/records-api/pkg/auth"
	"github.com/havenmed/records-api/pkg/metrics"
)

// ContextUserKey is where the authenticated account lives in the gin context
const ContextUserKey = "auth_user"

type AuthMiddleware struct {
	jwtSvc    auth.JWTService
	userRepo  repository.UserRepository
	userCache *cache.Cache
	metrics   *metrics.Metrics
}

func NewAuthMiddleware(jwtSvc auth.JWTService, userRepo repository.UserRepository, m *metrics.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSvc:    jwtSvc,
		userRepo:  userRepo,
		// account changes propagate within the TTL unless InvalidateUser
		// is called for the affected account
		userCache: cache.New(30*time.Second, 5*time.Minute),
		metrics:   m,
	}
}

// Authenticate verifies the bearer access token and resolves it to
// exactly one active, authorized account before any handler runs.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			return
		}

		claims, err := m.jwtSvc.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid or expired token"))
			return
		}

		user, err := m.resolveUser(c, claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			return
		}
		if !user.Active || !user.Authorized {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("account is not active"))
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAccess consults the access control matrix before the handler
// touches storage. Denials return 403 with no side effects.
func (m *AuthMiddleware) RequireAccess(resource model.Resource, op model.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
			return
		}

		if !rbac.Allowed(user.Role, resource, op) {
			if m.metrics != nil {
				m.metrics.AccessDenied.WithLabelValues(string(resource), string(op)).Inc()
			}
			c.AbortWithStatusJSON(http.StatusForbidden, handler.NewErrorResponse("permission denied"))
			return
		}

		c.Next()
	}
}

// resolveUser loads the account, consulting a short-lived cache so hot
// tokens do not hit the database on every request.
func (m *AuthMiddleware) resolveUser(c *gin.Context, userID string) (*model.User, error) {
	if cached, found := m.userCache.Get(userID); found {
		return cached.(*model.User), nil
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	user, err := m.userRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	m.userCache.Set(userID, user, cache.DefaultExpiration)
	return user, nil
}

// InvalidateUser drops the cached account so the next request sees the
// stored state. Called when an account's authorization changes.
func (m *AuthMiddleware) InvalidateUser(id uuid.UUID) {
	m.userCache.Delete(id.String())
}

// CurrentUser returns the authenticated account set by Authenticate
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
