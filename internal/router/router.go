package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/havenmed/records-api/internal/middleware"
	"github.com/havenmed/records-api/pkg/metrics"
)

// Handler registers routes that need no per-route authorization.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// ProtectedHandler registers routes behind the auth middleware and
// wires its own per-route access checks.
type ProtectedHandler interface {
	RegisterRoutes(*gin.RouterGroup, *middleware.AuthMiddleware)
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORS           middleware.CORSConfig
	AdminKey       string
}

type Router struct {
	engine      *gin.Engine
	auth        *middleware.AuthMiddleware
	authH       Handler
	healthH     Handler
	adminH      Handler
	patientH    ProtectedHandler
	casefolderH ProtectedHandler
	clinicalH   ProtectedHandler
	metrics     *metrics.Metrics
	cfg         Config
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	healthH Handler,
	adminH Handler,
	patientH ProtectedHandler,
	casefolderH ProtectedHandler,
	clinicalH ProtectedHandler,
	m *metrics.Metrics,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:      gin.New(),
		auth:        auth,
		authH:       authH,
		healthH:     healthH,
		adminH:      adminH,
		patientH:    patientH,
		casefolderH: casefolderH,
		clinicalH:   clinicalH,
		metrics:     m,
		cfg:         cfg,
	}

	r.engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.RequestID(),
		r.metricsMiddleware(),
	)
	r.engine.Use(middleware.CORS(cfg.CORS))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})
	r.engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.healthH.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(r.cfg.AdminKey))
	r.adminH.RegisterRoutes(admin)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.patientH.RegisterRoutes(protected, r.auth)
	r.casefolderH.RegisterRoutes(protected, r.auth)
	r.clinicalH.RegisterRoutes(protected, r.auth)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}
