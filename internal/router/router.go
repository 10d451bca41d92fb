package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/the247care/clinic-api/internal/config"
	authhandler "github.com/the247care/clinic-api/internal/handler/auth"
	contenthandler "github.com/the247care/clinic-api/internal/handler/content"
	dashboardhandler "github.com/the247care/clinic-api/internal/handler/dashboard"
	doctorhandler "github.com/the247care/clinic-api/internal/handler/doctor"
	enquiryhandler "github.com/the247care/clinic-api/internal/handler/enquiry"
	healthhandler "github.com/the247care/clinic-api/internal/handler/health"
	patienthandler "github.com/the247care/clinic-api/internal/handler/patient"
	"github.com/the247care/clinic-api/internal/middleware"
	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/pkg/auth"
	"github.com/the247care/clinic-api/pkg/logger"
)

type Handlers struct {
	Health    *healthhandler.Handler
	Auth      *authhandler.Handler
	Enquiry   *enquiryhandler.Handler
	Doctor    *doctorhandler.Handler
	Patient   *patienthandler.Handler
	Content   *contenthandler.Handler
	Dashboard *dashboardhandler.Handler
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
	tokens   auth.JWTService
	cfg      config.ServerConfig
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(handlers Handlers, tokens auth.JWTService, cfg config.ServerConfig, log *logger.Logger) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		handlers: handlers,
		tokens:   tokens,
		cfg:      cfg,
		metrics:  initRouterMetrics("clinic_api"),
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(),
		r.metricsMiddleware(),
	)

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.handlers.Health.RegisterRoutes(api)

	// Public routes; intake is rate limited per client IP.
	public := api.Group("")
	r.handlers.Auth.RegisterPublicRoutes(public)
	r.handlers.Content.RegisterPublicRoutes(public)

	intake := api.Group("")
	intake.Use(middleware.RateLimit(r.cfg.RateLimitRPS, r.cfg.RateLimitBurst))
	r.handlers.Enquiry.RegisterPublicRoutes(intake)

	// Protected routes.
	protected := api.Group("")
	protected.Use(middleware.Authenticate(r.tokens))
	r.handlers.Enquiry.RegisterRoutes(protected)
	r.handlers.Doctor.RegisterRoutes(protected)
	r.handlers.Patient.RegisterRoutes(protected)

	admin := protected.Group("")
	admin.Use(middleware.RequireRoles(model.UserRoleAdmin))
	r.handlers.Auth.RegisterRoutes(admin)
	r.handlers.Content.RegisterRoutes(admin)
	r.handlers.Dashboard.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
