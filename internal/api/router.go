package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/edumarket/course-api/docs"
	"github.com/edumarket/course-api/internal/api/handler"
	"github.com/edumarket/course-api/internal/api/middleware"
	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

const defaultBodyLimit = "5M"

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth       ports.AuthService
	Courses    ports.CourseService
	Enrollment ports.EnrollmentService
	Tokens     ports.TokenService
	Log        zerolog.Logger

	// UploadDir is served read-only under UploadPath.
	UploadDir   string
	UploadPath  string
	CORSOrigins []string
	BodyLimit   string

	HealthChecks map[string]handler.HealthCheck
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// HTTP metrics live on a per-router registry; domain counters stay on the default one.
	httpMetrics := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "coursemarket",
		Registerer: httpMetrics,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	courseHandler := handler.NewCourseHandler(deps.Courses)
	enrollmentHandler := handler.NewEnrollmentHandler(deps.Enrollment)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	requireAuth := middleware.Auth(deps.Tokens, deps.Log)
	requireInstructor := middleware.RequireRole(domain.RoleInstructor, deps.Log)
	requireStudent := middleware.RequireRole(domain.RoleStudent, deps.Log)

	// --- Users ---
	users := e.Group("/api/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/myprofile", authHandler.Profile, requireAuth)
	users.GET("/mycourses", enrollmentHandler.MyCourses, requireAuth)

	// --- Courses ---
	courses := e.Group("/api/courses")
	courses.GET("", courseHandler.List)
	courses.GET("/:slug", courseHandler.Get)
	courses.POST("", courseHandler.Create, requireAuth, requireInstructor)
	courses.PUT("/:id", courseHandler.Update, requireAuth, requireInstructor)
	courses.DELETE("/:id", courseHandler.Delete, requireAuth, requireInstructor)
	courses.POST("/:id/enroll", enrollmentHandler.Enroll, requireAuth, requireStudent)

	// --- Uploaded images ---
	if deps.UploadDir != "" {
		path := deps.UploadPath
		if path == "" {
			path = "/uploads"
		}
		e.Static(path, deps.UploadDir)
	}

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger feeds Echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
