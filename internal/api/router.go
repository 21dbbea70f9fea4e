package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/campuslink/student-portal/docs"
	"github.com/campuslink/student-portal/internal/api/handler"
	"github.com/campuslink/student-portal/internal/api/middleware"
	"github.com/campuslink/student-portal/internal/core/domain"
	"github.com/campuslink/student-portal/internal/core/ports"
	"github.com/campuslink/student-portal/internal/core/service"
	portalmongo "github.com/campuslink/student-portal/internal/infrastructure/db/mongo"
	portalredis "github.com/campuslink/student-portal/internal/infrastructure/db/redis"
)

// Deps carries everything the router needs beyond its storage handles.
type Deps struct {
	JWTSecret     string
	TokenTTL      time.Duration
	OperatorEmail string
	Notifier      ports.Notifier
	Logger        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Repositories ---
	identityRepo := portalmongo.NewIdentityRepository(db)
	directoryRepo := portalmongo.NewDirectoryRepository(db)
	contentRepo := portalmongo.NewContentRepository(db)
	historyRepo := portalmongo.NewLoginHistoryRepository(db)
	otpStore := portalredis.NewOTPStore(rdb)

	// --- Services ---
	loginService := service.NewLoginService(identityRepo, otpStore, historyRepo, deps.Notifier, deps.JWTSecret, deps.TokenTTL, deps.Logger)
	signupService := service.NewSignupService(identityRepo, directoryRepo, deps.Notifier, deps.OperatorEmail, deps.Logger)
	reportingService := service.NewReportingService(identityRepo, directoryRepo, historyRepo, deps.Logger)
	streamService := service.NewStreamService(identityRepo, directoryRepo, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(loginService)
	signupHandler := handler.NewSignupHandler(signupService, streamService)
	studentHandler := handler.NewStudentHandler(reportingService)
	dashboardHandler := handler.NewDashboardHandler(reportingService)
	streamHandler := handler.NewStreamHandler(streamService, directoryRepo, contentRepo)

	// --- Global middleware ---
	// Principal runs before the access filter so the filter sees who asks.
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))
	e.Use(middleware.Principal(deps.JWTSecret))
	e.Use(middleware.StreamAccess(identityRepo, contentRepo, deps.Logger))

	// --- Auth routes ---
	e.POST("/auth/signup", signupHandler.Signup)
	e.GET("/auth/signup/streams", signupHandler.Streams)
	e.POST("/auth/login/otp", authHandler.RequestOTP)
	e.POST("/auth/login", authHandler.Login)

	// --- Portal pages (guarded by the stream access filter) ---
	e.GET("/my-stream", streamHandler.MyStream)
	e.GET("/category/:id", streamHandler.Category)
	e.GET("/content/:id", streamHandler.Content)

	// --- Reporting ---
	e.GET("/api/students", studentHandler.List)
	e.GET("/blocks/top-active-students", dashboardHandler.TopActiveStudents)

	dashboard := e.Group("/dashboard", middleware.RequireAuth(), middleware.RBAC(domain.RoleAdmin))
	dashboard.GET("/inactive-students", dashboardHandler.InactiveStudents)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
