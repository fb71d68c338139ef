// Package router assembles the gin engine: middleware chain and API routes.
package router

import (
	"github.com/gin-gonic/gin"
	attendanceapp "github.com/holycity/portal/internal/application/attendance"
	financeapp "github.com/holycity/portal/internal/application/finance"
	hrapp "github.com/holycity/portal/internal/application/hr"
	identityapp "github.com/holycity/portal/internal/application/identity"
	reportapp "github.com/holycity/portal/internal/application/report"
	"github.com/holycity/portal/internal/domain/identity"
	"github.com/holycity/portal/internal/infrastructure/auth"
	"github.com/holycity/portal/internal/infrastructure/config"
	"github.com/holycity/portal/internal/infrastructure/logger"
	"github.com/holycity/portal/internal/infrastructure/persistence"
	"github.com/holycity/portal/internal/interfaces/http/handler"
	"github.com/holycity/portal/internal/interfaces/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Dependencies carries everything the router needs to wire the API.
type Dependencies struct {
	Config         *config.Config
	Logger         *zap.Logger
	Database       *persistence.Database
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	AuthService        *identityapp.AuthService
	AttendanceService  *attendanceapp.Service
	EmployeeService    *hrapp.EmployeeService
	TransactionService *financeapp.TransactionService
	ReportService      *reportapp.Service
}

// New builds the gin engine with the full middleware chain and all routes.
func New(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)

	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.RequestID())
	if deps.Config.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(deps.Config.Telemetry.ServiceName))
	}
	engine.Use(logger.GinMiddleware(deps.Logger))

	corsCfg := middleware.DefaultCORSConfig()
	if len(deps.Config.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	}
	if len(deps.Config.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = deps.Config.HTTP.CORSAllowMethods
	}
	if len(deps.Config.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = deps.Config.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if deps.Config.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))
	}
	if deps.Config.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			deps.Config.HTTP.RateLimitRequests,
			deps.Config.HTTP.RateLimitWindow,
		)
		engine.Use(middleware.RateLimit(limiter))
	}

	systemHandler := handler.NewSystemHandler(deps.Database)
	authHandler := handler.NewAuthHandler(deps.AuthService)
	attendanceHandler := handler.NewAttendanceHandler(deps.AttendanceService)
	employeeHandler := handler.NewEmployeeHandler(deps.EmployeeService)
	transactionHandler := handler.NewTransactionHandler(deps.TransactionService)
	reportHandler := handler.NewReportHandler(deps.ReportService)

	engine.GET("/health", systemHandler.Health)

	api := engine.Group("/api/v1")

	// Public auth endpoints
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	// Everything else requires a valid access token
	jwtCfg := middleware.DefaultJWTConfig(deps.JWTService)
	jwtCfg.TokenBlacklist = deps.TokenBlacklist
	jwtCfg.Logger = deps.Logger
	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	attendanceGroup := authed.Group("/attendance")
	attendanceGroup.POST("", middleware.RequireCapability(identity.CapAttendanceSubmit), attendanceHandler.Submit)
	attendanceGroup.GET("", attendanceHandler.Records)

	employees := authed.Group("/employees")
	employees.GET("", middleware.RequireCapability(identity.CapEmployeeRead), employeeHandler.List)
	employees.GET("/:id", middleware.RequireCapability(identity.CapEmployeeRead), employeeHandler.Get)
	employees.POST("", middleware.RequireCapability(identity.CapEmployeeManage), employeeHandler.Create)
	employees.PUT("/:id", middleware.RequireCapability(identity.CapEmployeeManage), employeeHandler.Update)
	employees.POST("/:id/performance", middleware.RequireCapability(identity.CapPerformanceManage), employeeHandler.RecordPerformance)
	employees.GET("/:id/performance", middleware.RequireCapability(identity.CapEmployeeRead), employeeHandler.ListPerformance)

	transactions := authed.Group("/transactions")
	transactions.GET("", middleware.RequireCapability(identity.CapFinanceRead), transactionHandler.List)
	transactions.GET("/summary", middleware.RequireCapability(identity.CapFinanceRead), transactionHandler.Summary)
	transactions.GET("/mutations", middleware.RequireCapability(identity.CapFinanceRead), transactionHandler.Mutations)
	transactions.POST("", middleware.RequireCapability(identity.CapFinanceManage), transactionHandler.Record)

	reports := authed.Group("/reports")
	reports.Use(middleware.RequireCapability(identity.CapReportExport))
	reports.GET("/attendance", reportHandler.AttendancePDF)
	reports.GET("/finance", reportHandler.FinancePDF)

	return engine
}
