// Command server runs the Holycity Portal HTTP API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	attendanceapp "github.com/holycity/portal/internal/application/attendance"
	financeapp "github.com/holycity/portal/internal/application/finance"
	hrapp "github.com/holycity/portal/internal/application/hr"
	identityapp "github.com/holycity/portal/internal/application/identity"
	reportapp "github.com/holycity/portal/internal/application/report"
	"github.com/holycity/portal/internal/domain/attendance"
	"github.com/holycity/portal/internal/infrastructure/auth"
	"github.com/holycity/portal/internal/infrastructure/cache"
	"github.com/holycity/portal/internal/infrastructure/config"
	"github.com/holycity/portal/internal/infrastructure/logger"
	"github.com/holycity/portal/internal/infrastructure/persistence"
	"github.com/holycity/portal/internal/infrastructure/printing"
	"github.com/holycity/portal/internal/infrastructure/storage"
	"github.com/holycity/portal/internal/infrastructure/telemetry"
	"github.com/holycity/portal/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Holycity Portal",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.Database.DBName))); err != nil {
			log.Error("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	// Redis-backed coordination when Redis is configured, in-process
	// fallbacks otherwise
	var (
		blacklist auth.TokenBlacklist
		locker    attendanceapp.SubmitLocker
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		locker = cache.NewRedisSubmitLocker(redisClient, log)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.RedisAddr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		locker = cache.NewInMemorySubmitLocker()
		log.Warn("Redis not configured, using in-process token blacklist and submit locks")
	}

	// Attendance photos and accounting receipts share the storage backend
	// but live under separate roots
	var (
		evidence attendance.EvidenceStore
		receipts financeapp.ReceiptStore
	)
	switch cfg.Storage.Backend {
	case "s3":
		evidence, err = storage.NewS3EvidenceStore(&cfg.Storage.S3, storage.WithLogger(log))
		if err == nil {
			receipts, err = storage.NewS3EvidenceStore(&cfg.Storage.S3,
				storage.WithLogger(log), storage.WithKeyPrefix("receipts/"))
		}
	default:
		evidence, err = storage.NewLocalEvidenceStore(cfg.Storage.EvidenceDir, log)
		if err == nil {
			receipts, err = storage.NewLocalEvidenceStore(cfg.Storage.ReceiptDir, log)
		}
	}
	if err != nil {
		log.Fatal("Failed to initialize evidence storage", zap.Error(err))
	}

	// PDF rendering
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer renderer.Close()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	eventRepo := persistence.NewGormAttendanceRepository(db.DB, cfg.Attendance.Location())
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	performanceRepo := persistence.NewGormPerformanceRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	attendanceService := attendanceapp.NewService(eventRepo, evidence, locker,
		attendanceapp.ServiceConfig{
			Fence: attendance.Geofence{
				Latitude:     cfg.Attendance.OfficeLatitude,
				Longitude:    cfg.Attendance.OfficeLongitude,
				RadiusMeters: cfg.Attendance.AllowedRadiusM,
			},
			SubmitTimeout: cfg.Attendance.SubmitTimeout,
			Location:      cfg.Attendance.Location(),
		}, log)
	employeeService := hrapp.NewEmployeeService(employeeRepo, performanceRepo, log)
	transactionService := financeapp.NewTransactionService(transactionRepo, receipts, log)
	reportService := reportapp.NewService(eventRepo, transactionRepo, renderer, log)

	engine := router.New(router.Dependencies{
		Config:             cfg,
		Logger:             log,
		Database:           db,
		JWTService:         jwtService,
		TokenBlacklist:     blacklist,
		AuthService:        authService,
		AttendanceService:  attendanceService,
		EmployeeService:    employeeService,
		TransactionService: transactionService,
		ReportService:      reportService,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	fmt.Println("Server exited gracefully")
}
