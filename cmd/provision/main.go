// Command provision seeds the initial admin account. Safe to run repeatedly:
// an existing admin account is left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	identityapp "github.com/holycity/portal/internal/application/identity"
	"github.com/holycity/portal/internal/infrastructure/config"
	"github.com/holycity/portal/internal/infrastructure/logger"
	"github.com/holycity/portal/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		username string
		password string
		logLevel string
	)

	flag.StringVar(&username, "username", "admin", "Admin account username")
	flag.StringVar(&password, "password", "", "Admin account password (or PORTAL_ADMIN_PASSWORD)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if password == "" {
		password = os.Getenv("PORTAL_ADMIN_PASSWORD")
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "Admin password required: pass -password or set PORTAL_ADMIN_PASSWORD")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provisioner := identityapp.NewProvisioner(persistence.NewGormUserRepository(db.DB), log)
	if err := provisioner.EnsureAdmin(ctx, username, password); err != nil {
		log.Fatal("Provisioning failed", zap.Error(err))
	}

	log.Info("Provisioning complete", zap.String("username", username))
}
