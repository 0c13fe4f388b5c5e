package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rinkdesk/backend/internal/database"
	"github.com/rinkdesk/backend/internal/di"
	"github.com/rinkdesk/backend/internal/domain"
	"github.com/rinkdesk/backend/internal/password"
	"github.com/rinkdesk/backend/internal/server"
)

func main() {
	_ = godotenv.Load()

	app, cleanup, err := di.InitializeApplication()
	if err != nil {
		panic(err)
	}
	defer cleanup()

	app.Logger.Info("Starting RinkDesk API", "version", di.Version)

	migrationsPath := getMigrationsPath()
	if err := database.RunMigrations(app.DB, migrationsPath, app.Logger); err != nil {
		app.Logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := seedUsers(ctx, app.UserRepo, app.Config.Auth.BootstrapUsers, app.Logger); err != nil {
		app.Logger.Error("Failed to seed bootstrap users", "error", err)
		os.Exit(1)
	}

	app.Sweeper.Start(ctx)

	app.HealthHandler.Register(app.Server.App())
	app.AuthHandler.Register(app.Server.App(), server.AuthRateLimiter())
	app.SessionHandler.Register(app.Server.App(), app.AuthMiddleware.Require())
	app.AnalyticsHandler.Register(app.Server.App(), app.AuthMiddleware.Require(), app.AuthMiddleware.RequireAdmin())
	app.NotificationHandler.Register(app.Server.App(), app.AuthMiddleware.Require())

	go func() {
		if err := app.Server.Start(); err != nil {
			app.Logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Sweeper.Stop()

	if err := app.Server.Shutdown(); err != nil {
		app.Logger.Error("Server forced to shutdown", "error", err)
	}

	app.Logger.Info("Server stopped")
}

// seedUsers upserts staff accounts from the BOOTSTRAP_USERS env var, each
// entry formatted as username:password:role:areaId. Passwords are stored
// bcrypt-hashed; re-running with the same entries just refreshes them.
func seedUsers(ctx context.Context, repo domain.UserRepository, spec string, logger *slog.Logger) error {
	if spec == "" {
		return nil
	}

	for _, entry := range strings.Split(spec, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 4 {
			return fmt.Errorf("malformed bootstrap user entry %q", entry)
		}

		role := domain.Role(parts[2])
		if role != domain.RoleAdmin && role != domain.RoleEmployee {
			return fmt.Errorf("unknown role %q for bootstrap user %q", parts[2], parts[0])
		}

		hash, err := password.Hash(parts[1])
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", parts[0], err)
		}

		if _, err := repo.Upsert(ctx, domain.UpsertUserInput{
			Username:     parts[0],
			PasswordHash: hash,
			Role:         role,
			AreaID:       parts[3],
		}); err != nil {
			return fmt.Errorf("upsert bootstrap user %q: %w", parts[0], err)
		}
		logger.Info("Bootstrap user ready", "username", parts[0], "role", role, "area", parts[3])
	}
	return nil
}

func getMigrationsPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return "migrations"
	}

	execDir := filepath.Dir(execPath)

	possiblePaths := []string{
		filepath.Join(execDir, "migrations"),
		filepath.Join(execDir, "..", "..", "migrations"),
		"migrations",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "migrations"
}
