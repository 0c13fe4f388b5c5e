package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func RunMigrations(db *sql.DB, migrationsPath string, logger *slog.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database schema is up to date")
			return nil
		}
		if strings.Contains(err.Error(), "Dirty database") {
			return recoverDirtyState(m, err, logger)
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Migrations completed", "version", version, "dirty", dirty)

	return nil
}

// recoverDirtyState retries once after forcing the version back by one, so a
// migration interrupted mid-flight does not wedge every later startup.
func recoverDirtyState(m *migrate.Migrate, upErr error, logger *slog.Logger) error {
	version, dirty, verErr := m.Version()
	if verErr != nil || !dirty || version == 0 {
		return fmt.Errorf("failed to run migrations: %w", upErr)
	}

	logger.Warn("Dirty migration state detected, forcing previous version to retry", "version", version)
	if err := m.Force(int(version) - 1); err != nil {
		return fmt.Errorf("failed to force migration version: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations after dirty fix: %w", err)
	}
	return nil
}
