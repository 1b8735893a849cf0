package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/pageza/recipe-finder/backend/internal/models"
)

// Migrate brings the schema up to date using GORM auto-migration.
// Postgres deployments may instead apply migrations/*.sql with cmd/migrate.
func Migrate(db *gorm.DB) error {
	slog.Info("running auto-migration", "dialect", db.Dialector.Name())
	if err := db.AutoMigrate(&models.SearchLog{}); err != nil {
		return fmt.Errorf("failed to migrate search logs: %w", err)
	}
	return nil
}
