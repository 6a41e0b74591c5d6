package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diacare/backend/internal/models"
)

// Migrate creates or updates the schema. On Postgres the pgvector extension
// is enabled first so the embedding column can be created.
func Migrate(db *gorm.DB, log zerolog.Logger) error {
	if db.Dialector.Name() == DriverPostgres {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to enable pgvector: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.SavedRecipe{},
		&models.SavedMealPlan{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info().Str("dialect", db.Dialector.Name()).Msg("schema migrated")
	return nil
}
