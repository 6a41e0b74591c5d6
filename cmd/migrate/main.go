package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/diacare/backend/config"
	"github.com/diacare/backend/internal/database"
	"github.com/diacare/backend/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, !cfg.Env.IsProduction())

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database schema is up to date")
}
