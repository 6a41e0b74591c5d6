package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/diacare/backend/config"
	"github.com/diacare/backend/internal/database"
	"github.com/diacare/backend/internal/logger"
	"github.com/diacare/backend/internal/router"
	"github.com/diacare/backend/internal/server"
	"github.com/diacare/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, !cfg.Env.IsProduction())
	log.Info().Str("env", string(cfg.Env)).Str("provider", cfg.LLM.Provider).Str("model", cfg.LLM.Model).Msg("configuration loaded")

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	gateway := service.NewGateway(service.NewOpenAIProvider(cfg.LLM), log)
	mailer := service.NewEmailService(cfg.SMTP, log)
	authService := service.NewAuthService(db, service.NewRedisTokenStore(redisClient), mailer, cfg.JWTSecret, cfg.PasswordResetURL, log)
	profileService := service.NewProfileService(db, log)
	recipeService := service.NewRecipeService(db, log)
	mealPlanService := service.NewMealPlanService(db, log)

	engine := router.SetupRouter(cfg, router.Services{
		DB:         db,
		Generation: gateway,
		Auth:       authService,
		Profiles:   profileService,
		Recipes:    recipeService,
		MealPlans:  mealPlanService,
		Dashboard:  service.NewDashboardService(profileService, recipeService, mealPlanService, log),
	}, log)

	srv := server.New(cfg, engine, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Stringer("signal", sig).Msg("received signal")
	}

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}
