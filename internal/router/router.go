// Package router assembles the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diacare/backend/config"
	"github.com/diacare/backend/internal/api"
	"github.com/diacare/backend/internal/middleware"
	"github.com/diacare/backend/internal/service"
)

// Services are the dependencies the routes are served from.
type Services struct {
	DB         *gorm.DB
	Generation service.IGenerationService
	Auth       service.IAuthService
	Profiles   service.IProfileService
	Recipes    service.IRecipeService
	MealPlans  service.IMealPlanService
	Dashboard  service.IDashboardService
}

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, svc Services, log zerolog.Logger) *gin.Engine {
	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	api.RegisterValidators()

	router := gin.New()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.CORSOrigins),
		middleware.ErrorHandler(log),
	)

	health := api.NewHealthHandler(svc.DB, log)
	health.RegisterRoutes(router)

	// generation endpoints keep their historical paths
	api.NewGenerationHandler(svc.Generation, log).RegisterRoutes(router.Group("/api"))

	v1 := router.Group("/api/v1")
	health.RegisterRoutes(v1)
	api.NewAuthHandler(svc.Auth, log).RegisterRoutes(v1)
	api.NewProfileHandler(svc.Profiles, svc.Auth, log).RegisterRoutes(v1)
	api.NewRecipeHandler(svc.Recipes, svc.Auth, log).RegisterRoutes(v1)
	api.NewMealPlanHandler(svc.MealPlans, svc.Auth, log).RegisterRoutes(v1)
	api.NewDashboardHandler(svc.Dashboard, svc.Auth, log).RegisterRoutes(v1)

	return router
}
