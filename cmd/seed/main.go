package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/diacare/backend/config"
	"github.com/diacare/backend/internal/database"
	"github.com/diacare/backend/internal/logger"
	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

const demoPassword = "testpassword123"

var demoUsers = []types.RegisterRequest{
	{Name: "Amina Yusuf", Username: "amina", Email: "amina@example.com", Age: "52", Weight: "74", Height: "163", Sex: "female", ActivityLevel: "light"},
	{Name: "Omar Haddad", Username: "omar", Email: "omar@example.com", Age: "47", Weight: "88", Height: "178", Sex: "male", ActivityLevel: "moderate"},
	{Name: "Lena Fischer", Username: "lena", Email: "lena@example.com", Age: "35", Weight: "61", Height: "170", Sex: "female", ActivityLevel: "active"},
}

var demoRecipes = []struct {
	mealType string
	recipe   types.GeneratedRecipe
}{
	{"breakfast", types.GeneratedRecipe{
		Title:         "Steel-Cut Oats with Walnuts",
		Description:   "Slow-release oats topped with walnuts and cinnamon.",
		GlycemicIndex: "Low",
		Ingredients: []types.IngredientNote{
			{Item: "steel-cut oats", Reason: "intact grains digest slowly"},
			{Item: "walnuts", Reason: "healthy fats blunt the glucose response"},
		},
		Instructions: []string{"Simmer the oats for 20 minutes.", "Top with walnuts and cinnamon."},
	}},
	{"iftar", types.GeneratedRecipe{
		Title:         "Lentil and Spinach Soup",
		Description:   "A gentle, fibre-rich soup to break the fast.",
		GlycemicIndex: "Low",
		Ingredients: []types.IngredientNote{
			{Item: "red lentils", Reason: "protein and soluble fibre"},
			{Item: "spinach", Reason: "non-starchy vegetable"},
		},
		Instructions: []string{"Cook lentils with onion and cumin.", "Stir in spinach before serving."},
	}},
}

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
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// registration never reads the token store, and mail only logs without SMTP
	auth := service.NewAuthService(db, nil, service.NewEmailService(config.SMTPConfig{}, log), cfg.JWTSecret, "", log)
	recipes := service.NewRecipeService(db, log)
	ctx := context.Background()

	for _, u := range demoUsers {
		req := u
		req.Password = demoPassword

		user, _, err := auth.Register(ctx, &req)
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrUsernameTaken) {
			log.Info().Str("email", req.Email).Msg("user already exists, skipping")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("email", req.Email).Msg("failed to create user")
		}

		for _, r := range demoRecipes {
			if _, err := recipes.SaveRecipe(ctx, user.ID, r.recipe, r.mealType); err != nil {
				log.Fatal().Err(err).Str("title", r.recipe.Title).Msg("failed to save recipe")
			}
		}
		log.Info().Str("email", req.Email).Int("recipes", len(demoRecipes)).Msg("seeded user")
	}

	log.Info().Str("password", demoPassword).Msg("seeding finished")
}
