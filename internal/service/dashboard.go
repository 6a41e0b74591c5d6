package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/models"
)

const recentRecipes = 5

// Dashboard summarizes a user's account.
type Dashboard struct {
	Profile       *ProfileView         `json:"profile"`
	BMR           float64              `json:"bmr"`
	DailyCalories int                  `json:"dailyCalories"`
	RecipeCount   int64                `json:"recipeCount"`
	MealPlanCount int64                `json:"mealPlanCount"`
	RecentRecipes []models.SavedRecipe `json:"recentRecipes"`
}

// DashboardService assembles the dashboard from the other services.
type DashboardService struct {
	profiles  IProfileService
	recipes   IRecipeService
	mealPlans IMealPlanService
	log       zerolog.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(profiles IProfileService, recipes IRecipeService, mealPlans IMealPlanService, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		profiles:  profiles,
		recipes:   recipes,
		mealPlans: mealPlans,
		log:       log.With().Str("component", "dashboard").Logger(),
	}
}

// GetDashboard builds the dashboard for userID.
func (s *DashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipeCount, err := s.recipes.CountRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	planCount, err := s.mealPlans.CountMealPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.ListRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recipes) > recentRecipes {
		recipes = recipes[:recentRecipes]
	}

	return &Dashboard{
		Profile:       profile,
		BMR:           profile.BMR,
		DailyCalories: profile.DailyCalories,
		RecipeCount:   recipeCount,
		MealPlanCount: planCount,
		RecentRecipes: recipes,
	}, nil
}
