package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/types"
)

// IGenerationService defines the recipe and meal plan generation operations
type IGenerationService interface {
	GenerateRecipeText(ctx context.Context, req types.RecipeRequest) (string, error)
	GenerateRecipe(ctx context.Context, req types.RecipeRequest) (types.RecipeResult, error)
	GenerateMealPlan(ctx context.Context, req types.MealPlanRequest) (types.MealPlanResult, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, password string) error
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*ProfileView, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// IRecipeService defines the interface for saved recipe operations
type IRecipeService interface {
	SaveRecipe(ctx context.Context, userID uuid.UUID, recipe types.GeneratedRecipe, mealType string) (*models.SavedRecipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error)
	DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error
	SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error)
	CountRecipes(ctx context.Context, userID uuid.UUID) (int64, error)
}

// IMealPlanService defines the interface for saved meal plan operations
type IMealPlanService interface {
	SaveMealPlan(ctx context.Context, userID uuid.UUID, plan types.MealPlan) (*models.SavedMealPlan, error)
	ListMealPlans(ctx context.Context, userID uuid.UUID) ([]models.SavedMealPlan, error)
	DeleteMealPlan(ctx context.Context, userID, id uuid.UUID) error
	CountMealPlans(ctx context.Context, userID uuid.UUID) (int64, error)
}

// IDashboardService defines the dashboard read model
type IDashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
}

var (
	_ IGenerationService = (*Gateway)(nil)
	_ IAuthService       = (*AuthService)(nil)
	_ IProfileService    = (*ProfileService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IMealPlanService   = (*MealPlanService)(nil)
	_ IDashboardService  = (*DashboardService)(nil)
	_ TokenStore         = (*RedisTokenStore)(nil)
	_ Mailer             = (*EmailService)(nil)
	_ Provider           = (*OpenAIProvider)(nil)
)
