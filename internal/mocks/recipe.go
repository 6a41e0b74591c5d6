package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

// MockRecipeService is a mock implementation of the RecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, recipe types.GeneratedRecipe, mealType string) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, recipe, mealType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedRecipe), args.Error(1)
}

func (m *MockRecipeService) CountRecipes(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMealPlanService is a mock implementation of IMealPlanService.
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) SaveMealPlan(ctx context.Context, userID uuid.UUID, plan types.MealPlan) (*models.SavedMealPlan, error) {
	args := m.Called(ctx, userID, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedMealPlan), args.Error(1)
}

func (m *MockMealPlanService) ListMealPlans(ctx context.Context, userID uuid.UUID) ([]models.SavedMealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavedMealPlan), args.Error(1)
}

func (m *MockMealPlanService) DeleteMealPlan(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockMealPlanService) CountMealPlans(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	_ service.IRecipeService   = (*MockRecipeService)(nil)
	_ service.IMealPlanService = (*MockMealPlanService)(nil)
)
