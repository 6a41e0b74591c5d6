// Package mocks holds testify mocks of the service interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

// MockProvider is a mock upstream completion provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, mode service.Mode) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, mode)
	return args.String(0), args.Error(1)
}

// MockGenerationService is a mock implementation of IGenerationService.
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) GenerateRecipeText(ctx context.Context, req types.RecipeRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationService) GenerateRecipe(ctx context.Context, req types.RecipeRequest) (types.RecipeResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.RecipeResult), args.Error(1)
}

func (m *MockGenerationService) GenerateMealPlan(ctx context.Context, req types.MealPlanRequest) (types.MealPlanResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(types.MealPlanResult), args.Error(1)
}

var (
	_ service.Provider           = (*MockProvider)(nil)
	_ service.IGenerationService = (*MockGenerationService)(nil)
)
