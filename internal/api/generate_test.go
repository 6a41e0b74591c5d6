package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diacare/backend/internal/mocks"
	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

func setupGenerationTest(provider *mocks.MockProvider) http.Handler {
	r := newTestEngine()
	gateway := service.NewGateway(provider, zerolog.Nop())
	NewGenerationHandler(gateway, zerolog.Nop()).RegisterRoutes(r.Group("/api"))
	return r
}

func validRecipeBody() map[string]any {
	return map[string]any{
		"calories":            "500",
		"mealType":            "Lunch",
		"servings":            2,
		"dietaryRestrictions": []string{"halal", "low-sodium"},
	}
}

func TestGenerateRecipe(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Complete", mock.Anything, service.StructuredSystemPrompt, mock.AnythingOfType("string"), service.ModeJSON).Return(`{"title":"Chickpea Salad","glycemicIndex":"Low","nutritionalInfo":{"carbs":"30g","calories":450}}`, nil).Once()

	rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-recipe", validRecipeBody(), "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"recipe":{"title":"Chickpea Salad","glycemicIndex":"Low","nutritionalInfo":{"carbs":"30g","calories":450}}}`, rr.Body.String())
	provider.AssertExpectations(t)
}

func TestGenerateRecipeFallback(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything, service.ModeJSON).
		Return("Here is a lovely salad...", nil).Once()

	rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-recipe", validRecipeBody(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"recipe":{"title":"Generated Recipe","description":"Here is a lovely salad...","glycemicIndex":"Unknown"}}`, rr.Body.String())
}

func TestGenerateRecipeReturnsReplyUnchanged(t *testing.T) {
	reply := `{"title":"Lentil Soup","servings":2,"prepTime":"10 min","tips":[],"ingredients":["1 cup lentils"],"instructions":"Simmer."}`
	provider := new(mocks.MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything, service.ModeJSON).Return(reply, nil).Once()

	rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-recipe", validRecipeBody(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"recipe":`+reply+`}`, rr.Body.String())
}

func TestGenerateRecipeText(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Complete", mock.Anything, service.TextSystemPrompt, mock.Anything, service.ModeText).
		Return("1. Chop the vegetables.", nil).Once()

	rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-recipe/text", validRecipeBody(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"recipe":"1. Chop the vegetables."}`, rr.Body.String())
}

func TestGenerateRecipeValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing calories", body: map[string]any{"mealType": "lunch"}},
		{name: "missing meal type", body: map[string]any{"calories": 500}},
		{name: "ramadan meal type outside ramadan", body: map[string]any{"calories": 500, "mealType": "iftar"}},
		{name: "standard meal type during ramadan", body: map[string]any{"calories": 500, "mealType": "lunch", "isRamadan": true}},
		{name: "zero servings", body: map[string]any{"calories": 500, "mealType": "lunch", "servings": "0"}},
		{name: "unknown skill level", body: map[string]any{"calories": 500, "mealType": "lunch", "skillLevel": "chef"}},
		{name: "unknown budget", body: map[string]any{"calories": 500, "mealType": "lunch", "budget": "lavish"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(mocks.MockProvider)
			rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-recipe", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decodeBody(t, rr)["error"])
			provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateRecipeRamadanMealType(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
		return containsAll(p, "- Meal Type: suhoor", "- Ramadan Mode: Yes")
	}), service.ModeJSON).Return(`{"title":"Suhoor Bowl"}`, nil).Once()

	body := map[string]any{"calories": 400, "mealType": "Suhoor", "isRamadan": true}
	rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-recipe", body, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	provider.AssertExpectations(t)
}

func TestGenerationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "quota",
			err:        &service.GenerationError{Kind: service.KindQuotaExceeded, Status: http.StatusTooManyRequests, Message: "OpenAI quota exceeded. Please check your plan or billing."},
			path:       "/api/generate-recipe",
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"error":"OpenAI quota exceeded. Please check your plan or billing."}`,
		},
		{
			name:       "rate limited",
			err:        &service.GenerationError{Kind: service.KindRateLimited, Status: http.StatusTooManyRequests, Message: "Too many requests to OpenAI. Try again later."},
			path:       "/api/generate-recipe/text",
			wantStatus: http.StatusTooManyRequests,
			wantBody:   `{"error":"Too many requests to OpenAI. Try again later."}`,
		},
		{
			name:       "unclassified error",
			err:        errors.New("connection reset by peer"),
			path:       "/api/generate-recipe",
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to generate recipe. Please try again later."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(mocks.MockGenerationService)
			gen.On("GenerateRecipe", mock.Anything, mock.Anything).Return(types.RecipeResult{}, tt.err).Maybe()
			gen.On("GenerateRecipeText", mock.Anything, mock.Anything).Return("", tt.err).Maybe()

			r := newTestEngine()
			NewGenerationHandler(gen, zerolog.Nop()).RegisterRoutes(r.Group("/api"))

			rr := doJSON(t, r, http.MethodPost, tt.path, validRecipeBody(), "")
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
			assert.NotContains(t, rr.Body.String(), "connection reset")
		})
	}
}

func TestProviderFailureThroughGateway(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything, service.ModeJSON).
		Return("", errors.New("dial tcp: i/o timeout")).Once()

	rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-meal-plan", map[string]any{"dailyCalories": 1800}, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to generate meal plan. Please try again later."}`, rr.Body.String())
}

func TestGenerateMealPlan(t *testing.T) {
	t.Run("parsed", func(t *testing.T) {
		provider := new(mocks.MockProvider)
		provider.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
			return containsAll(p, "Create a 3-day", "- Daily Calories: 1800")
		}), service.ModeJSON).Return("```json\n{\"totalDays\":3,\"dailyCalories\":1800,\"plan\":[{\"day\":1,\"meals\":{\"breakfast\":{\"name\":\"Oats\"}}}]}\n```", nil).Once()

		rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-meal-plan",
			map[string]any{"dailyCalories": "1800", "days": 3}, "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.JSONEq(t, `{"mealPlan":{"totalDays":3,"dailyCalories":1800,"plan":[{"day":1,"meals":{"breakfast":{"name":"Oats"}}}]}}`, rr.Body.String())
		provider.AssertExpectations(t)
	})

	t.Run("fallback", func(t *testing.T) {
		provider := new(mocks.MockProvider)
		provider.On("Complete", mock.Anything, mock.Anything, mock.Anything, service.ModeJSON).Return("Day 1: oats", nil).Once()

		rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-meal-plan",
			map[string]any{"dailyCalories": 1800}, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"mealPlan":{"title":"Generated Meal Plan","description":"Day 1: oats","totalDays":7,"dailyCalories":1800}}`, rr.Body.String())
	})

	t.Run("caps days", func(t *testing.T) {
		provider := new(mocks.MockProvider)
		provider.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(p string) bool {
			return strings.Contains(p, "Create a 14-day")
		}), service.ModeJSON).Return("{}", nil).Once()

		rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-meal-plan",
			map[string]any{"dailyCalories": 1800, "days": 30}, "")
		assert.Equal(t, http.StatusOK, rr.Code)
		provider.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		for _, body := range []map[string]any{
			{},
			{"dailyCalories": 1800, "days": 0},
			{"dailyCalories": -5},
		} {
			provider := new(mocks.MockProvider)
			rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-meal-plan", body, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})
}

func TestGenerationIgnoresClientCancellation(t *testing.T) {
	provider := new(mocks.MockProvider)
	provider.On("Complete", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Done() == nil
	}), mock.Anything, mock.Anything, service.ModeText).Return("ok", nil).Once()

	rr := doJSON(t, setupGenerationTest(provider), http.MethodPost, "/api/generate-recipe/text", validRecipeBody(), "")
	assert.Equal(t, http.StatusOK, rr.Code)
	provider.AssertExpectations(t)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
