package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diacare/backend/internal/mocks"
	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/service"
)

func TestProfileEndpoints(t *testing.T) {
	env := setupAuthEnv(t)
	token := env.register(t, "amina@example.com", "amina")

	t.Run("get", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodGet, "/api/v1/profile", nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, "amina@example.com", body["email"])
		assert.Equal(t, 1705.0, body["bmr"])
		assert.Equal(t, 2643.0, body["dailyCalories"])
	})

	t.Run("update", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodPut, "/api/v1/profile", map[string]any{
			"activityLevel":       "sedentary",
			"dietaryRestrictions": []string{"halal", "halal"},
		}, token)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		body := decodeBody(t, rr)
		assert.Equal(t, 2046.0, body["dailyCalories"])
		assert.Equal(t, []any{"halal"}, body["dietaryRestrictions"])
	})

	t.Run("invalid sex", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodPut, "/api/v1/profile", map[string]any{"sex": "unknown"}, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodGet, "/api/v1/profile", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodDelete, "/api/v1/profile", nil, token)
		require.Equal(t, http.StatusNoContent, rr.Code)

		// the session ends with the account
		rr = doJSON(t, env.router, http.MethodGet, "/api/v1/profile", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = doJSON(t, env.router, http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "amina@example.com", "password": "secret123"}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProfileInternalError(t *testing.T) {
	userID := uuid.New()
	profiles := new(mocks.MockProfileService)
	profiles.On("GetProfile", mock.Anything, userID).Return(nil, assert.AnError).Once()

	r := newTestEngine()
	NewProfileHandler(profiles, authedMock(userID), zerolog.Nop()).RegisterRoutes(r.Group("/api/v1"))

	rr := doJSON(t, r, http.MethodGet, "/api/v1/profile", nil, testToken)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rr.Body.String())
}

func TestDashboardEndpoint(t *testing.T) {
	userID := uuid.New()
	dashboard := new(mocks.MockDashboardService)
	dashboard.On("GetDashboard", mock.Anything, userID).Return(&service.Dashboard{
		Profile:       &service.ProfileView{Profile: models.Profile{UserID: userID, BMR: 1500}, Username: "amina"},
		BMR:           1500,
		DailyCalories: 2325,
		RecipeCount:   3,
		MealPlanCount: 1,
		RecentRecipes: []models.SavedRecipe{},
	}, nil).Once()

	r := newTestEngine()
	NewDashboardHandler(dashboard, authedMock(userID), zerolog.Nop()).RegisterRoutes(r.Group("/api/v1"))

	rr := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil, testToken)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, 2325.0, body["dailyCalories"])
	assert.Equal(t, 3.0, body["recipeCount"])
	assert.Equal(t, 1.0, body["mealPlanCount"])

	rr = doJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	dashboard.AssertExpectations(t)
}

