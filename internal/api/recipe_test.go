package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/testhelpers"
)

type contentEnv struct {
	*authEnv
}

func setupContentEnv(t *testing.T) *contentEnv {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	auth := service.NewAuthService(db, testhelpers.NewMemoryTokenStore(), &testhelpers.RecordingMailer{}, "test-secret", "", zerolog.Nop())

	r := newTestEngine()
	v1 := r.Group("/api/v1")
	NewAuthHandler(auth, zerolog.Nop()).RegisterRoutes(v1)
	NewRecipeHandler(service.NewRecipeService(db, zerolog.Nop()), auth, zerolog.Nop()).RegisterRoutes(v1)
	NewMealPlanHandler(service.NewMealPlanService(db, zerolog.Nop()), auth, zerolog.Nop()).RegisterRoutes(v1)
	return &contentEnv{authEnv: &authEnv{router: r, auth: auth}}
}

func TestRecipeEndpoints(t *testing.T) {
	env := setupContentEnv(t)
	owner := env.register(t, "amina@example.com", "amina")
	stranger := env.register(t, "omar@example.com", "omar")

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/recipes", map[string]any{
		"mealType": "Dinner",
		"recipe": map[string]any{
			"title":           "Lentil Soup",
			"description":     "Warming and fibre-rich",
			"glycemicIndex":   "Low",
			"ingredients":     []map[string]string{{"item": "red lentils", "reason": "slow carbs"}},
			"nutritionalInfo": map[string]any{"carbs": "30g", "calories": 320},
		},
	}, owner)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeBody(t, rr)
	id := created["id"].(string)
	assert.Equal(t, "dinner", created["mealType"])
	assert.NotContains(t, created, "embedding")

	t.Run("get", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodGet, "/api/v1/recipes/"+id, nil, owner)
		require.Equal(t, http.StatusOK, rr.Code)
		recipe := decodeBody(t, rr)["recipe"].(map[string]any)
		assert.Equal(t, map[string]any{"carbs": "30g", "calories": 320.0}, recipe["nutritionalInfo"])
	})

	t.Run("other users get 404", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodGet, "/api/v1/recipes/"+id, nil, stranger)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		rr = doJSON(t, env.router, http.MethodDelete, "/api/v1/recipes/"+id, nil, stranger)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodGet, "/api/v1/recipes/not-a-uuid", nil, owner)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("list and search", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodGet, "/api/v1/recipes", nil, owner)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody(t, rr)["recipes"], 1)

		rr = doJSON(t, env.router, http.MethodGet, "/api/v1/recipes/search?q=lentil", nil, owner)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decodeBody(t, rr)["recipes"], 1)

		rr = doJSON(t, env.router, http.MethodGet, "/api/v1/recipes/search?q=lentil", nil, stranger)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decodeBody(t, rr)["recipes"])
	})

	t.Run("untitled recipe", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodPost, "/api/v1/recipes", map[string]any{"recipe": map[string]any{}}, owner)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodDelete, "/api/v1/recipes/"+id, nil, owner)
		require.Equal(t, http.StatusNoContent, rr.Code)
		rr = doJSON(t, env.router, http.MethodGet, "/api/v1/recipes/"+id, nil, owner)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		rr := doJSON(t, env.router, http.MethodGet, "/api/v1/recipes", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMealPlanEndpoints(t *testing.T) {
	env := setupContentEnv(t)
	owner := env.register(t, "amina@example.com", "amina")

	rr := doJSON(t, env.router, http.MethodPost, "/api/v1/meal-plans", map[string]any{
		"mealPlan": map[string]any{
			"totalDays":     2,
			"dailyCalories": "1800",
			"plan": []map[string]any{
				{"day": 1, "meals": map[string]any{"breakfast": map[string]any{"name": "Oats", "calories": 350}}},
				{"day": 2, "meals": map[string]any{"lunch": map[string]any{"name": "Dal", "calories": "450 kcal"}}},
			},
		},
	}, owner)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decodeBody(t, rr)
	assert.Equal(t, 2.0, created["totalDays"])
	assert.Equal(t, 1800.0, created["dailyCalories"])

	rr = doJSON(t, env.router, http.MethodPost, "/api/v1/meal-plans", map[string]any{"mealPlan": map[string]any{}}, owner)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, env.router, http.MethodGet, "/api/v1/meal-plans", nil, owner)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["mealPlans"], 1)

	rr = doJSON(t, env.router, http.MethodDelete, "/api/v1/meal-plans/"+uuid.NewString(), nil, owner)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, env.router, http.MethodDelete, "/api/v1/meal-plans/"+created["id"].(string), nil, owner)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
