package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diacare/backend/internal/types"
)

func TestBuildRecipePromptDefaults(t *testing.T) {
	p := BuildRecipePrompt(types.RecipeRequest{Calories: "450", MealType: "Lunch"}, false)

	assert.Equal(t, TextSystemPrompt, p.System)
	for _, want := range []string{
		"- Calories: 450\n",
		"- Meal Type: lunch\n",
		"- Servings: Any\n",
		"- Cooking Time: Any\n",
		"- Dietary Restrictions: None\n",
		"- Preferences: None\n",
		"- Cultural Preference: None\n",
		"- Religious Restriction: None\n",
		"- Preferred Cuisine: None\n",
		"- Available Ingredients: Any\n",
		"- Ingredients to Avoid: None\n",
		"- Health Goal: Manage blood sugar\n",
		"- Skill Level: Any\n",
		"- Budget: Any\n",
		"- Ramadan Mode: No\n",
	} {
		assert.Contains(t, p.User, want)
	}
	assert.NotContains(t, p.User, "Respond ONLY")
}

func TestBuildRecipePromptFieldOrder(t *testing.T) {
	p := BuildRecipePrompt(types.RecipeRequest{Calories: "450", MealType: "dinner"}, true)

	labels := []string{"Calories", "Meal Type", "Servings", "Cooking Time", "Dietary Restrictions",
		"Preferences", "Cultural Preference", "Religious Restriction", "Preferred Cuisine",
		"Available Ingredients", "Ingredients to Avoid", "Health Goal", "Skill Level", "Budget", "Ramadan Mode"}

	last := -1
	for _, label := range labels {
		idx := strings.Index(p.User, "- "+label+": ")
		assert.Greater(t, idx, last, "label %q out of order", label)
		last = idx
	}
}

func TestBuildRecipePromptUsesValues(t *testing.T) {
	req := types.RecipeRequest{
		Calories:             "600",
		MealType:             "iftar",
		Servings:             "4",
		CookingTime:          "30",
		DietaryRestrictions:  []string{"Gluten-free", "Dairy-free", "gluten-free"},
		Preferences:          "spicy",
		CulturalPreference:   "Malay",
		ReligiousRestriction: "Halal",
		PreferredCuisine:     "Asian",
		AvailableIngredients: "chicken, rice",
		AvoidIngredients:     "peanuts",
		HealthGoal:           "Weight loss",
		SkillLevel:           "beginner",
		Budget:               "low",
		IsRamadan:            true,
	}
	p := BuildRecipePrompt(req, true)

	assert.Equal(t, StructuredSystemPrompt, p.System)
	assert.Contains(t, p.User, "- Dietary Restrictions: Gluten-free, Dairy-free\n")
	assert.Contains(t, p.User, "- Religious Restriction: Halal\n")
	assert.Contains(t, p.User, "- Ingredients to Avoid: peanuts\n")
	assert.Contains(t, p.User, "- Ramadan Mode: Yes\n")
	assert.Contains(t, p.User, "Respond ONLY with a valid JSON object")
	assert.Contains(t, p.User, `"glycemicIndex"`)
}

func TestBuildRecipePromptMealTypes(t *testing.T) {
	ramadan := BuildRecipePrompt(types.RecipeRequest{Calories: "500", MealType: "suhoor", IsRamadan: true}, true)
	assert.Contains(t, ramadan.User, "Valid meal types: suhoor, iftar.")

	regular := BuildRecipePrompt(types.RecipeRequest{Calories: "500", MealType: "snack"}, true)
	assert.Contains(t, regular.User, "Valid meal types: breakfast, lunch, dinner, snack.")
}

func TestBuildRecipePromptIsDeterministic(t *testing.T) {
	req := types.RecipeRequest{Calories: "500", MealType: "dinner", DietaryRestrictions: []string{"Vegan"}}
	assert.Equal(t, BuildRecipePrompt(req, true), BuildRecipePrompt(req, true))
}

func TestBuildMealPlanPrompt(t *testing.T) {
	p := BuildMealPlanPrompt(types.MealPlanRequest{DailyCalories: "1800"})

	assert.Equal(t, StructuredSystemPrompt, p.System)
	assert.Contains(t, p.User, "Create a 7-day diabetes-friendly meal plan")
	assert.Contains(t, p.User, "- Daily Calories: 1800\n")
	assert.Contains(t, p.User, "- Dietary Restrictions: None\n")
	assert.Contains(t, p.User, "- Preferences: None\n")
	assert.Contains(t, p.User, `"totalCalories"`)

	p = BuildMealPlanPrompt(types.MealPlanRequest{DailyCalories: "1500", Days: "3"})
	assert.Contains(t, p.User, "- Days: 3\n")
}
