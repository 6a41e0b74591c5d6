package service

import (
	"fmt"
	"strings"

	"github.com/diacare/backend/internal/types"
)

// System prompts sent with every generation call.
const (
	TextSystemPrompt       = "You are a professional nutritionist and chef specializing in diabetes-friendly meals."
	StructuredSystemPrompt = "You are a professional nutritionist and chef specializing in diabetes-friendly meals. " +
		"Your goal is to provide safe, accurate, interpretable, and culturally appropriate recipes. " +
		"Ensure strict adherence to dietary, ethical, and religious restrictions. Always output valid JSON."
)

// Defaults substituted for empty request fields.
const (
	defaultNone       = "None"
	defaultAny        = "Any"
	defaultHealthGoal = "Manage blood sugar"
)

const recipeSchema = `{
  "title": "Recipe Title",
  "description": "A short, appealing description explaining why it is suitable for a diabetes-friendly diet, adhering strictly to the user's inputs.",
  "glycemicIndex": "Low/Medium/High (estimate based on ingredients)",
  "ethicalDisclaimer": "Disclaimer: This recipe is AI-generated for informational purposes and should not replace professional medical advice.",
  "ingredients": [
    { "item": "1 cup spinach", "reason": "Low in carbs and rich in fiber to prevent blood sugar spikes." }
  ],
  "instructions": ["Step 1...", "Step 2..."],
  "tips": ["Tip 1...", "Tip 2..."],
  "nutritionalInfo": {
    "carbs": "10g",
    "protein": "5g",
    "fat": "2g",
    "calories": 150
  }
}`

const mealPlanSchema = `{
  "totalDays": 7,
  "dailyCalories": 1800,
  "plan": [
    {
      "day": 1,
      "date": "Day 1",
      "meals": {
        "breakfast": { "name": "Meal name", "calories": 400, "time": "08:00", "glycemicIndex": "Low" }
      },
      "totalCalories": 1800
    }
  ],
  "tips": ["Tip 1...", "Tip 2..."]
}`

// Prompt is a rendered system/user message pair.
type Prompt struct {
	System string
	User   string
}

// recipeFields is a RecipeRequest with every default resolved.
type recipeFields struct {
	Calories             string
	MealType             string
	Servings             string
	CookingTime          string
	DietaryRestrictions  string
	Preferences          string
	CulturalPreference   string
	ReligiousRestriction string
	PreferredCuisine     string
	AvailableIngredients string
	AvoidIngredients     string
	HealthGoal           string
	SkillLevel           string
	Budget               string
	Ramadan              string
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func joinTags(tags []string) string {
	tags = types.UniqueTags(tags)
	if len(tags) == 0 {
		return defaultNone
	}
	return strings.Join(tags, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func resolveRecipe(req types.RecipeRequest) recipeFields {
	return recipeFields{
		Calories:             orDefault(req.Calories.String(), defaultAny),
		MealType:             orDefault(strings.ToLower(req.MealType), defaultAny),
		Servings:             orDefault(req.Servings.String(), defaultAny),
		CookingTime:          orDefault(req.CookingTime.String(), defaultAny),
		DietaryRestrictions:  joinTags(req.DietaryRestrictions),
		Preferences:          orDefault(req.Preferences, defaultNone),
		CulturalPreference:   orDefault(req.CulturalPreference, defaultNone),
		ReligiousRestriction: orDefault(req.ReligiousRestriction, defaultNone),
		PreferredCuisine:     orDefault(req.PreferredCuisine, defaultNone),
		AvailableIngredients: orDefault(req.AvailableIngredients, defaultAny),
		AvoidIngredients:     orDefault(req.AvoidIngredients, defaultNone),
		HealthGoal:           orDefault(req.HealthGoal, defaultHealthGoal),
		SkillLevel:           orDefault(req.SkillLevel, defaultAny),
		Budget:               orDefault(req.Budget, defaultAny),
		Ramadan:              yesNo(req.IsRamadan),
	}
}

// BuildRecipePrompt renders req into a prompt. Every field appears with its
// label in a fixed order. The structured variant adds the JSON schema the
// reply must follow.
func BuildRecipePrompt(req types.RecipeRequest, structured bool) Prompt {
	f := resolveRecipe(req)

	var b strings.Builder
	b.WriteString("Generate a diabetes-friendly recipe considering all user inputs below. ")
	b.WriteString("The recipe must be ethical, interpretable, clear, and specifically tailored to the user's health goals and cultural/religious needs. ")
	b.WriteString("Provide safe, accurate, and culturally appropriate recommendations.\n\n")
	b.WriteString("**User Inputs:**\n")

	for _, line := range [][2]string{
		{"Calories", f.Calories},
		{"Meal Type", f.MealType},
		{"Servings", f.Servings},
		{"Cooking Time", f.CookingTime},
		{"Dietary Restrictions", f.DietaryRestrictions},
		{"Preferences", f.Preferences},
		{"Cultural Preference", f.CulturalPreference},
		{"Religious Restriction", f.ReligiousRestriction},
		{"Preferred Cuisine", f.PreferredCuisine},
		{"Available Ingredients", f.AvailableIngredients},
		{"Ingredients to Avoid", f.AvoidIngredients},
		{"Health Goal", f.HealthGoal},
		{"Skill Level", f.SkillLevel},
		{"Budget", f.Budget},
		{"Ramadan Mode", f.Ramadan},
	} {
		fmt.Fprintf(&b, "- %s: %s\n", line[0], line[1])
	}

	if !structured {
		return Prompt{System: TextSystemPrompt, User: b.String()}
	}

	fmt.Fprintf(&b, "\nValid meal types: %s.\n", strings.Join(types.MealTypes(req.IsRamadan), ", "))
	b.WriteString("\nRespond ONLY with a valid JSON object in exactly the following format. Ensure the JSON is well-formed and contains no surrounding text:\n")
	b.WriteString(recipeSchema)
	b.WriteString("\n")

	return Prompt{System: StructuredSystemPrompt, User: b.String()}
}

// BuildMealPlanPrompt renders a meal plan request. Meal plans are always
// generated in structured mode.
func BuildMealPlanPrompt(req types.MealPlanRequest) Prompt {
	var b strings.Builder
	days := req.DayCount()

	fmt.Fprintf(&b, "Create a %d-day diabetes-friendly meal plan considering all user inputs below. ", days)
	b.WriteString("Balance carbohydrates across meals to keep blood sugar stable and favour low glycemic index foods.\n\n")
	b.WriteString("**User Inputs:**\n")
	fmt.Fprintf(&b, "- Daily Calories: %s\n", orDefault(req.DailyCalories.String(), defaultAny))
	fmt.Fprintf(&b, "- Days: %d\n", days)
	fmt.Fprintf(&b, "- Dietary Restrictions: %s\n", joinTags(req.DietaryRestrictions))
	fmt.Fprintf(&b, "- Preferences: %s\n", orDefault(req.Preferences, defaultNone))

	fmt.Fprintf(&b, "\nUse these meal types for each day: %s.\n", strings.Join(types.StandardMealTypes, ", "))
	b.WriteString("\nRespond ONLY with a valid JSON object in exactly the following format. Ensure the JSON is well-formed and contains no surrounding text:\n")
	b.WriteString(mealPlanSchema)
	b.WriteString("\n")

	return Prompt{System: StructuredSystemPrompt, User: b.String()}
}
