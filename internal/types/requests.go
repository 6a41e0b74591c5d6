package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number. The recipe form
// posts numeric fields as strings while API clients tend to send numbers.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*f = FlexString(strings.TrimSpace(str))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = FlexString(num.String())
	return nil
}

// String returns the raw value.
func (f FlexString) String() string {
	return string(f)
}

// Int parses the value as a base-10 integer.
func (f FlexString) Int() (int, bool) {
	n, err := strconv.Atoi(string(f))
	return n, err == nil
}

// Float parses the value as a number.
func (f FlexString) Float() (float64, bool) {
	n, err := strconv.ParseFloat(string(f), 64)
	return n, err == nil
}

// Meal types accepted by the recipe endpoints.
var (
	StandardMealTypes = []string{"breakfast", "lunch", "dinner", "snack"}
	RamadanMealTypes  = []string{"suhoor", "iftar"}
)

// MealTypes returns the meal types valid for the given Ramadan flag.
func MealTypes(isRamadan bool) []string {
	if isRamadan {
		return RamadanMealTypes
	}
	return StandardMealTypes
}

// ValidMealType reports whether mealType is allowed for the Ramadan flag.
// Matching is case-insensitive.
func ValidMealType(mealType string, isRamadan bool) bool {
	mealType = strings.ToLower(strings.TrimSpace(mealType))
	for _, m := range MealTypes(isRamadan) {
		if m == mealType {
			return true
		}
	}
	return false
}

// RecipeRequest is the body of the recipe generation endpoints. Only Calories
// and MealType are required; every other field has a prompt default.
type RecipeRequest struct {
	Calories             FlexString `json:"calories" binding:"required"`
	MealType             string     `json:"mealType" binding:"required"`
	Servings             FlexString `json:"servings"`
	CookingTime          FlexString `json:"cookingTime"`
	DietaryRestrictions  []string   `json:"dietaryRestrictions"`
	Preferences          string     `json:"preferences"`
	CulturalPreference   string     `json:"culturalPreference"`
	ReligiousRestriction string     `json:"religiousRestriction"`
	PreferredCuisine     string     `json:"preferredCuisine"`
	AvailableIngredients string     `json:"availableIngredients"`
	AvoidIngredients     string     `json:"avoidIngredients"`
	HealthGoal           string     `json:"healthGoal"`
	SkillLevel           string     `json:"skillLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	Budget               string     `json:"budget" binding:"omitempty,oneof=low medium high"`
	IsRamadan            bool       `json:"isRamadan"`
}

// Meal plan length bounds.
const (
	DefaultMealPlanDays = 7
	MaxMealPlanDays     = 14
)

// MealPlanRequest is the body of the meal plan endpoint.
type MealPlanRequest struct {
	DailyCalories       FlexString `json:"dailyCalories" binding:"required"`
	DietaryRestrictions []string   `json:"dietaryRestrictions"`
	Preferences         string     `json:"preferences"`
	Days                FlexString `json:"days"`
}

// DayCount returns the requested number of days, defaulting to
// DefaultMealPlanDays and capped at MaxMealPlanDays.
func (r MealPlanRequest) DayCount() int {
	n, ok := r.Days.Int()
	switch {
	case !ok || n <= 0:
		return DefaultMealPlanDays
	case n > MaxMealPlanDays:
		return MaxMealPlanDays
	}
	return n
}

// UniqueTags trims tags, drops empties and duplicates (case-insensitive) and
// keeps first-seen order.
func UniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name          string     `json:"name" binding:"required"`
	Username      string     `json:"username" binding:"required,min=3,max=50"`
	Email         string     `json:"email" binding:"required,email"`
	Password      string     `json:"password" binding:"required,min=6,max=72"`
	Phone         string     `json:"phone"`
	Age           FlexString `json:"age"`
	Weight        FlexString `json:"weight"`
	Height        FlexString `json:"height"`
	Sex           string     `json:"sex" binding:"omitempty,oneof=male female"`
	ActivityLevel string     `json:"activityLevel"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// ChangePasswordRequest updates the password of the logged-in user
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UpdateProfileRequest represents a request to update a user's profile.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	Name                *string     `json:"name,omitempty"`
	Phone               *string     `json:"phone,omitempty"`
	Age                 *FlexString `json:"age,omitempty"`
	Weight              *FlexString `json:"weight,omitempty"`
	Height              *FlexString `json:"height,omitempty"`
	Sex                 *string     `json:"sex,omitempty" binding:"omitempty,oneof=male female"`
	ActivityLevel       *string     `json:"activityLevel,omitempty"`
	DietaryRestrictions []string    `json:"dietaryRestrictions,omitempty"`
}

// SaveRecipeRequest stores a generated recipe for the current user
type SaveRecipeRequest struct {
	Recipe   GeneratedRecipe `json:"recipe"`
	MealType string          `json:"mealType"`
}

// SaveMealPlanRequest stores a generated meal plan for the current user
type SaveMealPlanRequest struct {
	MealPlan MealPlan `json:"mealPlan"`
}
