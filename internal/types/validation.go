package types

import (
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the cross-field rules for request types on v.
func RegisterValidators(v *validator.Validate) {
	v.RegisterStructValidation(validateRecipeRequest, RecipeRequest{})
	v.RegisterStructValidation(validateMealPlanRequest, MealPlanRequest{})
}

func validateRecipeRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(RecipeRequest)

	if req.MealType != "" && !ValidMealType(req.MealType, req.IsRamadan) {
		sl.ReportError(req.MealType, "mealType", "MealType", "mealtype", "")
	}
	if req.Calories != "" {
		if n, ok := req.Calories.Float(); !ok || n <= 0 {
			sl.ReportError(req.Calories, "calories", "Calories", "gt", "0")
		}
	}
	if req.Servings != "" {
		if n, ok := req.Servings.Int(); !ok || n <= 0 {
			sl.ReportError(req.Servings, "servings", "Servings", "gt", "0")
		}
	}
}

func validateMealPlanRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(MealPlanRequest)

	if req.DailyCalories != "" {
		if n, ok := req.DailyCalories.Float(); !ok || n <= 0 {
			sl.ReportError(req.DailyCalories, "dailyCalories", "DailyCalories", "gt", "0")
		}
	}
	if req.Days != "" {
		if n, ok := req.Days.Int(); !ok || n <= 0 {
			sl.ReportError(req.Days, "days", "Days", "gt", "0")
		}
	}
}
