package types

import (
	"encoding/json"
	"strconv"
)

// PlannedMeal is one meal slot in a plan day.
type PlannedMeal struct {
	Name          string `json:"name"`
	Calories      Amount `json:"calories,omitempty"`
	Time          string `json:"time,omitempty"`
	GlycemicIndex string `json:"glycemicIndex,omitempty"`
}

// DayPlan holds the meals of one day keyed by meal type.
type DayPlan struct {
	Day           Amount                 `json:"day,omitempty"`
	Date          string                 `json:"date,omitempty"`
	Meals         map[string]PlannedMeal `json:"meals,omitempty"`
	TotalCalories Amount                 `json:"totalCalories,omitempty"`
}

// MealPlan is the structured multi-day plan returned by the model. Title and
// Description are only set on the fallback shape.
type MealPlan struct {
	Title         string    `json:"title,omitempty"`
	Description   string    `json:"description,omitempty"`
	TotalDays     Amount    `json:"totalDays,omitempty"`
	DailyCalories Amount    `json:"dailyCalories,omitempty"`
	Plan          []DayPlan `json:"plan,omitempty"`
	Tips          []string  `json:"tips,omitempty"`
}

// MealPlanResult is the outcome of a meal plan generation. As with
// RecipeResult, Raw is the wire shape of a parsed plan.
type MealPlanResult struct {
	Kind     ResultKind
	MealPlan MealPlan
	Raw      json.RawMessage
}

// ParsedMealPlan wraps a decoded plan together with its original JSON.
func ParsedMealPlan(raw json.RawMessage, p MealPlan) MealPlanResult {
	return MealPlanResult{Kind: ResultParsed, MealPlan: p, Raw: raw}
}

// FallbackMealPlan wraps an unparseable reply, echoing the requested size.
func FallbackMealPlan(raw string, days int, dailyCalories string) MealPlanResult {
	return MealPlanResult{
		Kind: ResultFallback,
		MealPlan: MealPlan{
			Title:         FallbackMealPlanTitle,
			Description:   raw,
			TotalDays:     NumberAmount(strconv.Itoa(days)),
			DailyCalories: NumberAmount(dailyCalories),
		},
	}
}

// MarshalJSON encodes the model's object as received, or the fallback plan.
func (r MealPlanResult) MarshalJSON() ([]byte, error) {
	if r.Kind == ResultParsed && len(r.Raw) > 0 {
		return r.Raw, nil
	}
	return json.Marshal(r.MealPlan)
}
