package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/testhelpers"
	"github.com/diacare/backend/internal/types"
)

func TestMealPlanService(t *testing.T) {
	ctx := context.Background()
	db := testhelpers.SetupTestDatabase(t)
	plans := service.NewMealPlanService(db, zerolog.Nop())
	owner := uuid.New()

	parsed := types.MealPlan{
		TotalDays:     types.NumberAmount("2"),
		DailyCalories: types.NumberAmount("1800"),
		Plan: []types.DayPlan{
			{Day: types.NumberAmount("1"), Meals: map[string]types.PlannedMeal{"breakfast": {Name: "Oats"}}},
			{Day: types.NumberAmount("2"), Meals: map[string]types.PlannedMeal{"lunch": {Name: "Dal"}}},
		},
	}

	t.Run("parsed plan", func(t *testing.T) {
		saved, err := plans.SaveMealPlan(ctx, owner, parsed)
		require.NoError(t, err)
		assert.Equal(t, types.FallbackMealPlanTitle, saved.Title)
		assert.Equal(t, 2, saved.TotalDays)
		assert.Equal(t, 1800, saved.DailyCalories)
	})

	t.Run("fallback plan", func(t *testing.T) {
		fallback := types.FallbackMealPlan("Day 1: oats...", 5, "1500")
		saved, err := plans.SaveMealPlan(ctx, owner, fallback.MealPlan)
		require.NoError(t, err)
		assert.Equal(t, 5, saved.TotalDays)
		assert.Equal(t, 1500, saved.DailyCalories)
		assert.Equal(t, "Day 1: oats...", saved.MealPlan.Data.Description)
	})

	t.Run("empty plan", func(t *testing.T) {
		_, err := plans.SaveMealPlan(ctx, owner, types.MealPlan{})
		assert.ErrorIs(t, err, service.ErrEmptyMealPlan)
	})

	t.Run("list count delete", func(t *testing.T) {
		list, err := plans.ListMealPlans(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 2)

		n, err := plans.CountMealPlans(ctx, owner)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		assert.ErrorIs(t, plans.DeleteMealPlan(ctx, uuid.New(), list[0].ID), service.ErrNotFound)
		require.NoError(t, plans.DeleteMealPlan(ctx, owner, list[0].ID))

		n, err = plans.CountMealPlans(ctx, owner)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}
