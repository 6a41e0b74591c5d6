package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/types"
)

// MealPlanService stores the meal plans users keep.
type MealPlanService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewMealPlanService creates a MealPlanService.
func NewMealPlanService(db *gorm.DB, log zerolog.Logger) *MealPlanService {
	return &MealPlanService{db: db, log: log.With().Str("component", "meal_plans").Logger()}
}

// SaveMealPlan stores plan for userID. Fallback plans without days can be
// saved as long as they carry a description.
func (s *MealPlanService) SaveMealPlan(ctx context.Context, userID uuid.UUID, plan types.MealPlan) (*models.SavedMealPlan, error) {
	if len(plan.Plan) == 0 && plan.Description == "" {
		return nil, ErrEmptyMealPlan
	}

	days := len(plan.Plan)
	if n, ok := plan.TotalDays.Float(); ok && n > 0 {
		days = int(n)
	}
	calories := 0
	if n, ok := plan.DailyCalories.Float(); ok && n > 0 {
		calories = int(math.Round(n))
	}

	title := plan.Title
	if title == "" {
		title = types.FallbackMealPlanTitle
	}

	saved := models.SavedMealPlan{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		TotalDays:     days,
		DailyCalories: calories,
		MealPlan:      models.JSONB[types.MealPlan]{Data: plan},
	}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID.String()).Str("meal_plan_id", saved.ID.String()).Msg("meal plan saved")
	return &saved, nil
}

// ListMealPlans returns userID's plans, newest first.
func (s *MealPlanService) ListMealPlans(ctx context.Context, userID uuid.UUID) ([]models.SavedMealPlan, error) {
	plans := []models.SavedMealPlan{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// DeleteMealPlan removes one of userID's plans.
func (s *MealPlanService) DeleteMealPlan(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SavedMealPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountMealPlans returns how many plans userID saved.
func (s *MealPlanService) CountMealPlans(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.SavedMealPlan{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
