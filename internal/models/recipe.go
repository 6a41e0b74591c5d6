package models

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/diacare/backend/internal/types"
)

// EmbeddingDimensions is the size of the recipe search vectors.
const EmbeddingDimensions = 64

// SavedRecipe is a generated recipe a user chose to keep.
type SavedRecipe struct {
	ID            uuid.UUID                    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID                    `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title         string                       `gorm:"size:255;not null" json:"title"`
	Description   string                       `gorm:"type:text" json:"description"`
	MealType      string                       `gorm:"size:32" json:"mealType"`
	GlycemicIndex string                       `gorm:"size:32" json:"glycemicIndex"`
	Recipe        JSONB[types.GeneratedRecipe] `gorm:"type:jsonb;not null" json:"recipe"`
	Embedding     pgvector.Vector              `gorm:"type:vector(64)" json:"-"`
	CreatedAt     time.Time                    `json:"createdAt"`
	UpdatedAt     time.Time                    `json:"updatedAt"`
}

// SavedMealPlan is a generated meal plan a user chose to keep.
type SavedMealPlan struct {
	ID            uuid.UUID             `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID             `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title         string                `gorm:"size:255" json:"title"`
	TotalDays     int                   `json:"totalDays"`
	DailyCalories int                   `json:"dailyCalories"`
	MealPlan      JSONB[types.MealPlan] `gorm:"type:jsonb;not null" json:"mealPlan"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
