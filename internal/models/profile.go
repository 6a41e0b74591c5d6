package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the health data used to derive calorie targets.
type Profile struct {
	ID                  uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID              uuid.UUID        `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	Phone               string           `gorm:"size:32" json:"phone"`
	Age                 int              `json:"age"`
	Weight              float64          `json:"weight"`
	Height              float64          `json:"height"`
	Sex                 string           `gorm:"size:16" json:"sex"`
	ActivityLevel       string           `gorm:"size:32" json:"activityLevel"`
	DietaryRestrictions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dietaryRestrictions"`
	BMR                 float64          `json:"bmr"`
	DailyCalories       int              `json:"dailyCalories"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}
