package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/types"
)

// Activity factors applied to the BMR.
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

const defaultActivityFactor = 1.55

// CalculateBMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day,
// rounded to two decimals. Weight is in kg, height in cm. Zero is returned
// when any input is missing.
func CalculateBMR(sex string, weight, height float64, age int) float64 {
	if sex == "" || weight <= 0 || height <= 0 || age <= 0 {
		return 0
	}
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if strings.EqualFold(sex, "male") {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Round(bmr*100) / 100
}

// DailyCalories scales a BMR by the activity factor. Unknown levels count as
// moderate.
func DailyCalories(bmr float64, activityLevel string) int {
	if bmr <= 0 {
		return 0
	}
	factor, ok := activityFactors[strings.ToLower(activityLevel)]
	if !ok {
		factor = defaultActivityFactor
	}
	return int(math.Round(bmr * factor))
}

// applyEnergy recomputes the derived fields of p.
func applyEnergy(p *models.Profile) {
	p.BMR = CalculateBMR(p.Sex, p.Weight, p.Height, p.Age)
	p.DailyCalories = DailyCalories(p.BMR, p.ActivityLevel)
}

// ProfileView is a profile joined with its account.
type ProfileView struct {
	models.Profile
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileService handles user profile operations
type ProfileService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, log zerolog.Logger) *ProfileService {
	return &ProfileService{db: db, log: log.With().Str("component", "profile").Logger()}
}

// GetProfile retrieves a user's profile with up to date energy figures.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}

	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFound(err)
	}

	bmr, calories := profile.BMR, profile.DailyCalories
	applyEnergy(&profile)
	if bmr != profile.BMR || calories != profile.DailyCalories {
		if err := s.db.WithContext(ctx).Model(&profile).Updates(map[string]interface{}{
			"bmr":            profile.BMR,
			"daily_calories": profile.DailyCalories,
		}).Error; err != nil {
			return nil, err
		}
	}

	return &ProfileView{Profile: profile, Name: user.Name, Username: user.Username, Email: user.Email}, nil
}

// UpdateProfile applies the non-nil fields of req.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*ProfileView, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			return notFound(err)
		}

		if req.Name != nil {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("name", strings.TrimSpace(*req.Name)).Error; err != nil {
				return err
			}
		}
		if req.Phone != nil {
			profile.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Age != nil {
			profile.Age, _ = req.Age.Int()
		}
		if req.Weight != nil {
			profile.Weight, _ = req.Weight.Float()
		}
		if req.Height != nil {
			profile.Height, _ = req.Height.Float()
		}
		if req.Sex != nil {
			profile.Sex = strings.ToLower(*req.Sex)
		}
		if req.ActivityLevel != nil {
			profile.ActivityLevel = strings.ToLower(*req.ActivityLevel)
		}
		if req.DietaryRestrictions != nil {
			profile.DietaryRestrictions = types.UniqueTags(req.DietaryRestrictions)
		}

		applyEnergy(&profile)
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID.String()).Msg("profile updated")
	return s.GetProfile(ctx, userID)
}

// DeleteAccount removes the user together with everything they saved.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.SavedRecipe{}, &models.SavedMealPlan{}, &models.Profile{}} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.User{}, "id = ?", userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID.String()).Msg("account deleted")
	return nil
}

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
