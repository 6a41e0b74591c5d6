package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/types"
)

const searchLimit = 20

// likeEscaper makes LIKE wildcards in a search query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// RecipeService stores the recipes users keep.
type RecipeService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, log zerolog.Logger) *RecipeService {
	return &RecipeService{db: db, log: log.With().Str("component", "recipes").Logger()}
}

// SaveRecipe stores recipe for userID.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID uuid.UUID, recipe types.GeneratedRecipe, mealType string) (*models.SavedRecipe, error) {
	if strings.TrimSpace(recipe.Title) == "" {
		return nil, ErrEmptyRecipe
	}

	mealType = strings.ToLower(strings.TrimSpace(mealType))
	saved := models.SavedRecipe{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         strings.TrimSpace(recipe.Title),
		Description:   recipe.Description,
		MealType:      mealType,
		GlycemicIndex: recipe.GlycemicIndex,
		Recipe:        models.JSONB[types.GeneratedRecipe]{Data: recipe},
		Embedding:     GenerateEmbedding(recipeText(recipe, mealType)),
	}
	if err := s.db.WithContext(ctx).Create(&saved).Error; err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID.String()).Str("recipe_id", saved.ID.String()).Msg("recipe saved")
	return &saved, nil
}

// GetRecipe returns one of userID's recipes. Recipes of other users are
// reported as not found.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*models.SavedRecipe, error) {
	var recipe models.SavedRecipe
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
		return nil, notFound(err)
	}
	return &recipe, nil
}

// ListRecipes returns userID's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.SavedRecipe, error) {
	recipes := []models.SavedRecipe{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// DeleteRecipe removes one of userID's recipes.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.SavedRecipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchRecipes finds userID's recipes matching query. On Postgres results are
// ranked by embedding distance; other databases use a keyword match.
func (s *RecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]models.SavedRecipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListRecipes(ctx, userID)
	}

	recipes := []models.SavedRecipe{}
	db := s.db.WithContext(ctx).Where("user_id = ?", userID)
	like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	if s.db.Dialector.Name() == "postgres" {
		vec := GenerateEmbedding(query)
		db = db.Where(`embedding <=> ? < ? OR LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, vec, 0.8, like, like).
			Order(gorm.Expr("embedding <=> ?", vec))
	} else {
		db = db.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(meal_type) LIKE ? ESCAPE '\'`, like, like, like).
			Order("created_at DESC")
	}

	if err := db.Limit(searchLimit).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountRecipes returns how many recipes userID saved.
func (s *RecipeService) CountRecipes(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
