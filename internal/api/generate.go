package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

// Generic failure bodies for errors outside the generation taxonomy.
const (
	recipeFailedMsg   = "Failed to generate recipe. Please try again later."
	mealPlanFailedMsg = "Failed to generate meal plan. Please try again later."
)

// GenerationHandler serves the recipe and meal plan generation endpoints.
type GenerationHandler struct {
	generator service.IGenerationService
	log       zerolog.Logger
}

// NewGenerationHandler creates a GenerationHandler.
func NewGenerationHandler(generator service.IGenerationService, log zerolog.Logger) *GenerationHandler {
	return &GenerationHandler{generator: generator, log: log.With().Str("handler", "generation").Logger()}
}

// RegisterRoutes registers the generation routes. They do not require a
// session.
func (h *GenerationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate-recipe", h.GenerateRecipe)
	router.POST("/generate-recipe/text", h.GenerateRecipeText)
	router.POST("/generate-meal-plan", h.GenerateMealPlan)
}

// GenerateRecipe returns a structured recipe.
func (h *GenerationHandler) GenerateRecipe(c *gin.Context) {
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.generator.GenerateRecipe(c.Request.Context(), req)
	if err != nil {
		h.generationError(c, err, recipeFailedMsg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": result})
}

// GenerateRecipeText returns the model's recipe as plain text.
func (h *GenerationHandler) GenerateRecipeText(c *gin.Context) {
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	text, err := h.generator.GenerateRecipeText(c.Request.Context(), req)
	if err != nil {
		h.generationError(c, err, recipeFailedMsg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": text})
}

// GenerateMealPlan returns a structured multi-day plan.
func (h *GenerationHandler) GenerateMealPlan(c *gin.Context) {
	var req types.MealPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.generator.GenerateMealPlan(c.Request.Context(), req)
	if err != nil {
		h.generationError(c, err, mealPlanFailedMsg)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlan": result})
}

// generationError answers with the classified status and message. The cause
// is logged and never sent to the caller.
func (h *GenerationHandler) generationError(c *gin.Context, err error, fallbackMsg string) {
	var genErr *service.GenerationError
	if errors.As(err, &genErr) {
		h.log.Error().Err(err).Str("kind", string(genErr.Kind)).Int("status", genErr.Status).Msg("generation failed")
		errorJSON(c, genErr.Status, genErr.Message)
		return
	}
	h.log.Error().Err(err).Msg("generation failed")
	errorJSON(c, http.StatusInternalServerError, fallbackMsg)
}
