package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/middleware"
	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

// RecipeHandler serves saved recipes.
type RecipeHandler struct {
	recipes service.IRecipeService
	auth    service.IAuthService
	log     zerolog.Logger
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(recipes service.IRecipeService, auth service.IAuthService, log zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, auth: auth, log: log.With().Str("handler", "recipes").Logger()}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.auth))
	{
		recipes.POST("", h.SaveRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.SaveRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.recipes.SaveRecipe(c.Request.Context(), userID, req.Recipe, req.MealType)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.SearchRecipes(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
