package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/middleware"
	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

// MealPlanHandler serves saved meal plans.
type MealPlanHandler struct {
	plans service.IMealPlanService
	auth  service.IAuthService
	log   zerolog.Logger
}

// NewMealPlanHandler creates a MealPlanHandler.
func NewMealPlanHandler(plans service.IMealPlanService, auth service.IAuthService, log zerolog.Logger) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, auth: auth, log: log.With().Str("handler", "meal_plans").Logger()}
}

// RegisterRoutes registers the meal plan routes
func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plans")
	plans.Use(middleware.AuthMiddleware(h.auth))
	{
		plans.POST("", h.SaveMealPlan)
		plans.GET("", h.ListMealPlans)
		plans.DELETE("/:id", h.DeleteMealPlan)
	}
}

func (h *MealPlanHandler) SaveMealPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.SaveMealPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.plans.SaveMealPlan(c.Request.Context(), userID, req.MealPlan)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plans, err := h.plans.ListMealPlans(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mealPlans": plans})
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.plans.DeleteMealPlan(c.Request.Context(), userID, id); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
