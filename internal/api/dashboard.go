package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/middleware"
	"github.com/diacare/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	dashboard service.IDashboardService
	auth      service.IAuthService
	log       zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard service.IDashboardService, auth service.IAuthService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, auth: auth, log: log.With().Str("handler", "dashboard").Logger()}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", middleware.AuthMiddleware(h.auth), h.GetDashboard)
}

// GetDashboard returns the account summary of the current user.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboard.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
