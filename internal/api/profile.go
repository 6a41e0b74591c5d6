package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/middleware"
	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

// ProfileHandler serves the current user's profile.
type ProfileHandler struct {
	profiles service.IProfileService
	auth     service.IAuthService
	log      zerolog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles service.IProfileService, auth service.IAuthService, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, auth: auth, log: log.With().Str("handler", "profile").Logger()}
}

// RegisterRoutes registers the profile routes
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.auth))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteAccount)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the account and ends the session.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.profiles.DeleteAccount(c.Request.Context(), userID); err != nil {
		serviceError(c, err)
		return
	}
	if claims, ok := c.MustGet(middleware.ContextClaims).(*types.TokenClaims); ok {
		if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
			h.log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to revoke session of deleted account")
		}
	}
	c.Status(http.StatusNoContent)
}
