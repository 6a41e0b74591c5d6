package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/diacare/backend/internal/middleware"
	"github.com/diacare/backend/internal/models"
	"github.com/diacare/backend/internal/service"
	"github.com/diacare/backend/internal/types"
)

// AuthHandler serves account and session endpoints.
type AuthHandler struct {
	auth service.IAuthService
	log  zerolog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth service.IAuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log.With().Str("handler", "auth").Logger()}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(h.auth))
		protected.POST("/logout", h.Logout)
		protected.PUT("/password", h.ChangePassword)
	}
}

// Register creates an account and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tokenResponse(user, token))
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse(user, token))
}

// Logout revokes the presented token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := c.MustGet(middleware.ContextClaims).(*types.TokenClaims)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), claims); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// ForgotPassword always answers 200 so callers cannot probe for accounts.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req types.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("password reset request failed")
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset link has been sent."})
}

// ResetPassword sets a new password using a mailed token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req types.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// ChangePassword updates the password of the current user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), userID, req.Password); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func tokenResponse(user *models.User, token string) types.TokenResponse {
	return types.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(service.SessionTTL).Unix(),
		User:      user,
	}
}
