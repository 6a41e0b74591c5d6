package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diacare/backend/internal/database"
	"github.com/diacare/backend/internal/middleware"
	"github.com/diacare/backend/internal/service"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(db *gorm.DB, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// RegisterRoutes registers the health routes
func (h *HealthHandler) RegisterRoutes(router gin.IRoutes) {
	router.GET("/health", h.HealthCheck)
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db != nil {
		if err := database.HealthCheck(c.Request.Context(), h.db); err != nil {
			h.log.Error().Err(err).Msg("database health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "DiaCare API is running",
	})
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, middleware.ErrorResponse{Error: msg})
}

// bindJSON decodes the body into req and answers 400 when it is invalid.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		errorJSON(c, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// validationMessage renders binding errors for clients.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fieldName(fe)
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "email":
			msgs = append(msgs, field+" must be a valid email address")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "mealtype":
			msgs = append(msgs, "mealType is not valid for the selected Ramadan mode")
		case "gt":
			msgs = append(msgs, field+" must be a positive number")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// fieldName returns the JSON-style name of the failing field.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "field"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

// currentUserID returns the id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "not found")
		return uuid.Nil, false
	}
	return id, true
}

// serviceError maps sentinel errors to responses. Anything unknown is
// handed to middleware.ErrorHandler.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
		errorJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		errorJSON(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidToken):
		errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmptyRecipe), errors.Is(err, service.ErrEmptyMealPlan):
		errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		// multi-byte passwords can pass the max=72 rune check
		errorJSON(c, http.StatusBadRequest, "password must be at most 72 bytes")
	default:
		_ = c.Error(err)
	}
}
