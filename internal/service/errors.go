package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
)

// Sentinel errors returned by the services.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmptyRecipe        = errors.New("recipe has no title")
	ErrEmptyMealPlan      = errors.New("meal plan has no days")
)

// GenerationKind classifies a failed upstream call.
type GenerationKind string

const (
	KindQuotaExceeded    GenerationKind = "quota_exceeded"
	KindRateLimited      GenerationKind = "rate_limited"
	KindGenerationFailed GenerationKind = "generation_failed"
)

// Messages shown to callers; the cause is only logged.
const (
	msgQuotaExceeded    = "OpenAI quota exceeded. Please check your plan or billing."
	msgRateLimited      = "Too many requests to OpenAI. Try again later."
	msgGenerationFailed = "Failed to generate recipe. Please try again later."
	msgMealPlanFailed   = "Failed to generate meal plan. Please try again later."
)

// GenerationError is returned by the gateway when the provider call fails.
type GenerationError struct {
	Kind    GenerationKind
	Status  int
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// classifyProviderError maps a provider failure to one of the outward kinds.
// genericMsg is used for everything that is neither quota nor rate limiting.
func classifyProviderError(err error, genericMsg string) *GenerationError {
	var gerr *GenerationError
	if errors.As(err, &gerr) {
		return gerr
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		if isQuotaError(apierr) {
			return &GenerationError{Kind: KindQuotaExceeded, Status: http.StatusTooManyRequests, Message: msgQuotaExceeded, Err: err}
		}
		if apierr.StatusCode == http.StatusTooManyRequests {
			return &GenerationError{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: msgRateLimited, Err: err}
		}
	}

	return &GenerationError{Kind: KindGenerationFailed, Status: http.StatusInternalServerError, Message: genericMsg, Err: err}
}

const quotaCode = "insufficient_quota"

func isQuotaError(apierr *openai.Error) bool {
	if apierr.Code == quotaCode || apierr.Type == quotaCode {
		return true
	}
	// Some proxies nest the provider error, so fall back to the raw body.
	return strings.Contains(apierr.RawJSON(), `"`+quotaCode+`"`)
}
