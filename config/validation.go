package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the loaded configuration and reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if cfg.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "is required"})
	} else if cfg.Env == Production && len(cfg.JWTSecret) < 32 {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be at least 32 characters in production"})
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
			errs = append(errs, ValidationError{Field: "DB_HOST", Message: "host, port and name are required for postgres"})
		}
		if cfg.DBPassword == "" && cfg.Env != Development {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "is required"})
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{Field: "SQLITE_PATH", Message: "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	switch cfg.LLM.Provider {
	case ProviderOpenAI, ProviderOpenRouter:
	default:
		errs = append(errs, ValidationError{Field: "LLM_PROVIDER", Message: fmt.Sprintf("unsupported provider %q", cfg.LLM.Provider)})
	}
	if cfg.LLM.APIKey == "" {
		errs = append(errs, ValidationError{Field: "OPENAI_API_KEY", Message: "OPENAI_API_KEY, LLM_API_KEY or LLM_API_KEY_FILE must be set"})
	}
	if cfg.LLM.Model == "" {
		errs = append(errs, ValidationError{Field: "LLM_MODEL", Message: "is required"})
	}
	if cfg.LLM.MaxTokens <= 0 {
		errs = append(errs, ValidationError{Field: "LLM_MAX_TOKENS", Message: "must be positive"})
	}

	return errors.Join(errs...)
}
