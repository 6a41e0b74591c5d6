package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Upstream provider presets. Both speak the OpenAI chat completions protocol.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"

	openAIBaseURL     = "https://api.openai.com/v1"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// PasswordResetURL is the page the reset mail links to; the token is appended as ?token=
	PasswordResetURL string

	LLM  LLMConfig
	SMTP SMTPConfig
}

// LLMConfig describes the upstream text-generation provider. It is read once at
// start-up and never mutated afterwards.
type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
	// Headers are sent with every upstream request (OpenRouter attribution headers).
	Headers map[string]string
}

// SMTPConfig holds outgoing mail settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env != Production {
		loadDotEnv()
	}

	cfg := &Config{Env: env}

	cfg.ServerHost = lookup("SERVER_HOST", "0.0.0.0")
	cfg.ServerPort = lookup("SERVER_PORT", "8080")
	cfg.LogLevel = lookup("LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(lookup("CORS_ORIGINS", "http://localhost:3000"))

	cfg.DBDriver = lookup("DB_DRIVER", "postgres")
	cfg.DBHost = lookup("DB_HOST", "localhost")
	cfg.DBPort = lookup("DB_PORT", "5432")
	cfg.DBUser = lookup("DB_USER", "postgres")
	cfg.DBPassword = lookup("DB_PASSWORD", "")
	cfg.DBName = lookup("DB_NAME", "diacare")
	cfg.DBSSLMode = lookup("DB_SSL_MODE", "disable")
	cfg.SQLitePath = lookup("SQLITE_PATH", "diacare.db")

	cfg.RedisHost = lookup("REDIS_HOST", "localhost")
	cfg.RedisPort = lookup("REDIS_PORT", "6379")
	cfg.RedisPassword = lookup("REDIS_PASSWORD", "")
	cfg.RedisURL = lookup("REDIS_URL", "")
	redisDB, err := strconv.Atoi(lookup("REDIS_DB", "0"))
	if err != nil {
		return nil, ValidationError{Field: "REDIS_DB", Message: "must be an integer"}
	}
	cfg.RedisDB = redisDB

	cfg.JWTSecret = lookup("JWT_SECRET", "")
	cfg.PasswordResetURL = lookup("PASSWORD_RESET_URL", "http://localhost:3000/reset-password")

	if err := loadLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("failed to load LLM configuration: %w", err)
	}
	if err := loadSMTPConfig(&cfg.SMTP); err != nil {
		return nil, fmt.Errorf("failed to load SMTP configuration: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadLLMConfig(llm *LLMConfig) error {
	llm.Provider = strings.ToLower(lookup("LLM_PROVIDER", ProviderOpenAI))

	apiKey := lookup("OPENAI_API_KEY", "")
	if apiKey == "" {
		apiKey = lookup("LLM_API_KEY", "")
	}
	if apiKey == "" {
		if keyFile := os.Getenv("LLM_API_KEY_FILE"); keyFile != "" {
			data, err := os.ReadFile(keyFile)
			if err != nil {
				return fmt.Errorf("failed to read API key file: %w", err)
			}
			apiKey = strings.TrimSpace(string(data))
		}
	}
	llm.APIKey = apiKey

	defaultURL := openAIBaseURL
	if llm.Provider == ProviderOpenRouter {
		defaultURL = openRouterBaseURL
	}
	llm.BaseURL = lookup("LLM_BASE_URL", defaultURL)
	llm.Model = lookup("LLM_MODEL", "gpt-4o-mini")

	temp, err := strconv.ParseFloat(lookup("LLM_TEMPERATURE", "0.7"), 64)
	if err != nil {
		return ValidationError{Field: "LLM_TEMPERATURE", Message: "must be a number"}
	}
	llm.Temperature = temp

	maxTokens, err := strconv.ParseInt(lookup("LLM_MAX_TOKENS", "2000"), 10, 64)
	if err != nil {
		return ValidationError{Field: "LLM_MAX_TOKENS", Message: "must be an integer"}
	}
	llm.MaxTokens = maxTokens

	llm.Headers = map[string]string{}
	if llm.Provider == ProviderOpenRouter {
		if site := lookup("LLM_SITE_URL", ""); site != "" {
			llm.Headers["HTTP-Referer"] = site
		}
		llm.Headers["X-Title"] = lookup("LLM_APP_NAME", "DiaCare")
	}

	return nil
}

func loadSMTPConfig(smtp *SMTPConfig) error {
	smtp.Host = lookup("SMTP_HOST", "")
	port, err := strconv.Atoi(lookup("SMTP_PORT", "587"))
	if err != nil {
		return ValidationError{Field: "SMTP_PORT", Message: "must be an integer"}
	}
	smtp.Port = port
	smtp.Username = lookup("SMTP_USERNAME", "")
	smtp.Password = lookup("SMTP_PASSWORD", "")
	smtp.From = lookup("EMAIL_FROM", "no-reply@diacare.app")
	smtp.FromName = lookup("EMAIL_FROM_NAME", "DiaCare")
	return nil
}

// lookup resolves a setting from the environment first, then from a Docker
// secret named after the lower-cased key, then falls back to def.
func lookup(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}
