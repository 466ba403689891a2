package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/outreach-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Handler timeout must outlive LLM_TIMEOUT, write timeout must outlive both.
	ServerReadTimeout    time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	ServerHandlerTimeout time.Duration `env:"SERVER_HANDLER_TIMEOUT" envDefault:"130s"`
	ServerWriteTimeout   time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"140s"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// Completion provider
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// User / organization context directory
	ContextCfg ContextConfig `envPrefix:"CONTEXT_"`

	// Chat endpoint throttling, disabled when RPS is 0
	ChatRateLimitCfg RateLimitConfig `envPrefix:"CHAT_RATE_LIMIT_"`

	// unioffice metered API key, DOCX export fails without it
	DocxLicenseKey string `env:"UNIDOC_LICENSE_API_KEY"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string `env:"COMPLETIONS_ENDPOINT" envDefault:"/chat/completions"`
	Model               string `env:"MODEL" envDefault:"gpt-4-turbo-preview"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"90s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com/v1"`
}

// ContextConfig selects the user/organization directory. An empty File
// means the built-in static records are used.
type ContextConfig struct {
	File     string        `env:"FILE"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	Watch    bool          `env:"WATCH" envDefault:"false"`
}

type RateLimitConfig struct {
	RPS   float64 `env:"RPS" envDefault:"0"`
	Burst int     `env:"BURST" envDefault:"5"`
}

// legacyTokenEnv is read when LLM_TOKEN is not set.
const legacyTokenEnv = "OPENAI_API_KEY"

// LoadConfig reads .env.<environment> if present and then the process environment.
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if cfg.LLMConnectorCfg.Token == "" {
		cfg.LLMConnectorCfg.Token = os.Getenv(legacyTokenEnv)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the environment is a local one.
func (c *Config) IsDevelopment() bool {
	switch c.Environment {
	case "local", "dev", "development":
		return true
	default:
		return false
	}
}

func validateConfig(cfg *Config) error {
	var errors []string

	if !cfg.EnableMocks && cfg.LLMConnectorCfg.Token == "" {
		errors = append(errors, fmt.Sprintf("LLM_TOKEN (or %s) is required unless ENABLE_MOCKS is set", legacyTokenEnv))
	}

	if cfg.LLMConnectorCfg.Model == "" {
		errors = append(errors, "LLM_MODEL must not be empty")
	}

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.DBConnectRetry.Attempts < 1 {
		errors = append(errors, fmt.Sprintf("DB_CONNECT_RETRY_ATTEMPTS must be at least 1, got %d", cfg.DBConnectRetry.Attempts))
	}

	if cfg.ServerWriteTimeout < cfg.ServerHandlerTimeout {
		errors = append(errors, fmt.Sprintf("SERVER_WRITE_TIMEOUT(%s) must not be shorter than SERVER_HANDLER_TIMEOUT(%s)", cfg.ServerWriteTimeout, cfg.ServerHandlerTimeout))
	}

	if cfg.ChatRateLimitCfg.RPS < 0 {
		errors = append(errors, fmt.Sprintf("CHAT_RATE_LIMIT_RPS must not be negative, got %v", cfg.ChatRateLimitCfg.RPS))
	}

	if cfg.ChatRateLimitCfg.RPS > 0 && cfg.ChatRateLimitCfg.Burst < 1 {
		errors = append(errors, fmt.Sprintf("CHAT_RATE_LIMIT_BURST must be at least 1, got %d", cfg.ChatRateLimitCfg.Burst))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
