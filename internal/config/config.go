// Package config loads application settings from config.yaml, a .env file and
// STUDY_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// LLM provider names accepted by llm.provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderCLI       = "cli"
	ProviderMock      = "mock"
)

// DevJWTSecret is only accepted outside production.
const DevJWTSecret = "studymate-dev-secret-change-me-in-production"

type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Env             string        `mapstructure:"env" validate:"required,oneof=development production"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" validate:"required,min=1"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Development reports whether diagnostic error details may be exposed to clients.
func (s ServerConfig) Development() bool {
	return s.Env == EnvDevelopment
}

type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

type LLMConfig struct {
	Provider    string         `mapstructure:"provider" validate:"required,oneof=anthropic openai gemini cli mock"`
	MaxAttempts int            `mapstructure:"max_attempts" validate:"gte=1,lte=5"`
	Anthropic   ProviderConfig `mapstructure:"anthropic"`
	OpenAI      ProviderConfig `mapstructure:"openai"`
	Gemini      ProviderConfig `mapstructure:"gemini"`
	CLIPath     string         `mapstructure:"cli_path"`
}

type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Validate checks the provider-specific rules struct tags cannot express.
func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return errors.New("llm.anthropic.api_key is required for the anthropic provider")
		}
	case ProviderOpenAI:
		// OpenAI-compatible local servers (ollama, llama.cpp) run without a key.
		if c.OpenAI.APIKey == "" && c.OpenAI.BaseURL == "" {
			return errors.New("llm.openai.api_key or llm.openai.base_url is required for the openai provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return errors.New("llm.gemini.api_key is required for the gemini provider")
		}
	case ProviderCLI:
		if c.CLIPath == "" {
			return errors.New("llm.cli_path is required for the cli provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown llm provider %q", c.Provider)
	}
	return nil
}
