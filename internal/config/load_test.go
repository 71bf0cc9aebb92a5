package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.True(t, cfg.Server.Development())
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, ProviderMock, cfg.LLM.Provider)
	assert.Equal(t, 2, cfg.LLM.MaxAttempts)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STUDY_SERVER_PORT", "9090")
	t.Setenv("STUDY_SERVER_LOG_LEVEL", "debug")
	t.Setenv("STUDY_LLM_PROVIDER", "anthropic")
	t.Setenv("STUDY_LLM_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("STUDY_LLM_ANTHROPIC_MODEL", "claude-haiku-4-5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-haiku-4-5", cfg.LLM.Anthropic.Model)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad log level", map[string]string{"STUDY_SERVER_LOG_LEVEL": "verbose"}},
		{"bad port", map[string]string{"STUDY_SERVER_PORT": "70000"}},
		{"unknown provider", map[string]string{"STUDY_LLM_PROVIDER": "cohere"}},
		{"short secret", map[string]string{"STUDY_AUTH_JWT_SECRET": "too-short"}},
		{"anthropic without key", map[string]string{"STUDY_LLM_PROVIDER": "anthropic"}},
		{"gemini without key", map[string]string{"STUDY_LLM_PROVIDER": "gemini"}},
		{"dev secret in production", map[string]string{"STUDY_SERVER_ENV": "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLLMConfigValidate(t *testing.T) {
	assert.NoError(t, LLMConfig{Provider: ProviderMock}.Validate())
	assert.NoError(t, LLMConfig{Provider: ProviderOpenAI, OpenAI: ProviderConfig{BaseURL: "http://localhost:11434/v1"}}.Validate())
	assert.Error(t, LLMConfig{Provider: ProviderOpenAI}.Validate())
	assert.Error(t, LLMConfig{Provider: ProviderCLI}.Validate())
}
