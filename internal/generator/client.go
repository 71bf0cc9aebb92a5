package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/studymate/backend/internal/config"
)

// DefaultMaxTokens applies when a request leaves MaxTokens at zero.
const DefaultMaxTokens = 2048

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// LLMRequest is a provider-neutral completion request. Messages holds the
// conversation in order and must end with the user turn being answered.
type LLMRequest struct {
	System    string
	Messages  []Message
	MaxTokens int
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	Model        string
	PromptTokens int
	OutputTokens int
	StopReason   string
	// Confidence is set only by providers that report a likelihood score.
	Confidence *float64
}

// LLMClient is the interface every provider adapter satisfies.
type LLMClient interface {
	Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error)
	ModelName() string
}

// NewClient builds the configured provider, wrapped with retries for the
// network-backed ones.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (LLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	logger = logger.With("component", "llm", "provider", cfg.Provider)

	var (
		client LLMClient
		err    error
	)
	switch cfg.Provider {
	case config.ProviderAnthropic:
		client = NewAnthropicClient(cfg.Anthropic)
	case config.ProviderOpenAI:
		client = NewOpenAIClient(cfg.OpenAI)
	case config.ProviderGemini:
		client, err = NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
	case config.ProviderCLI:
		logger.Info("generator using Claude CLI (local plan)", "path", cfg.CLIPath)
		return NewCLIClient(cfg.CLIPath), nil
	case config.ProviderMock:
		logger.Info("generator using mock data")
		return NewMockClient(), nil
	}

	logger.Info("generator using provider API", "model", client.ModelName())
	return WithRetry(client, cfg.MaxAttempts, time.Second, logger), nil
}

func maxTokens(n int) int {
	if n <= 0 {
		return DefaultMaxTokens
	}
	return n
}
