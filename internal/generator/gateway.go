package generator

import (
	"context"
	"log/slog"
	"time"
)

// SystemPrompt frames every request sent through the Gateway.
const SystemPrompt = "You are StudyMate, an AI study assistant that helps students learn. " +
	"Follow the formatting instructions in each request exactly."

type GenerationOptions struct {
	MaxTokens int
}

type AIMetadata struct {
	Error          bool
	Model          string
	ProcessingTime *int64
	Confidence     *float64
}

// AIResponse is the gateway result. Message may be empty; callers treat
// Metadata.Error or an empty Message as the provider being unavailable.
type AIResponse struct {
	Message  string
	Metadata AIMetadata
}

// Responder is the single collaborator the study pipelines depend on.
type Responder interface {
	GenerateResponse(ctx context.Context, prompt string, history []Message, opts GenerationOptions) AIResponse
}

// Gateway adapts an LLMClient to Responder. It never returns an error:
// provider failures are logged and reported through Metadata.Error.
type Gateway struct {
	client LLMClient
	logger *slog.Logger
}

func NewGateway(client LLMClient, logger *slog.Logger) *Gateway {
	return &Gateway{client: client, logger: logger.With("component", "gateway")}
}

func (g *Gateway) ModelName() string {
	return g.client.ModelName()
}

func (g *Gateway) GenerateResponse(ctx context.Context, prompt string, history []Message, opts GenerationOptions) AIResponse {
	msgs := make([]Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: prompt})

	start := time.Now()
	resp, err := g.client.Generate(ctx, LLMRequest{
		System:    SystemPrompt,
		Messages:  msgs,
		MaxTokens: opts.MaxTokens,
	})
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		g.logger.ErrorContext(ctx, "AI generation failed",
			"model", g.client.ModelName(),
			"duration_ms", elapsed,
			"error", err,
		)
		return AIResponse{Metadata: AIMetadata{Error: true, Model: g.client.ModelName(), ProcessingTime: &elapsed}}
	}

	model := resp.Model
	if model == "" {
		model = g.client.ModelName()
	}
	g.logger.DebugContext(ctx, "AI generation complete",
		"model", model,
		"duration_ms", elapsed,
		"prompt_tokens", resp.PromptTokens,
		"output_tokens", resp.OutputTokens,
		"stop_reason", resp.StopReason,
	)

	return AIResponse{
		Message: resp.Content,
		Metadata: AIMetadata{
			Model:          model,
			ProcessingTime: &elapsed,
			Confidence:     resp.Confidence,
		},
	}
}
