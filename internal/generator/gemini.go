package generator

import (
	"context"
	"errors"
	"fmt"
	"math"

	"google.golang.org/genai"

	"github.com/studymate/backend/internal/config"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg config.ProviderConfig) (*GeminiClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

func (c *GeminiClient) ModelName() string {
	return c.model
}

func (c *GeminiClient) Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error) {
	gc := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens(req.MaxTokens)),
	}
	if req.System != "" {
		gc.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.System}}}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, buildGeminiContents(req.Messages), gc)
	if err != nil {
		return nil, geminiError(err)
	}

	out := &LLMResponse{
		Content: result.Text(),
		Model:   c.model,
	}
	if result.ModelVersion != "" {
		out.Model = result.ModelVersion
	}
	if result.UsageMetadata != nil {
		out.PromptTokens = int(result.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
	}
	if len(result.Candidates) > 0 {
		cand := result.Candidates[0]
		out.StopReason = string(cand.FinishReason)
		if cand.AvgLogprobs != 0 {
			// Mean token probability, in (0, 1].
			conf := math.Exp(cand.AvgLogprobs)
			out.Confidence = &conf
		}
	}
	return out, nil
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{Role: role, Parts: []*genai.Part{{Text: m.Content}}}
	}
	return out
}

func geminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: "gemini", StatusCode: apiErr.Code, Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &ProviderError{Provider: "gemini", Err: err}
}
