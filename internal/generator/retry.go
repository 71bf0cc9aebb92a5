package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type retryClient struct {
	inner     LLMClient
	attempts  int
	baseDelay time.Duration
	logger    *slog.Logger
}

// WithRetry repeats failed Generate calls up to attempts times in total,
// doubling the delay each time. Context cancellation and non-retryable
// ProviderErrors stop immediately.
func WithRetry(inner LLMClient, attempts int, baseDelay time.Duration, logger *slog.Logger) LLMClient {
	if attempts < 1 {
		attempts = 1
	}
	return &retryClient{inner: inner, attempts: attempts, baseDelay: baseDelay, logger: logger}
}

func (c *retryClient) ModelName() string {
	return c.inner.ModelName()
}

func (c *retryClient) Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error) {
	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			wait := c.baseDelay * time.Duration(1<<uint(attempt-1))
			c.logger.Warn("retrying LLM call", "attempt", attempt+1, "wait", wait, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		resp, err := c.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("LLM call failed after %d attempts: %w", c.attempts, lastErr)
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable()
	}
	return true
}
