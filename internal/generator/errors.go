package generator

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrParse means no JSON object could be decoded from the model output.
	ErrParse = errors.New("failed to parse generated flashcards")
	// ErrEmptyResult means the decoded object held no usable flashcards list.
	ErrEmptyResult = errors.New("no valid flashcards generated")
	// ErrGatewayUnavailable means the gateway flagged an error or returned no text.
	ErrGatewayUnavailable = errors.New("AI service unavailable")
	ErrInvalidConfig      = errors.New("invalid llm configuration")
)

// ProviderError wraps a failed provider call with the HTTP status it carried,
// when there was one.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Retryable reports whether the call may succeed if repeated: rate limits,
// server errors and transport failures with no status.
func (e *ProviderError) Retryable() bool {
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}
