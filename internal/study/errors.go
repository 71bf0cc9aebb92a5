package study

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrStorageDisabled is returned by library operations on a Service built
	// without a repository.
	ErrStorageDisabled = errors.New("storage is not configured")
)

// ErrorKind classifies a failed generation for the HTTP layer.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindGatewayUnavailable
	KindParse
	KindEmptyResult
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindGatewayUnavailable:
		return "gateway_unavailable"
	case KindParse:
		return "parse"
	case KindEmptyResult:
		return "empty_result"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// PipelineError is the single error type the generation pipelines return.
// Message is safe to show to clients. Fallback, when set, is the
// placeholder content sent alongside the error.
type PipelineError struct {
	Kind     ErrorKind
	Message  string
	Fallback any
	Err      error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error { return e.Err }

// StatusCode maps the error kind onto an HTTP status.
func (e *PipelineError) StatusCode() int {
	if e.Kind == KindInvalidInput {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func invalidInput(msg string) *PipelineError {
	return &PipelineError{Kind: KindInvalidInput, Message: msg}
}
