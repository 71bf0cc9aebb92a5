package generator

import (
	"context"
	"errors"
	"sync"
)

// ScriptedReply is one canned answer for a ScriptedClient.
type ScriptedReply struct {
	Content    string
	Confidence *float64
	Err        error
}

// ScriptedClient returns canned replies in FIFO order and records every
// request it receives. Once the script runs out it fails every call.
type ScriptedClient struct {
	mu      sync.Mutex
	model   string
	replies []ScriptedReply
	Calls   []LLMRequest
}

func NewScriptedClient(model string, replies ...ScriptedReply) *ScriptedClient {
	return &ScriptedClient{model: model, replies: replies}
}

func (s *ScriptedClient) ModelName() string {
	return s.model
}

func (s *ScriptedClient) Generate(_ context.Context, req LLMRequest) (*LLMResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Calls = append(s.Calls, req)
	if len(s.replies) == 0 {
		return nil, &ProviderError{Provider: "scripted", Err: errors.New("script exhausted")}
	}

	reply := s.replies[0]
	s.replies = s.replies[1:]
	if reply.Err != nil {
		return nil, reply.Err
	}
	return &LLMResponse{Content: reply.Content, Model: s.model, Confidence: reply.Confidence}, nil
}

// CallCount returns the number of Generate calls made so far.
func (s *ScriptedClient) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}

// Prompts returns the last user message of every recorded call.
func (s *ScriptedClient) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.Calls))
	for _, c := range s.Calls {
		if n := len(c.Messages); n > 0 {
			out = append(out, c.Messages[n-1].Content)
		}
	}
	return out
}
