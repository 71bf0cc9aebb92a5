package generator

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CLIClient shells out to the claude CLI for local dev generation.
// Uses your existing Claude plan, so no API key is needed.
type CLIClient struct {
	cliPath string
}

func NewCLIClient(cliPath string) *CLIClient {
	return &CLIClient{cliPath: cliPath}
}

func (c *CLIClient) ModelName() string {
	return "claude-cli"
}

func (c *CLIClient) Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error) {
	args := []string{"--print", "--output-format", "text", "--max-turns", "1"}
	if req.System != "" {
		args = append(args, "--system-prompt", req.System)
	}
	cmd := exec.CommandContext(ctx, c.cliPath, args...)
	cmd.Stdin = strings.NewReader(renderTranscript(req.Messages))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ProviderError{
			Provider: "claude-cli",
			Err:      fmt.Errorf("%w\nstderr: %s", err, strings.TrimSpace(stderr.String())),
		}
	}

	return &LLMResponse{
		Content: strings.TrimSpace(stdout.String()),
		Model:   c.ModelName(),
	}, nil
}

// renderTranscript flattens history into one stdin prompt. A single user
// message is passed through unchanged.
func renderTranscript(msgs []Message) string {
	if len(msgs) == 1 && msgs[0].Role == RoleUser {
		return msgs[0].Content
	}
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := "User"
		if m.Role == RoleAssistant {
			label = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s", label, m.Content)
	}
	return b.String()
}
