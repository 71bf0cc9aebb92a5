package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/studymate/backend/internal/models"
)

// ── MockClient: local development ─────────────────────────

// MockClient returns deterministic canned content shaped like a real model's
// answer to each of the three prompts this service sends.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ModelName() string {
	return "mock"
}

var (
	mockCountRe = regexp.MustCompile(`Create (\d+) diverse`)
	mockTopicRe = regexp.MustCompile(`(?:topic|for) "([^"]*)"`)
)

func (m *MockClient) Generate(ctx context.Context, req LLMRequest) (*LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var prompt string
	if n := len(req.Messages); n > 0 {
		prompt = req.Messages[n-1].Content
	}

	topic := "this topic"
	if match := mockTopicRe.FindStringSubmatch(prompt); match != nil {
		topic = match[1]
	}

	var content string
	switch {
	case strings.HasPrefix(prompt, "Classify the following topic"):
		content = GeneralSubject
	case strings.Contains(prompt, `"flashcards"`):
		count := models.DefaultNumCards
		if match := mockCountRe.FindStringSubmatch(prompt); match != nil {
			count, _ = strconv.Atoi(match[1])
		}
		content = buildMockFlashcards(topic, count)
	default:
		content = buildMockNotes(topic)
	}

	return &LLMResponse{
		Content:      content,
		Model:        m.ModelName(),
		PromptTokens: len(prompt) / 4,
		OutputTokens: len(content) / 4,
		StopReason:   "end_turn",
	}, nil
}

func buildMockFlashcards(topic string, count int) string {
	difficulties := []string{models.CardEasy, models.CardMedium, models.CardHard}
	cards := make([]models.Flashcard, count)
	for i := range cards {
		cards[i] = models.Flashcard{
			Front:      fmt.Sprintf("[Mock] Question %d about %s?", i+1, topic),
			Back:       fmt.Sprintf("[Mock] Answer %d explaining a key point of %s.", i+1, topic),
			Hint:       "[Mock] Recall the definition",
			Difficulty: difficulties[i%len(difficulties)],
			Tags:       []string{"mock", fmt.Sprintf("card-%d", i+1)},
		}
	}
	data, _ := json.Marshal(map[string]any{"flashcards": cards})
	return "```json\n" + string(data) + "\n```"
}

func buildMockNotes(topic string) string {
	return strings.Join([]string{
		fmt.Sprintf("# %s", topic),
		"",
		"## Overview",
		fmt.Sprintf("[Mock] %s is summarized here for local development.", topic),
		"",
		"## Key Concepts",
		"- **Core definition**: [Mock] definition",
		"",
		"## Detailed Explanation",
		"### Section 1: [Mock] first concept",
		"[Mock] explanation",
		"",
		"## Practical Examples",
		"1. [Mock] example",
		"",
		"## Practice Exercises",
		"1. [Mock] exercise",
		"",
		"## Key Takeaways",
		"- [Mock] takeaway",
		"",
		"## Additional Resources",
		"### 📚 Related Topics to Explore",
		"- **[Mock] topic**: description",
	}, "\n")
}
