package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studymate/backend/internal/models"
)

func TestBuildFlashcardPrompt(t *testing.T) {
	prompt := BuildFlashcardPrompt("Binary Search", "Algorithms", models.DifficultyHard, 7)

	required := []string{
		`Create 7 diverse and natural flashcards for the topic "Binary Search" in Algorithms.`,
		"Create exactly 7 flashcards",
		"factual, conceptual, comparison-based, or example-based",
		"Do NOT follow a fixed question pattern or template",
		`"flashcards": [`,
		`"difficulty": "easy|medium|hard"`,
		`"tags": ["tag1", "tag2"]`,
	}
	for _, want := range required {
		assert.Contains(t, prompt, want)
	}
}

func TestBuildFlashcardPrompt_IsPure(t *testing.T) {
	a := BuildFlashcardPrompt("Osmosis", "Biology", models.DifficultyEasy, 5)
	b := BuildFlashcardPrompt("Osmosis", "Biology", models.DifficultyEasy, 5)
	assert.Equal(t, a, b)
}

func TestBuildNotesPrompt_Sections(t *testing.T) {
	prompt := BuildNotesPrompt("Photosynthesis", "Biology", models.DifficultyIntermediate)

	sections := []string{
		"# Photosynthesis (Biology)",
		"## Overview",
		"## Key Concepts",
		"## Detailed Explanation",
		"Break down into 2-4 logical sections",
		"## Practical Examples",
		"## Practice Exercises",
		"## Key Takeaways",
		"## Additional Resources",
		"### 📚 Related Topics to Explore",
		"### 🔍 Further Reading",
		"### 🌐 Online Resources",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(prompt, s)
		if assert.GreaterOrEqual(t, idx, 0, "missing %q", s) {
			assert.Greater(t, idx, last, "section %q out of order", s)
			last = idx
		}
	}
}

func TestBuildNotesPrompt_ExampleCountsByTier(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		want       string
	}{
		{models.DifficultyEasy, "3-4"},
		{models.DifficultyBeginner, "3-4"},
		{models.DifficultyIntermediate, "4-5"},
		{models.DifficultyHard, "5-6"},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			prompt := BuildNotesPrompt("Topic", "Subject", tt.difficulty)
			assert.Contains(t, prompt, "## Practical Examples\n"+tt.want+" real-world examples")
			assert.Contains(t, prompt, "## Practice Exercises\n"+tt.want+" practice problems")
		})
	}
}

func TestBuildClassificationPrompt(t *testing.T) {
	prompt := BuildClassificationPrompt("Binary Search")

	assert.True(t, strings.HasPrefix(prompt, "Classify the following topic into one of these subjects: Accounting, Actuarial Science,"))
	assert.Contains(t, prompt, "Veterinary Science, Web Development.")
	assert.Contains(t, prompt, `Topic: "Binary Search".`)
	assert.Contains(t, prompt, `respond with "General".`)
	for _, s := range Subjects() {
		assert.Contains(t, prompt, s)
	}
}
