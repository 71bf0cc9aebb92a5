package generator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackFlashcards_CyclesTemplates(t *testing.T) {
	cards := FallbackFlashcards("Binary Search", "Algorithms", 7)
	require.Len(t, cards, 7)

	wantTemplate := []int{0, 1, 2, 3, 4, 0, 1}
	for i, idx := range wantTemplate {
		tmpl := fallbackTemplates[idx]
		assert.Equal(t, tmpl.hint, cards[i].Hint, "card %d", i)
		assert.Equal(t, tmpl.difficulty, cards[i].Difficulty, "card %d", i)
		assert.Equal(t, tmpl.tags, cards[i].Tags, "card %d", i)
	}
	assert.Equal(t, cards[0], cards[5])
	assert.Equal(t, cards[1], cards[6])
}

func TestFallbackFlashcards_Content(t *testing.T) {
	cards := FallbackFlashcards("Binary Search", "Algorithms", 5)

	assert.Equal(t, "What is the definition of Binary Search in Algorithms?", cards[0].Front)
	assert.Equal(t, "Binary Search is a fundamental concept in Algorithms that involves key principles and applications.", cards[0].Back)
	assert.Equal(t, "easy", cards[0].Difficulty)
	assert.Equal(t, []string{"definition", "basic"}, cards[0].Tags)
	assert.Equal(t, "hard", cards[2].Difficulty)
	assert.Equal(t, []string{"benefits", "importance"}, cards[4].Tags)

	for _, c := range cards {
		assert.NotEmpty(t, c.Front)
		assert.NotEmpty(t, c.Back)
		assert.NotNil(t, c.Tags)
	}
}

func TestFallbackFlashcards_Idempotent(t *testing.T) {
	a, err := json.Marshal(FallbackFlashcards("Osmosis", "Biology", 6))
	require.NoError(t, err)
	b, err := json.Marshal(FallbackFlashcards("Osmosis", "Biology", 6))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFallbackFlashcards_TagsAreNotShared(t *testing.T) {
	cards := FallbackFlashcards("A", "B", 6)
	cards[0].Tags[0] = "mutated"

	assert.Equal(t, "definition", cards[5].Tags[0])
	assert.Equal(t, "definition", fallbackTemplates[0].tags[0])
}

func TestFallbackFlashcards_PlaceholderInTopic(t *testing.T) {
	cards := FallbackFlashcards("{subject}", "Logic", 1)
	assert.Equal(t, "What is the definition of {subject} in Logic?", cards[0].Front)
}

func TestFallbackFlashcards_ZeroCount(t *testing.T) {
	assert.Empty(t, FallbackFlashcards("A", "B", 0))
	assert.Empty(t, FallbackFlashcards("A", "B", -3))
}

func TestFallbackNotes(t *testing.T) {
	notes := FallbackNotes("Photosynthesis", "Biology")

	assert.True(t, strings.HasPrefix(notes, "# Photosynthesis (Biology)\n\n## Overview\n"))
	for _, heading := range []string{
		"## Key Concepts", "## Detailed Explanation", "### Core Principles", "### Step-by-Step Breakdown",
		"## Practical Examples", "## Practice Exercises", "## Key Takeaways", "## Additional Resources",
		"### Related Topics to Explore", "### Further Reading", "### Online Resources",
	} {
		assert.Contains(t, notes, heading+"\n")
	}
	assert.Contains(t, notes, "- Photosynthesis is fundamental to Biology")
	assert.True(t, strings.HasSuffix(notes, "- Resource 2: Brief description"))
	assert.Equal(t, notes, FallbackNotes("Photosynthesis", "Biology"))
}
