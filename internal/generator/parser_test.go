package generator

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/backend/internal/models"
)

func validCardsJSON(count int) string {
	cards := make([]models.Flashcard, count)
	for i := range cards {
		cards[i] = models.Flashcard{
			Front:      fmt.Sprintf("Front %d", i+1),
			Back:       fmt.Sprintf("Back %d", i+1),
			Hint:       "hint",
			Difficulty: models.CardHard,
			Tags:       []string{"a", "b"},
		}
	}
	data, _ := json.Marshal(map[string]any{"flashcards": cards})
	return string(data)
}

func TestParseFlashcards_ValidJSON(t *testing.T) {
	res, err := ParseFlashcards(validCardsJSON(5), 5)
	require.NoError(t, err)

	assert.Equal(t, StageDirect, res.Stage)
	require.Len(t, res.Flashcards, 5)
	assert.Equal(t, models.Flashcard{
		Front: "Front 1", Back: "Back 1", Hint: "hint", Difficulty: "hard", Tags: []string{"a", "b"},
	}, res.Flashcards[0])
}

func TestParseFlashcards_MarkdownFences(t *testing.T) {
	res, err := ParseFlashcards("```json\n"+validCardsJSON(3)+"\n```", 3)
	require.NoError(t, err)

	assert.Equal(t, StageDirect, res.Stage)
	assert.Len(t, res.Flashcards, 3)
}

func TestParseFlashcards_EmbeddedInProse(t *testing.T) {
	input := "Sure! {\"flashcards\":[{\"front\":\"F\",\"back\":\"B\"}]}\nThanks"

	res, err := ParseFlashcards(input, 5)
	require.NoError(t, err)

	assert.Equal(t, StageExtracted, res.Stage)
	require.Len(t, res.Flashcards, 1)
	card := res.Flashcards[0]
	assert.Equal(t, "F", card.Front)
	assert.Equal(t, "B", card.Back)
	assert.Equal(t, "", card.Hint)
	assert.Equal(t, "medium", card.Difficulty)
	assert.NotNil(t, card.Tags)
	assert.Empty(t, card.Tags)
}

func TestParseFlashcards_MultipleFragments(t *testing.T) {
	// A greedy first-{ to last-} span would include both objects and fail.
	input := `Here is a note {"note": "ignore me"} and the answer: {"flashcards":[{"front":"Q","back":"A"}]} {"trailing": true}`

	res, err := ParseFlashcards(input, 5)
	require.NoError(t, err)

	assert.Equal(t, StageExtracted, res.Stage)
	require.Len(t, res.Flashcards, 1)
	assert.Equal(t, "Q", res.Flashcards[0].Front)
}

func TestParseFlashcards_BracesInProseBeforeObject(t *testing.T) {
	input := "Use {curly} braces like {this}. " + validCardsJSON(2)

	res, err := ParseFlashcards(input, 5)
	require.NoError(t, err)
	assert.Len(t, res.Flashcards, 2)
}

func TestParseFlashcards_TruncatesToCount(t *testing.T) {
	res, err := ParseFlashcards(validCardsJSON(8), 5)
	require.NoError(t, err)

	require.Len(t, res.Flashcards, 5)
	assert.Equal(t, "Front 5", res.Flashcards[4].Front)
}

func TestParseFlashcards_NeverPads(t *testing.T) {
	res, err := ParseFlashcards(validCardsJSON(2), 5)
	require.NoError(t, err)
	assert.Len(t, res.Flashcards, 2)
}

func TestParseFlashcards_Backfill(t *testing.T) {
	input := `{"flashcards":[
		{"front":"","back":null,"hint":false,"difficulty":0,"tags":"not-a-list"},
		{},
		"just a string",
		{"front":42,"back":true,"tags":["x",7,null,{"k":1},false]}
	]}`

	res, err := ParseFlashcards(input, 10)
	require.NoError(t, err)
	require.Len(t, res.Flashcards, 4)

	for i, card := range res.Flashcards[:3] {
		assert.Equal(t, fmt.Sprintf("Question %d", i+1), card.Front)
		assert.Equal(t, "Answer not available", card.Back)
		assert.Equal(t, "", card.Hint)
		assert.Equal(t, "medium", card.Difficulty)
		assert.Equal(t, []string{}, card.Tags)
	}

	last := res.Flashcards[3]
	assert.Equal(t, "42", last.Front)
	assert.Equal(t, "true", last.Back)
	assert.Equal(t, []string{"x", "7", "false"}, last.Tags)
}

func TestParseFlashcards_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrParse},
		{"plain prose", "I cannot help with that.", ErrParse},
		{"unbalanced", `{"flashcards": [{"front": "F"`, ErrParse},
		{"no flashcards key", `{"cards": []}`, ErrEmptyResult},
		{"flashcards not a list", `{"flashcards": "none"}`, ErrEmptyResult},
		{"flashcards null", `{"flashcards": null}`, ErrEmptyResult},
		{"flashcards empty", `{"flashcards": []}`, ErrEmptyResult},
		{"embedded empty", `Result: {"flashcards": []} done`, ErrEmptyResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseFlashcards(tt.input, 5)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("  {\"a\":1}  "))
}
