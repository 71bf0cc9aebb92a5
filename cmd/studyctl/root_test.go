package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/backend/internal/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("STUDY_LLM_PROVIDER", "mock")
	t.Setenv("STUDY_SERVER_LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSubjectsCommand(t *testing.T) {
	out, err := execute(t, "subjects")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 153)
	assert.Equal(t, "Accounting", lines[0])
}

func TestGenerateFlashcardsCommand_JSON(t *testing.T) {
	out, err := execute(t, "generate", "flashcards", "--topic", "Binary Search", "--count", "3", "--json")
	require.NoError(t, err)

	var resp models.FlashcardsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Flashcards, 3)
	assert.Equal(t, "General", resp.Metadata.Subject)
	assert.Equal(t, "mock", resp.Metadata.AIModel)
}

func TestGenerateFlashcardsCommand_Text(t *testing.T) {
	out, err := execute(t, "generate", "flashcards", "--topic", "Cells", "--subject", "Biology", "--difficulty", "easy")
	require.NoError(t, err)
	assert.Contains(t, out, "Cells (Biology, easy) · 5 of 5 cards · mock")
	assert.Contains(t, out, " 1. [easy]")
}

func TestGenerateNotesCommand(t *testing.T) {
	out, err := execute(t, "generate", "notes", "--topic", "Photosynthesis", "--subject", "Biology")
	require.NoError(t, err)
	assert.Contains(t, out, "<!-- Photosynthesis · Biology · intermediate · mock -->")
}

func TestGenerateCommand_BlankTopic(t *testing.T) {
	_, err := execute(t, "generate", "flashcards")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Topic is required")
}

func TestProviderOverrideIsValidated(t *testing.T) {
	_, err := execute(t, "--provider", "gemini", "generate", "notes", "--topic", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini.api_key")
}
