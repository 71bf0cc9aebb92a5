package study

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate/backend/internal/generator"
	"github.com/studymate/backend/internal/middleware"
	"github.com/studymate/backend/internal/models"
)

// staticTokens maps bearer tokens straight to user ids.
type staticTokens map[string]int64

func (s staticTokens) VerifyToken(token string) (int64, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, middleware.ErrInvalidToken
}

var testTokens = staticTokens{"alice": 1, "bob": 2}

func newTestRouter(svc *Service, development bool) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(testTokens))

	NewHandler(svc, discardLogger(), development).RegisterRoutes(api, protected)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// ── Generation endpoints ────────────────────────────────

func TestHandler_GenerateFlashcards_Success(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo,
		generator.ScriptedReply{Content: "Algorithms"},
		generator.ScriptedReply{Content: cardsJSON(5)},
	)
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/flashcards/generate", "alice", map[string]any{"topic": "Binary Search"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.FlashcardsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Flashcards, 5)
	assert.Equal(t, "Algorithms", resp.Metadata.Subject)

	gens := repo.recorded()
	require.Len(t, gens, 1)
	require.NotNil(t, gens[0].UserID)
	assert.Equal(t, int64(1), *gens[0].UserID)
}

func TestHandler_GenerateFlashcards_RequiresAuth(t *testing.T) {
	svc, client := newTestService(nil)
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/flashcards/generate", "", map[string]any{"topic": "Cells"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, "POST", "/api/v1/flashcards/generate", "mallory", map[string]any{"topic": "Cells"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", decodeBody(t, rec)["error"])

	assert.Zero(t, client.CallCount())
}

func TestHandler_GenerateFlashcards_BlankTopic(t *testing.T) {
	svc, client := newTestService(nil)
	router := newTestRouter(svc, true)

	rec := doRequest(t, router, "POST", "/api/v1/flashcards/generate", "alice", map[string]any{"topic": "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Topic is required", body["error"])
	assert.NotContains(t, body, "fallback")
	assert.NotContains(t, body, "details")
	assert.Zero(t, client.CallCount())
}

func TestHandler_GenerateFlashcards_InvalidBody(t *testing.T) {
	svc, _ := newTestService(nil)
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/flashcards/generate", "alice", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rec)["error"])
}

func TestHandler_GenerateFlashcards_GatewayErrorSendsFallback(t *testing.T) {
	svc, _ := newTestService(nil,
		generator.ScriptedReply{Err: errors.New("down")},
		generator.ScriptedReply{Err: errors.New("down")},
	)
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/flashcards/generate", "alice", map[string]any{"topic": "Photosynthesis"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp struct {
		Success  bool               `json:"success"`
		Error    string             `json:"error"`
		Fallback []models.Flashcard `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "AI service unavailable", resp.Error)
	require.Len(t, resp.Fallback, 5)
	assert.Contains(t, resp.Fallback[0].Back, generator.GeneralSubject)
	for _, c := range resp.Fallback {
		assert.NotNil(t, c.Tags)
	}
}

func TestHandler_GenerateFlashcards_ParseErrorHasNoFallback(t *testing.T) {
	svc, _ := newTestService(nil, generator.ScriptedReply{Content: "no json here"})
	router := newTestRouter(svc, true)

	rec := doRequest(t, router, "POST", "/api/v1/flashcards/generate", "alice",
		map[string]any{"topic": "Cells", "subject": "Biology"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Failed to parse generated flashcards", body["error"])
	assert.NotContains(t, body, "fallback")
	assert.NotContains(t, body, "details")
}

func TestHandler_UnexpectedErrorDetailsOnlyInDevelopment(t *testing.T) {
	svc := NewService(panicResponder{}, nil, discardLogger())

	for _, dev := range []bool{true, false} {
		t.Run(fmt.Sprintf("development=%v", dev), func(t *testing.T) {
			router := newTestRouter(svc, dev)
			rec := doRequest(t, router, "POST", "/api/v1/notes/generate", "alice",
				map[string]any{"topic": "Cells", "subject": "Biology"})
			require.Equal(t, http.StatusInternalServerError, rec.Code)

			body := decodeBody(t, rec)
			assert.Equal(t, "Failed to generate notes", body["error"])
			if dev {
				assert.Equal(t, "panic: boom", body["details"])
			} else {
				assert.NotContains(t, body, "details")
			}
		})
	}
}

func TestHandler_GenerateNotes(t *testing.T) {
	svc, _ := newTestService(nil,
		generator.ScriptedReply{Content: "# Cells\n\nbody"},
		generator.ScriptedReply{Err: errors.New("down")},
	)
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/notes/generate", "alice",
		map[string]any{"topic": "Cells", "subject": "Biology"})
	require.Equal(t, http.StatusOK, rec.Code)
	var ok models.NotesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ok))
	assert.Equal(t, "# Cells\n\nbody", ok.Notes)

	rec = doRequest(t, router, "POST", "/api/v1/notes/generate", "alice",
		map[string]any{"topic": "Cells", "subject": "Biology"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "AI service unavailable", body["error"])
	assert.Equal(t, generator.FallbackNotes("Cells", "Biology"), body["fallback"])
}

// ── Library endpoints ───────────────────────────────────

func TestHandler_Subjects(t *testing.T) {
	svc, _ := newTestService(nil)
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "GET", "/api/v1/subjects", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SubjectListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Subjects, "Algorithms")
	assert.Equal(t, "General", resp.Default)
}

func TestHandler_DeckLifecycle(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/decks", "alice", models.SaveDeckRequest{
		Title:      "Cell biology",
		Topic:      "Cells",
		Subject:    "Biology",
		Flashcards: []models.Flashcard{{Front: "What is a cell?", Back: "The basic unit of life", Tags: []string{"basics"}}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var deck models.Deck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deck))
	assert.Equal(t, 1, deck.CardCount)

	path := fmt.Sprintf("/api/v1/decks/%d", deck.ID)

	rec = doRequest(t, router, "GET", path, "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", path, "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Deck not found", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, "GET", "/api/v1/decks/abc", "alice", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid deck ID", decodeBody(t, rec)["error"])

	rec = doRequest(t, router, "GET", "/api/v1/decks?page=1&page_size=5", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.DeckListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 5, list.PageSize)

	rec = doRequest(t, router, "DELETE", path, "bob", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, "DELETE", path, "alice", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, "GET", path, "alice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_SaveDeckValidation(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/decks", "alice", map[string]any{"topic": "Cells", "flashcards": []any{}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "flashcards")
}

func TestHandler_NoteLifecycle(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/notes", "bob", models.SaveNoteRequest{Topic: "Cells", Content: "# Cells"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var note models.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &note))

	path := fmt.Sprintf("/api/v1/notes/%d", note.ID)

	rec = doRequest(t, router, "GET", path, "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# Cells", decodeBody(t, rec)["content"])

	rec = doRequest(t, router, "GET", path, "alice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, "GET", "/api/v1/notes", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.NoteListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.Page)

	rec = doRequest(t, router, "DELETE", path, "bob", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_ListGenerations(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, generator.ScriptedReply{Content: cardsJSON(3)})
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "POST", "/api/v1/flashcards/generate", "alice",
		map[string]any{"topic": "Cells", "subject": "Biology", "numCards": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, "GET", "/api/v1/generations", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.GenerationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Generations, 1)
	assert.Equal(t, 3, list.Generations[0].Produced)

	rec = doRequest(t, router, "GET", "/api/v1/generations", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Generations)
	assert.NotNil(t, list.Generations)
}

func TestHandler_LibraryWithoutStorage(t *testing.T) {
	svc, _ := newTestService(nil)
	router := newTestRouter(svc, false)

	rec := doRequest(t, router, "GET", "/api/v1/decks", "alice", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to list decks", decodeBody(t, rec)["error"])
}
