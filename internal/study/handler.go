package study

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studymate/backend/internal/middleware"
	"github.com/studymate/backend/internal/models"
)

type Handler struct {
	service     *Service
	logger      *slog.Logger
	development bool
}

// NewHandler builds the HTTP layer. In development mode unexpected errors
// carry a details field.
func NewHandler(service *Service, logger *slog.Logger, development bool) *Handler {
	return &Handler{service: service, logger: logger.With("component", "study_handler"), development: development}
}

// RegisterRoutes mounts the public taxonomy route and the authenticated
// generation and library routes.
func (h *Handler) RegisterRoutes(public, protected *mux.Router) {
	public.HandleFunc("/subjects", h.ListSubjects).Methods("GET")

	protected.HandleFunc("/flashcards/generate", h.GenerateFlashcards).Methods("POST")
	protected.HandleFunc("/notes/generate", h.GenerateNotes).Methods("POST")

	protected.HandleFunc("/decks", h.SaveDeck).Methods("POST")
	protected.HandleFunc("/decks", h.ListDecks).Methods("GET")
	protected.HandleFunc("/decks/{id}", h.GetDeck).Methods("GET")
	protected.HandleFunc("/decks/{id}", h.DeleteDeck).Methods("DELETE")

	protected.HandleFunc("/notes", h.SaveNote).Methods("POST")
	protected.HandleFunc("/notes", h.ListNotes).Methods("GET")
	protected.HandleFunc("/notes/{id}", h.GetNote).Methods("GET")
	protected.HandleFunc("/notes/{id}", h.DeleteNote).Methods("DELETE")

	protected.HandleFunc("/generations", h.ListGenerations).Methods("GET")
}

// ── Generation ──────────────────────────────────────────

func (h *Handler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.GenerateFlashcards(r.Context(), req)
	if err != nil {
		h.writePipelineError(w, r, err, "Failed to generate flashcards")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GenerateNotes(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	resp, err := h.service.GenerateNotes(r.Context(), req)
	if err != nil {
		h.writePipelineError(w, r, err, "Failed to generate notes")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writePipelineError converts a service error to the failure envelope.
// Errors that are not a PipelineError are treated as unexpected.
func (h *Handler) writePipelineError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	var pe *PipelineError
	if !errors.As(err, &pe) {
		pe = &PipelineError{Kind: KindUnexpected, Message: generic, Err: err}
	}

	if pe.Kind != KindInvalidInput {
		h.logger.ErrorContext(r.Context(), "generation failed",
			"path", r.URL.Path,
			"kind", pe.Kind.String(),
			"error", err,
		)
	}

	resp := models.NewErrorResponse(pe.Message)
	resp.Fallback = pe.Fallback
	if pe.Kind == KindUnexpected && h.development && pe.Err != nil {
		resp.Details = pe.Err.Error()
	}
	writeJSON(w, pe.StatusCode(), resp)
}

// ── Library ─────────────────────────────────────────────

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Subjects())
}

func (h *Handler) SaveDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	var req models.SaveDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	deck, err := h.service.SaveDeck(r.Context(), userID, req)
	if err != nil {
		h.writeLibraryError(w, r, err, "Failed to save deck", "Deck not found")
		return
	}
	writeJSON(w, http.StatusCreated, deck)
}

func (h *Handler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	query := r.URL.Query()
	resp, err := h.service.ListDecks(r.Context(), userID,
		intQueryParam(query, "page", 1), intQueryParam(query, "page_size", defaultPageSize))
	if err != nil {
		h.writeLibraryError(w, r, err, "Failed to list decks", "Deck not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid deck ID"))
		return
	}

	deck, err := h.service.GetDeck(r.Context(), userID, id)
	if err != nil {
		h.writeLibraryError(w, r, err, "Failed to get deck", "Deck not found")
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (h *Handler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid deck ID"))
		return
	}

	if err := h.service.DeleteDeck(r.Context(), userID, id); err != nil {
		h.writeLibraryError(w, r, err, "Failed to delete deck", "Deck not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SaveNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	var req models.SaveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	note, err := h.service.SaveNote(r.Context(), userID, req)
	if err != nil {
		h.writeLibraryError(w, r, err, "Failed to save note", "Note not found")
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	query := r.URL.Query()
	resp, err := h.service.ListNotes(r.Context(), userID,
		intQueryParam(query, "page", 1), intQueryParam(query, "page_size", defaultPageSize))
	if err != nil {
		h.writeLibraryError(w, r, err, "Failed to list notes", "Note not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid note ID"))
		return
	}

	note, err := h.service.GetNote(r.Context(), userID, id)
	if err != nil {
		h.writeLibraryError(w, r, err, "Failed to get note", "Note not found")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid note ID"))
		return
	}

	if err := h.service.DeleteNote(r.Context(), userID, id); err != nil {
		h.writeLibraryError(w, r, err, "Failed to delete note", "Note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
		return
	}

	query := r.URL.Query()
	resp, err := h.service.ListGenerations(r.Context(), userID,
		intQueryParam(query, "page", 1), intQueryParam(query, "page_size", defaultPageSize))
	if err != nil {
		h.writeLibraryError(w, r, err, "Failed to list generations", "Generation not found")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeLibraryError(w http.ResponseWriter, r *http.Request, err error, failure, notFound string) {
	var pe *PipelineError
	switch {
	case errors.As(err, &pe) && pe.Kind == KindInvalidInput:
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(pe.Message))
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse(notFound))
	default:
		h.logger.ErrorContext(r.Context(), failure, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(failure))
	}
}

// ── Helpers ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
