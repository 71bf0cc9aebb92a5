package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studymate/backend/internal/generator"
	"github.com/studymate/backend/internal/middleware"
	"github.com/studymate/backend/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GenerationRecorder stores one row per pipeline run.
type GenerationRecorder interface {
	RecordGeneration(ctx context.Context, g *models.Generation) error
}

// Repository is the persistence the Service needs. Store implements it on
// Postgres.
type Repository interface {
	GenerationRecorder
	ListGenerations(ctx context.Context, userID int64, limit, offset int) ([]models.Generation, int, error)

	CreateDeck(ctx context.Context, deck *models.Deck) error
	ListDecks(ctx context.Context, userID int64, limit, offset int) ([]models.Deck, int, error)
	GetDeck(ctx context.Context, userID, deckID int64) (*models.Deck, error)
	DeleteDeck(ctx context.Context, userID, deckID int64) error

	CreateNote(ctx context.Context, note *models.Note) error
	ListNotes(ctx context.Context, userID int64, limit, offset int) ([]models.Note, int, error)
	GetNote(ctx context.Context, userID, noteID int64) (*models.Note, error)
	DeleteNote(ctx context.Context, userID, noteID int64) error
}

type Service struct {
	responder generator.Responder
	repo      Repository
	validate  *validator.Validate
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the generation pipelines. repo may be nil, in which case
// runs are not recorded and library operations return ErrStorageDisabled.
func NewService(responder generator.Responder, repo Repository, logger *slog.Logger) *Service {
	return &Service{
		responder: responder,
		repo:      repo,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger.With("component", "study"),
		now:       time.Now,
	}
}

// ── Generation ─────────────────────────────────────────

// GenerateFlashcards runs classify → prompt → gateway → parse. A gateway
// failure returns a PipelineError carrying placeholder cards; parse failures
// carry none.
func (s *Service) GenerateFlashcards(ctx context.Context, req models.GenerateFlashcardsRequest) (resp *models.FlashcardsResponse, err error) {
	var run *models.Generation
	start := s.now()
	defer func() { s.record(ctx, run, start, err) }()
	defer s.recoverPanic(ctx, &err, "Failed to generate flashcards")

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, invalidInput("Topic is required")
	}
	if verr := s.validate.Struct(req); verr != nil {
		return nil, invalidInput(validationMessage(verr))
	}

	difficulty := models.NormalizeDifficulty(req.Difficulty)
	count := req.NumCards
	if count == 0 {
		count = models.DefaultNumCards
	}
	subject := generator.ResolveSubject(ctx, s.responder, topic, req.Subject)

	run = &models.Generation{
		Kind:       models.GenerationFlashcards,
		Topic:      topic,
		Subject:    subject,
		Difficulty: difficulty,
		Requested:  count,
	}

	ai := s.responder.GenerateResponse(ctx,
		generator.BuildFlashcardPrompt(topic, subject, difficulty, count),
		nil,
		generator.GenerationOptions{MaxTokens: generator.FlashcardMaxTokens},
	)
	run.Model = ai.Metadata.Model

	if ai.Metadata.Error || ai.Message == "" {
		fallback := generator.FallbackFlashcards(topic, subject, count)
		run.Produced = len(fallback)
		return nil, &PipelineError{
			Kind:     KindGatewayUnavailable,
			Message:  unavailableMessage(ai.Metadata.Error, "Failed to generate flashcards"),
			Fallback: fallback,
			Err:      generator.ErrGatewayUnavailable,
		}
	}

	parsed, perr := generator.ParseFlashcards(ai.Message, count)
	if perr != nil {
		if errors.Is(perr, generator.ErrEmptyResult) {
			return nil, &PipelineError{Kind: KindEmptyResult, Message: "No valid flashcards generated", Err: perr}
		}
		return nil, &PipelineError{Kind: KindParse, Message: "Failed to parse generated flashcards", Err: perr}
	}

	report := generator.ReviewFlashcards(parsed.Flashcards)
	run.Produced = len(parsed.Flashcards)
	run.QualityScore = &report.Score

	s.logger.InfoContext(ctx, "flashcards generated",
		"topic", topic,
		"subject", subject,
		"requested", count,
		"produced", run.Produced,
		"stage", parsed.Stage,
		"quality_score", report.Score,
		"quality", report.Classification,
	)
	if len(report.Similar) > 0 {
		s.logger.WarnContext(ctx, "near-duplicate flashcards", "topic", topic, "pairs", len(report.Similar))
	}

	return &models.FlashcardsResponse{
		Success:    true,
		Flashcards: parsed.Flashcards,
		Metadata: models.FlashcardMetadata{
			Topic:          topic,
			Subject:        subject,
			Difficulty:     difficulty,
			RequestedCards: count,
			NumCards:       len(parsed.Flashcards),
			GeneratedAt:    s.now().UTC(),
			AIModel:        ai.Metadata.Model,
		},
	}, nil
}

// GenerateNotes runs classify → prompt → gateway. The model's markdown is
// returned untouched.
func (s *Service) GenerateNotes(ctx context.Context, req models.GenerateNotesRequest) (resp *models.NotesResponse, err error) {
	var run *models.Generation
	start := s.now()
	defer func() { s.record(ctx, run, start, err) }()
	defer s.recoverPanic(ctx, &err, "Failed to generate notes")

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, invalidInput("Topic is required")
	}
	if verr := s.validate.Struct(req); verr != nil {
		return nil, invalidInput(validationMessage(verr))
	}

	difficulty := models.NormalizeDifficulty(req.Difficulty)
	subject := generator.ResolveSubject(ctx, s.responder, topic, req.Subject)

	run = &models.Generation{
		Kind:       models.GenerationNotes,
		Topic:      topic,
		Subject:    subject,
		Difficulty: difficulty,
		Requested:  1,
	}

	ai := s.responder.GenerateResponse(ctx,
		generator.BuildNotesPrompt(topic, subject, difficulty),
		nil,
		generator.GenerationOptions{MaxTokens: generator.NotesMaxTokens},
	)
	run.Model = ai.Metadata.Model

	if ai.Metadata.Error || ai.Message == "" {
		run.Produced = 1
		return nil, &PipelineError{
			Kind:     KindGatewayUnavailable,
			Message:  unavailableMessage(ai.Metadata.Error, "Failed to generate notes"),
			Fallback: generator.FallbackNotes(topic, subject),
			Err:      generator.ErrGatewayUnavailable,
		}
	}

	run.Produced = 1
	s.logger.InfoContext(ctx, "notes generated",
		"topic", topic,
		"subject", subject,
		"chars", len(ai.Message),
	)

	return &models.NotesResponse{
		Success: true,
		Notes:   ai.Message,
		Metadata: models.NoteMetadata{
			Topic:          topic,
			Subject:        subject,
			Difficulty:     difficulty,
			GeneratedAt:    s.now().UTC(),
			AIModel:        ai.Metadata.Model,
			ProcessingTime: ai.Metadata.ProcessingTime,
			Confidence:     ai.Metadata.Confidence,
		},
	}, nil
}

func unavailableMessage(gatewayError bool, emptyMessage string) string {
	if gatewayError {
		return "AI service unavailable"
	}
	return emptyMessage
}

func (s *Service) recoverPanic(ctx context.Context, err *error, msg string) {
	if r := recover(); r != nil {
		s.logger.ErrorContext(ctx, "generation panicked", "panic", r, "stack", string(debug.Stack()))
		*err = &PipelineError{Kind: KindUnexpected, Message: msg, Err: fmt.Errorf("panic: %v", r)}
	}
}

// record writes the generation log row. It runs detached from request
// cancellation and never affects the response.
func (s *Service) record(ctx context.Context, run *models.Generation, start time.Time, err error) {
	if run == nil || s.repo == nil {
		return
	}

	run.DurationMs = s.now().Sub(start).Milliseconds()
	run.RequestID = middleware.RequestID(ctx)
	if uid, ok := middleware.UserID(ctx); ok {
		run.UserID = &uid
	}

	run.Status = models.GenerationSucceeded
	if err != nil {
		run.Status = models.GenerationFailed
		var pe *PipelineError
		if errors.As(err, &pe) && pe.Kind == KindGatewayUnavailable {
			run.Status = models.GenerationFallback
		}
		msg := err.Error()
		run.ErrorMessage = &msg
	}

	if rerr := s.repo.RecordGeneration(context.WithoutCancel(ctx), run); rerr != nil {
		s.logger.ErrorContext(ctx, "failed to record generation", "kind", run.Kind, "error", rerr)
	}
}

// ── Library ────────────────────────────────────────────

func (s *Service) Subjects() models.SubjectListResponse {
	return models.SubjectListResponse{Subjects: generator.Subjects(), Default: generator.GeneralSubject}
}

func (s *Service) SaveDeck(ctx context.Context, userID int64, req models.SaveDeckRequest) (*models.Deck, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidInput(validationMessage(err))
	}

	cards := make([]models.Flashcard, len(req.Flashcards))
	for i, c := range req.Flashcards {
		if c.Difficulty == "" {
			c.Difficulty = models.CardMedium
		}
		if c.Tags == nil {
			c.Tags = []string{}
		}
		cards[i] = c
	}

	deck := &models.Deck{
		UserID:     userID,
		Title:      titleOrDefault(req.Title, req.Topic+" flashcards"),
		Topic:      req.Topic,
		Subject:    subjectOrDefault(req.Subject),
		Difficulty: models.NormalizeDifficulty(req.Difficulty),
		CardCount:  len(cards),
		Flashcards: cards,
	}
	if err := s.repo.CreateDeck(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *Service) ListDecks(ctx context.Context, userID int64, page, pageSize int) (*models.DeckListResponse, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	page, pageSize = normalizePage(page, pageSize)

	decks, total, err := s.repo.ListDecks(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if decks == nil {
		decks = []models.Deck{}
	}
	return &models.DeckListResponse{Decks: decks, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *Service) GetDeck(ctx context.Context, userID, deckID int64) (*models.Deck, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	return s.repo.GetDeck(ctx, userID, deckID)
}

func (s *Service) DeleteDeck(ctx context.Context, userID, deckID int64) error {
	if s.repo == nil {
		return ErrStorageDisabled
	}
	return s.repo.DeleteDeck(ctx, userID, deckID)
}

func (s *Service) SaveNote(ctx context.Context, userID int64, req models.SaveNoteRequest) (*models.Note, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	req.Topic = strings.TrimSpace(req.Topic)
	if err := s.validate.Struct(req); err != nil {
		return nil, invalidInput(validationMessage(err))
	}

	note := &models.Note{
		UserID:     userID,
		Title:      titleOrDefault(req.Title, req.Topic+" notes"),
		Topic:      req.Topic,
		Subject:    subjectOrDefault(req.Subject),
		Difficulty: models.NormalizeDifficulty(req.Difficulty),
		Content:    req.Content,
	}
	if err := s.repo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, userID int64, page, pageSize int) (*models.NoteListResponse, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	page, pageSize = normalizePage(page, pageSize)

	notes, total, err := s.repo.ListNotes(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return &models.NoteListResponse{Notes: notes, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *Service) GetNote(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	return s.repo.GetNote(ctx, userID, noteID)
}

func (s *Service) DeleteNote(ctx context.Context, userID, noteID int64) error {
	if s.repo == nil {
		return ErrStorageDisabled
	}
	return s.repo.DeleteNote(ctx, userID, noteID)
}

func (s *Service) ListGenerations(ctx context.Context, userID int64, page, pageSize int) (*models.GenerationListResponse, error) {
	if s.repo == nil {
		return nil, ErrStorageDisabled
	}
	page, pageSize = normalizePage(page, pageSize)

	gens, total, err := s.repo.ListGenerations(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if gens == nil {
		gens = []models.Generation{}
	}
	return &models.GenerationListResponse{Generations: gens, Total: total, Page: page, PageSize: pageSize}, nil
}

// ── Helpers ────────────────────────────────────────────

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func titleOrDefault(title, def string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return def
}

func subjectOrDefault(subject string) string {
	if s := strings.TrimSpace(subject); s != "" {
		return s
	}
	return generator.GeneralSubject
}

// validationMessage turns the first validator failure into a client message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Difficulty":
		return "difficulty must be one of easy, intermediate, hard"
	case "NumCards":
		return fmt.Sprintf("numCards must be between 1 and %d", models.MaxNumCards)
	case "Flashcards":
		return "flashcards must contain between 1 and 200 cards"
	case "Front", "Back":
		return "every flashcard needs a front and a back"
	default:
		return strings.ToLower(fe.Field()) + " is required"
	}
}
