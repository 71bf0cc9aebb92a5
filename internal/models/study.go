package models

import "time"

type Difficulty string

const (
	DifficultyEasy         Difficulty = "easy"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyHard         Difficulty = "hard"

	// DifficultyBeginner is accepted on input and normalized to DifficultyEasy.
	DifficultyBeginner Difficulty = "beginner"
)

const (
	DefaultDifficulty = DifficultyIntermediate
	DefaultNumCards   = 5
	MaxNumCards       = 50
)

// Card-level difficulty values emitted in a Flashcard.
const (
	CardEasy   = "easy"
	CardMedium = "medium"
	CardHard   = "hard"
)

type Flashcard struct {
	Front      string   `json:"front" validate:"required"`
	Back       string   `json:"back" validate:"required"`
	Hint       string   `json:"hint"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

// ── Generation Requests ────────────────────────────────

type GenerateFlashcardsRequest struct {
	Topic      string     `json:"topic"`
	Subject    string     `json:"subject,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy intermediate hard beginner"`
	NumCards   int        `json:"numCards,omitempty" validate:"gte=0,lte=50"`
}

type GenerateNotesRequest struct {
	Topic      string     `json:"topic"`
	Subject    string     `json:"subject,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy intermediate hard beginner"`
}

// ── Generation Responses ───────────────────────────────

type FlashcardMetadata struct {
	Topic          string     `json:"topic"`
	Subject        string     `json:"subject"`
	Difficulty     Difficulty `json:"difficulty"`
	RequestedCards int        `json:"requestedCards"`
	NumCards       int        `json:"numCards"`
	GeneratedAt    time.Time  `json:"generatedAt"`
	AIModel        string     `json:"aiModel"`
}

type FlashcardsResponse struct {
	Success    bool              `json:"success"`
	Flashcards []Flashcard       `json:"flashcards"`
	Metadata   FlashcardMetadata `json:"metadata"`
}

type NoteMetadata struct {
	Topic          string     `json:"topic"`
	Subject        string     `json:"subject"`
	Difficulty     Difficulty `json:"difficulty"`
	GeneratedAt    time.Time  `json:"generatedAt"`
	AIModel        string     `json:"aiModel"`
	ProcessingTime *int64     `json:"processingTime,omitempty"`
	Confidence     *float64   `json:"confidence,omitempty"`
}

type NotesResponse struct {
	Success  bool         `json:"success"`
	Notes    string       `json:"notes"`
	Metadata NoteMetadata `json:"metadata"`
}

// ── Generation Log ─────────────────────────────────────

type GenerationKind string

const (
	GenerationFlashcards GenerationKind = "flashcards"
	GenerationNotes      GenerationKind = "notes"
)

type GenerationStatus string

const (
	GenerationSucceeded GenerationStatus = "succeeded"
	GenerationFallback  GenerationStatus = "fallback"
	GenerationFailed    GenerationStatus = "failed"
)

type Generation struct {
	ID           int64            `json:"id"`
	RequestID    string           `json:"request_id,omitempty"`
	UserID       *int64           `json:"user_id,omitempty"`
	Kind         GenerationKind   `json:"kind"`
	Topic        string           `json:"topic"`
	Subject      string           `json:"subject"`
	Difficulty   Difficulty       `json:"difficulty"`
	Requested    int              `json:"requested"`
	Produced     int              `json:"produced"`
	Model        string           `json:"model,omitempty"`
	Status       GenerationStatus `json:"status"`
	ErrorMessage *string          `json:"error_message,omitempty"`
	QualityScore *float64         `json:"quality_score,omitempty"`
	DurationMs   int64            `json:"duration_ms"`
	CreatedAt    time.Time        `json:"created_at"`
}

type GenerationListResponse struct {
	Generations []Generation `json:"generations"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
}

// ── Saved Content ──────────────────────────────────────

type Deck struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"`
	Title      string      `json:"title"`
	Topic      string      `json:"topic"`
	Subject    string      `json:"subject"`
	Difficulty Difficulty  `json:"difficulty"`
	CardCount  int         `json:"card_count"`
	Flashcards []Flashcard `json:"flashcards,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

type SaveDeckRequest struct {
	Title      string      `json:"title"`
	Topic      string      `json:"topic" validate:"required"`
	Subject    string      `json:"subject"`
	Difficulty Difficulty  `json:"difficulty" validate:"omitempty,oneof=easy intermediate hard beginner"`
	Flashcards []Flashcard `json:"flashcards" validate:"required,min=1,max=200,dive"`
}

type DeckListResponse struct {
	Decks    []Deck `json:"decks"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type Note struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Title      string     `json:"title"`
	Topic      string     `json:"topic"`
	Subject    string     `json:"subject"`
	Difficulty Difficulty `json:"difficulty"`
	Content    string     `json:"content,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type SaveNoteRequest struct {
	Title      string     `json:"title"`
	Topic      string     `json:"topic" validate:"required"`
	Subject    string     `json:"subject"`
	Difficulty Difficulty `json:"difficulty" validate:"omitempty,oneof=easy intermediate hard beginner"`
	Content    string     `json:"content" validate:"required"`
}

type NoteListResponse struct {
	Notes    []Note `json:"notes"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type SubjectListResponse struct {
	Subjects []string `json:"subjects"`
	Default  string   `json:"default"`
}

// NormalizeDifficulty maps the beginner alias onto easy and fills the default.
func NormalizeDifficulty(d Difficulty) Difficulty {
	switch d {
	case "":
		return DefaultDifficulty
	case DifficultyBeginner:
		return DifficultyEasy
	default:
		return d
	}
}
