package study

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/studymate/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Generation Log ──────────────────────────────────────

func (s *Store) RecordGeneration(ctx context.Context, g *models.Generation) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO generations
		 (request_id, user_id, kind, topic, subject, difficulty, requested, produced,
		  model, status, error_message, quality_score, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at`,
		nullString(g.RequestID), g.UserID, g.Kind, g.Topic, g.Subject, g.Difficulty,
		g.Requested, g.Produced, nullString(g.Model), g.Status, g.ErrorMessage,
		g.QualityScore, g.DurationMs,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

func (s *Store) ListGenerations(ctx context.Context, userID int64, limit, offset int) ([]models.Generation, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM generations WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count generations: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(request_id::text, ''), user_id, kind, topic, subject, difficulty,
		        requested, produced, COALESCE(model, ''), status, error_message,
		        quality_score, duration_ms, created_at
		 FROM generations
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var gens []models.Generation
	for rows.Next() {
		var g models.Generation
		if err := rows.Scan(&g.ID, &g.RequestID, &g.UserID, &g.Kind, &g.Topic, &g.Subject,
			&g.Difficulty, &g.Requested, &g.Produced, &g.Model, &g.Status, &g.ErrorMessage,
			&g.QualityScore, &g.DurationMs, &g.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan generation: %w", err)
		}
		gens = append(gens, g)
	}
	return gens, total, rows.Err()
}

// ── Decks ───────────────────────────────────────────────

// CreateDeck inserts the deck and its cards in one transaction and fills in
// the generated id and timestamp.
func (s *Store) CreateDeck(ctx context.Context, deck *models.Deck) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO flashcard_decks (user_id, title, topic, subject, difficulty, card_count)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		deck.UserID, deck.Title, deck.Topic, deck.Subject, deck.Difficulty, len(deck.Flashcards),
	).Scan(&deck.ID, &deck.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert deck: %w", err)
	}

	for i, c := range deck.Flashcards {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO flashcards (deck_id, position, front, back, hint, difficulty, tags)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			deck.ID, i, c.Front, c.Back, c.Hint, c.Difficulty, pq.Array(c.Tags),
		)
		if err != nil {
			return fmt.Errorf("insert flashcard: %w", err)
		}
	}

	deck.CardCount = len(deck.Flashcards)
	return tx.Commit()
}

func (s *Store) ListDecks(ctx context.Context, userID int64, limit, offset int) ([]models.Deck, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM flashcard_decks WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count decks: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, topic, subject, difficulty, card_count, created_at
		 FROM flashcard_decks
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list decks: %w", err)
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Topic, &d.Subject,
			&d.Difficulty, &d.CardCount, &d.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, total, rows.Err()
}

// GetDeck returns the deck with its cards in order. Decks owned by other
// users are reported as ErrNotFound.
func (s *Store) GetDeck(ctx context.Context, userID, deckID int64) (*models.Deck, error) {
	var d models.Deck
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, topic, subject, difficulty, card_count, created_at
		 FROM flashcard_decks WHERE id = $1 AND user_id = $2`,
		deckID, userID,
	).Scan(&d.ID, &d.UserID, &d.Title, &d.Topic, &d.Subject, &d.Difficulty, &d.CardCount, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT front, back, hint, difficulty, tags
		 FROM flashcards WHERE deck_id = $1 ORDER BY position`,
		deckID,
	)
	if err != nil {
		return nil, fmt.Errorf("get flashcards: %w", err)
	}
	defer rows.Close()

	d.Flashcards = []models.Flashcard{}
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.Front, &c.Back, &c.Hint, &c.Difficulty, pq.Array(&c.Tags)); err != nil {
			return nil, fmt.Errorf("scan flashcard: %w", err)
		}
		if c.Tags == nil {
			c.Tags = []string{}
		}
		d.Flashcards = append(d.Flashcards, c)
	}
	return &d, rows.Err()
}

func (s *Store) DeleteDeck(ctx context.Context, userID, deckID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM flashcard_decks WHERE id = $1 AND user_id = $2`, deckID, userID)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	return requireAffected(res)
}

// ── Notes ───────────────────────────────────────────────

func (s *Store) CreateNote(ctx context.Context, note *models.Note) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO study_notes (user_id, title, topic, subject, difficulty, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		note.UserID, note.Title, note.Topic, note.Subject, note.Difficulty, note.Content,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// ListNotes returns note summaries; Content is left empty.
func (s *Store) ListNotes(ctx context.Context, userID int64, limit, offset int) ([]models.Note, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM study_notes WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notes: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, topic, subject, difficulty, created_at
		 FROM study_notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Topic, &n.Subject,
			&n.Difficulty, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, total, rows.Err()
}

func (s *Store) GetNote(ctx context.Context, userID, noteID int64) (*models.Note, error) {
	var n models.Note
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, topic, subject, difficulty, content, created_at
		 FROM study_notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Topic, &n.Subject, &n.Difficulty, &n.Content, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

func (s *Store) DeleteNote(ctx context.Context, userID, noteID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM study_notes WHERE id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return requireAffected(res)
}

// ── Helpers ─────────────────────────────────────────────

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullString converts an empty string to nil for nullable DB columns.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
