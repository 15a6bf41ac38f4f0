package repository

import (
	"database/sql"
	"fmt"
	"time"

	"examengine/internal/database"
	"examengine/internal/models"
)

// DeckRepository handles database operations for flashcard decks
type DeckRepository struct {
	db *database.DB
}

// NewDeckRepository creates a new deck repository
func NewDeckRepository(db *database.DB) *DeckRepository {
	return &DeckRepository{db: db}
}

// CreateDeckWithQuestions creates a deck and its question links in one
// transaction. If the base name is taken the name gets a _v2, _v3, ...
// suffix; the unique constraint on decks.name arbitrates concurrent
// creates with the same base name.
func (r *DeckRepository) CreateDeckWithQuestions(baseName string, questionIDs []int64) (*models.Deck, error) {
	const maxVersions = 100

	for version := 1; version <= maxVersions; version++ {
		name := baseName
		if version > 1 {
			name = fmt.Sprintf("%s_v%d", baseName, version)
		}

		deck, err := r.createDeck(name, questionIDs)
		if err == nil {
			return deck, nil
		}
		if database.IsUniqueViolation(err) {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("no free deck name for %q after %d versions", baseName, maxVersions)
}

func (r *DeckRepository) createDeck(name string, questionIDs []int64) (*models.Deck, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deckID, err := tx.ExecReturningID("INSERT INTO decks (name) VALUES (?)", name)
	if err != nil {
		return nil, err
	}

	for _, qid := range questionIDs {
		_, err := tx.Exec("INSERT INTO deck_questions (deck_id, question_id) VALUES (?, ?)", deckID, qid)
		if err != nil {
			return nil, fmt.Errorf("failed to link question %d: %w", qid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit deck: %w", err)
	}

	return &models.Deck{
		ID:            deckID,
		Name:          name,
		IsNew:         true,
		Active:        true,
		QuestionCount: len(questionIDs),
		CreatedAt:     time.Now(),
	}, nil
}

// ListActive retrieves all active decks, newest first
func (r *DeckRepository) ListActive() ([]models.Deck, error) {
	query := `
		SELECT d.id, d.name, d.is_new, d.active, d.created_at,
		       (SELECT COUNT(*) FROM deck_questions dq WHERE dq.deck_id = d.id)
		FROM decks d
		WHERE d.active = ?
		ORDER BY d.created_at DESC, d.id DESC
	`
	rows, err := r.db.Query(query, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.IsNew, &d.Active, &d.CreatedAt, &d.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// GetByID retrieves a single deck
func (r *DeckRepository) GetByID(id int64) (*models.Deck, error) {
	query := `
		SELECT d.id, d.name, d.is_new, d.active, d.created_at,
		       (SELECT COUNT(*) FROM deck_questions dq WHERE dq.deck_id = d.id)
		FROM decks d
		WHERE d.id = ?
	`
	d := &models.Deck{}
	err := r.db.QueryRow(query, id).Scan(&d.ID, &d.Name, &d.IsNew, &d.Active, &d.CreatedAt, &d.QuestionCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	return d, nil
}

// QuestionIDsForDeck returns the ids of a deck's questions in link order
func (r *DeckRepository) QuestionIDsForDeck(deckID int64) ([]int64, error) {
	query := `
		SELECT question_id
		FROM deck_questions
		WHERE deck_id = ?
		ORDER BY id
	`
	rows, err := r.db.Query(query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deck questions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan question id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkViewed clears a deck's is_new flag
func (r *DeckRepository) MarkViewed(deckID int64) error {
	_, err := r.db.Exec("UPDATE decks SET is_new = ? WHERE id = ?", false, deckID)
	if err != nil {
		return fmt.Errorf("failed to mark deck viewed: %w", err)
	}
	return nil
}

// Deactivate soft-deletes a deck
func (r *DeckRepository) Deactivate(deckID int64) error {
	_, err := r.db.Exec("UPDATE decks SET active = ? WHERE id = ?", false, deckID)
	if err != nil {
		return fmt.Errorf("failed to deactivate deck: %w", err)
	}
	return nil
}
