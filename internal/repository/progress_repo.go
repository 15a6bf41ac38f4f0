package repository

import (
	"database/sql"
	"fmt"
	"time"

	"examengine/internal/database"
	"examengine/internal/models"
)

// ProgressRepository handles database operations for per-user question
// mastery tracking
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Record registers one answer against a user's lifetime history with a
// question. The first record sets first_try_correct once and for all;
// later records only increment the attempt counter, so mastery never
// regresses. Concurrent first records race on the unique constraint and
// the loser falls through to the increment.
func (r *ProgressRepository) Record(userID, questionID int64, correct bool) error {
	insert := `
		INSERT INTO user_question_progress (user_id, question_id, attempts, first_try_correct, last_attempted)
		VALUES (?, ?, 1, ?, ?)
	`
	_, err := r.db.Exec(insert, userID, questionID, correct, time.Now())
	if err == nil {
		return nil
	}
	if !database.IsUniqueViolation(err) {
		return fmt.Errorf("failed to insert progress: %w", err)
	}

	update := `
		UPDATE user_question_progress
		SET attempts = attempts + 1, last_attempted = ?
		WHERE user_id = ? AND question_id = ?
	`
	_, err = r.db.Exec(update, time.Now(), userID, questionID)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// Get retrieves a user's progress on one question
func (r *ProgressRepository) Get(userID, questionID int64) (*models.QuestionProgress, error) {
	query := `
		SELECT id, user_id, question_id, attempts, first_try_correct, last_attempted
		FROM user_question_progress
		WHERE user_id = ? AND question_id = ?
	`
	p := &models.QuestionProgress{}
	err := r.db.QueryRow(query, userID, questionID).Scan(
		&p.ID, &p.UserID, &p.QuestionID, &p.Attempts, &p.FirstTryCorrect, &p.LastAttempted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return p, nil
}

// MasteredIDs returns the ids of all questions the user has mastered,
// sorted by id
func (r *ProgressRepository) MasteredIDs(userID int64) ([]int64, error) {
	query := `
		SELECT question_id
		FROM user_question_progress
		WHERE user_id = ? AND first_try_correct = ?
		ORDER BY question_id
	`
	rows, err := r.db.Query(query, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query mastered ids: %w", err)
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

// ProgressSummary aggregates a user's mastery state
type ProgressSummary struct {
	QuestionsSeen int
	Mastered      int
}

// SummaryForUser returns seen and mastered question counts
func (r *ProgressRepository) SummaryForUser(userID int64) (*ProgressSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN first_try_correct = ? THEN 1 ELSE 0 END), 0)
		FROM user_question_progress
		WHERE user_id = ?
	`
	s := &ProgressSummary{}
	err := r.db.QueryRow(query, true, userID).Scan(&s.QuestionsSeen, &s.Mastered)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize progress: %w", err)
	}
	return s, nil
}
