package repository

import (
	"database/sql"
	"fmt"
	"time"

	"examengine/internal/database"
	"examengine/internal/models"
)

// AttemptRepository handles database operations for quiz attempts of
// all three modes. An attempt's question list is written once at
// creation and never grows; flashcard requeues only move positions.
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// CreateAttempt inserts an attempt and its locked question list in one
// transaction. Positions follow the order of questionIDs. For daily
// attempts the unique (daily_test_id, user_id) constraint makes a
// duplicate create fail with a unique violation, which the caller
// resolves by re-reading the winner.
func (r *AttemptRepository) CreateAttempt(userID int64, mode models.AttemptMode, deckID, dailyTestID *int64, questionIDs []int64) (*models.Attempt, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO attempts (user_id, mode, deck_id, daily_test_id, total_questions)
		VALUES (?, ?, ?, ?, ?)
	`
	attemptID, err := tx.ExecReturningID(query, userID, string(mode), deckID, dailyTestID, len(questionIDs))
	if err != nil {
		return nil, err
	}

	for i, qid := range questionIDs {
		_, err := tx.Exec(
			"INSERT INTO attempt_questions (attempt_id, question_id, position) VALUES (?, ?, ?)",
			attemptID, qid, i)
		if err != nil {
			return nil, fmt.Errorf("failed to insert attempt question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit attempt: %w", err)
	}

	return &models.Attempt{
		ID:             attemptID,
		UserID:         userID,
		Mode:           mode,
		DeckID:         deckID,
		DailyTestID:    dailyTestID,
		TotalQuestions: len(questionIDs),
		StartedAt:      time.Now(),
	}, nil
}

// GetAttemptForUser retrieves an attempt owned by the given user
func (r *AttemptRepository) GetAttemptForUser(attemptID, userID int64) (*models.Attempt, error) {
	query := selectAttemptColumns + " WHERE id = ? AND user_id = ?"
	return r.scanAttempt(r.db.QueryRow(query, attemptID, userID))
}

// GetAttemptByDailyTest retrieves a user's attempt for a daily test
func (r *AttemptRepository) GetAttemptByDailyTest(dailyTestID, userID int64) (*models.Attempt, error) {
	query := selectAttemptColumns + " WHERE daily_test_id = ? AND user_id = ?"
	return r.scanAttempt(r.db.QueryRow(query, dailyTestID, userID))
}

// Questions returns the attempt's question slots ordered by position
func (r *AttemptRepository) Questions(attemptID int64) ([]models.AttemptQuestion, error) {
	query := `
		SELECT id, attempt_id, question_id, position, status, last_attempted_at
		FROM attempt_questions
		WHERE attempt_id = ?
		ORDER BY position
	`
	rows, err := r.db.Query(query, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt questions: %w", err)
	}
	defer rows.Close()

	var questions []models.AttemptQuestion
	for rows.Next() {
		var aq models.AttemptQuestion
		var lastAttempted sql.NullTime
		if err := rows.Scan(&aq.ID, &aq.AttemptID, &aq.QuestionID, &aq.Position, &aq.Status, &lastAttempted); err != nil {
			return nil, fmt.Errorf("failed to scan attempt question: %w", err)
		}
		if lastAttempted.Valid {
			aq.LastAttemptedAt = &lastAttempted.Time
		}
		questions = append(questions, aq)
	}
	return questions, rows.Err()
}

// Slot retrieves one question slot of an attempt, or nil when the
// question is not part of it
func (r *AttemptRepository) Slot(attemptID, questionID int64) (*models.AttemptQuestion, error) {
	query := `
		SELECT id, attempt_id, question_id, position, status, last_attempted_at
		FROM attempt_questions
		WHERE attempt_id = ? AND question_id = ?
	`
	aq := &models.AttemptQuestion{}
	var lastAttempted sql.NullTime
	err := r.db.QueryRow(query, attemptID, questionID).Scan(
		&aq.ID, &aq.AttemptID, &aq.QuestionID, &aq.Position, &aq.Status, &lastAttempted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt question: %w", err)
	}
	if lastAttempted.Valid {
		aq.LastAttemptedAt = &lastAttempted.Time
	}
	return aq, nil
}

// NextPending returns the pending slot with the lowest position, or nil
// when the queue is exhausted
func (r *AttemptRepository) NextPending(attemptID int64) (*models.AttemptQuestion, error) {
	query := `
		SELECT id, attempt_id, question_id, position, status, last_attempted_at
		FROM attempt_questions
		WHERE attempt_id = ? AND status = ?
		ORDER BY position
		LIMIT 1
	`
	aq := &models.AttemptQuestion{}
	var lastAttempted sql.NullTime
	err := r.db.QueryRow(query, attemptID, models.StatusPending).Scan(
		&aq.ID, &aq.AttemptID, &aq.QuestionID, &aq.Position, &aq.Status, &lastAttempted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next pending question: %w", err)
	}
	if lastAttempted.Valid {
		aq.LastAttemptedAt = &lastAttempted.Time
	}
	return aq, nil
}

// PendingCount returns how many slots are still pending
func (r *AttemptRepository) PendingCount(attemptID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM attempt_questions WHERE attempt_id = ? AND status = ?",
		attemptID, models.StatusPending).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending questions: %w", err)
	}
	return count, nil
}

// Requeue moves a question slot to the back of the flashcard queue by
// giving it a position one past the current maximum
func (r *AttemptRepository) Requeue(attemptID, questionID int64) error {
	// Read then write; a flashcard attempt only ever has one driver.
	var maxPosition int
	err := r.db.QueryRow(
		"SELECT COALESCE(MAX(position), 0) FROM attempt_questions WHERE attempt_id = ?",
		attemptID).Scan(&maxPosition)
	if err != nil {
		return fmt.Errorf("failed to read max position: %w", err)
	}

	query := `
		UPDATE attempt_questions
		SET position = ?, last_attempted_at = ?
		WHERE attempt_id = ? AND question_id = ?
	`
	_, err = r.db.Exec(query, maxPosition+1, time.Now(), attemptID, questionID)
	if err != nil {
		return fmt.Errorf("failed to requeue question: %w", err)
	}
	return nil
}

// MarkQuestionCorrect settles a flashcard slot
func (r *AttemptRepository) MarkQuestionCorrect(attemptID, questionID int64) error {
	query := `
		UPDATE attempt_questions
		SET status = ?, last_attempted_at = ?
		WHERE attempt_id = ? AND question_id = ?
	`
	_, err := r.db.Exec(query, models.StatusCorrect, time.Now(), attemptID, questionID)
	if err != nil {
		return fmt.Errorf("failed to mark question correct: %w", err)
	}
	return nil
}

// UpsertAnswer records the latest answer for an (attempt, question)
// pair. Concurrent first inserts race on the unique constraint; the
// loser retries as an update.
func (r *AttemptRepository) UpsertAnswer(attemptID, questionID int64, option models.Option, isCorrect bool) error {
	insert := `
		INSERT INTO attempt_answers (attempt_id, question_id, selected_option, is_correct)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(insert, attemptID, questionID, string(option), isCorrect)
	if err == nil {
		return nil
	}
	if !database.IsUniqueViolation(err) {
		return fmt.Errorf("failed to insert answer: %w", err)
	}

	update := `
		UPDATE attempt_answers
		SET selected_option = ?, is_correct = ?, answered_at = ?
		WHERE attempt_id = ? AND question_id = ?
	`
	_, err = r.db.Exec(update, string(option), isCorrect, time.Now(), attemptID, questionID)
	if err != nil {
		return fmt.Errorf("failed to update answer: %w", err)
	}
	return nil
}

// AnswersFor returns all recorded answers for an attempt
func (r *AttemptRepository) AnswersFor(attemptID int64) ([]models.Answer, error) {
	query := `
		SELECT id, attempt_id, question_id, selected_option, is_correct, answered_at
		FROM attempt_answers
		WHERE attempt_id = ?
		ORDER BY answered_at, id
	`
	rows, err := r.db.Query(query, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		var option string
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &option, &a.IsCorrect, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		a.SelectedOption = models.Option(option)
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// CompleteAttempt writes the final counters and score and locks the
// attempt against further answers
func (r *AttemptRepository) CompleteAttempt(attemptID int64, correct, wrong, unanswered int, score, negative, final float64) error {
	query := `
		UPDATE attempts
		SET correct_count = ?, wrong_count = ?, unanswered_count = ?,
		    score = ?, negative_marks = ?, final_score = ?,
		    completed = ?, completed_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query, correct, wrong, unanswered, score, negative, final, true, time.Now(), attemptID)
	if err != nil {
		return fmt.Errorf("failed to complete attempt: %w", err)
	}
	return nil
}

// ListForUser returns a user's attempts of one mode, newest first
func (r *AttemptRepository) ListForUser(userID int64, mode models.AttemptMode, limit int) ([]models.Attempt, error) {
	query := selectAttemptColumns + `
		WHERE user_id = ? AND mode = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID, string(mode), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		a, err := scanAttemptRows(rows)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, rows.Err()
}

// ModeStat is a per-mode aggregate over a user's completed attempts
type ModeStat struct {
	Mode          models.AttemptMode
	Count         int
	AvgFinalScore float64
	BestScore     float64
}

// StatsForUser aggregates a user's completed attempts by mode
func (r *AttemptRepository) StatsForUser(userID int64) ([]ModeStat, error) {
	query := `
		SELECT mode, COUNT(*), COALESCE(AVG(final_score), 0), COALESCE(MAX(final_score), 0)
		FROM attempts
		WHERE user_id = ? AND completed = ?
		GROUP BY mode
	`
	rows, err := r.db.Query(query, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt stats: %w", err)
	}
	defer rows.Close()

	var stats []ModeStat
	for rows.Next() {
		var s ModeStat
		var mode string
		if err := rows.Scan(&mode, &s.Count, &s.AvgFinalScore, &s.BestScore); err != nil {
			return nil, fmt.Errorf("failed to scan stat: %w", err)
		}
		s.Mode = models.AttemptMode(mode)
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

const selectAttemptColumns = `
	SELECT id, user_id, mode, deck_id, daily_test_id,
	       total_questions, correct_count, wrong_count, unanswered_count,
	       score, negative_marks, final_score, completed, started_at, completed_at
	FROM attempts`

func (r *AttemptRepository) scanAttempt(row *sql.Row) (*models.Attempt, error) {
	a := &models.Attempt{}
	var mode string
	var deckID, dailyTestID sql.NullInt64
	var completedAt sql.NullTime

	err := row.Scan(
		&a.ID, &a.UserID, &mode, &deckID, &dailyTestID,
		&a.TotalQuestions, &a.CorrectCount, &a.WrongCount, &a.UnansweredCount,
		&a.Score, &a.NegativeMarks, &a.FinalScore, &a.Completed, &a.StartedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	a.Mode = models.AttemptMode(mode)
	if deckID.Valid {
		a.DeckID = &deckID.Int64
	}
	if dailyTestID.Valid {
		a.DailyTestID = &dailyTestID.Int64
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return a, nil
}

func scanAttemptRows(rows *sql.Rows) (*models.Attempt, error) {
	a := &models.Attempt{}
	var mode string
	var deckID, dailyTestID sql.NullInt64
	var completedAt sql.NullTime

	err := rows.Scan(
		&a.ID, &a.UserID, &mode, &deckID, &dailyTestID,
		&a.TotalQuestions, &a.CorrectCount, &a.WrongCount, &a.UnansweredCount,
		&a.Score, &a.NegativeMarks, &a.FinalScore, &a.Completed, &a.StartedAt, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan attempt: %w", err)
	}

	a.Mode = models.AttemptMode(mode)
	if deckID.Valid {
		a.DeckID = &deckID.Int64
	}
	if dailyTestID.Valid {
		a.DailyTestID = &dailyTestID.Int64
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return a, nil
}
