package repository

import (
	"database/sql"
	"fmt"
	"time"

	"examengine/internal/database"
	"examengine/internal/models"
)

// DailyTestRepository handles database operations for the shared daily
// test. The unique constraint on test_date guarantees one set per day.
type DailyTestRepository struct {
	db *database.DB
}

// NewDailyTestRepository creates a new daily test repository
func NewDailyTestRepository(db *database.DB) *DailyTestRepository {
	return &DailyTestRepository{db: db}
}

// GetByDate retrieves the daily test for a calendar date
func (r *DailyTestRepository) GetByDate(date string) (*models.DailyTest, error) {
	query := `
		SELECT id, test_date, created_at
		FROM daily_tests
		WHERE test_date = ?
	`
	dt := &models.DailyTest{}
	err := r.db.QueryRow(query, date).Scan(&dt.ID, &dt.TestDate, &dt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily test: %w", err)
	}
	return dt, nil
}

// CreateWithQuestions creates the daily test for a date and its ordered
// question set in one transaction. A concurrent create for the same
// date loses on the unique constraint; callers detect that with
// database.IsUniqueViolation and re-read the winner.
func (r *DailyTestRepository) CreateWithQuestions(date string, questionIDs []int64) (*models.DailyTest, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := tx.ExecReturningID("INSERT INTO daily_tests (test_date) VALUES (?)", date)
	if err != nil {
		return nil, err
	}

	for i, qid := range questionIDs {
		_, err := tx.Exec(
			"INSERT INTO daily_test_questions (daily_test_id, question_id, position) VALUES (?, ?, ?)",
			id, qid, i)
		if err != nil {
			return nil, fmt.Errorf("failed to insert daily test question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit daily test: %w", err)
	}

	return &models.DailyTest{ID: id, TestDate: date, CreatedAt: time.Now()}, nil
}

// GetOrCreate returns the daily test for a date, creating it with the
// given questions when absent. Losing a creation race falls back to
// reading the winner's set.
func (r *DailyTestRepository) GetOrCreate(date string, questionIDs []int64) (*models.DailyTest, error) {
	dt, err := r.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if dt != nil {
		return dt, nil
	}

	dt, err = r.CreateWithQuestions(date, questionIDs)
	if err == nil {
		return dt, nil
	}
	if !database.IsUniqueViolation(err) {
		return nil, err
	}

	dt, err = r.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, fmt.Errorf("daily test for %s vanished after creation race", date)
	}
	return dt, nil
}

// QuestionIDs returns the daily test's question ids in position order
func (r *DailyTestRepository) QuestionIDs(dailyTestID int64) ([]int64, error) {
	query := `
		SELECT question_id
		FROM daily_test_questions
		WHERE daily_test_id = ?
		ORDER BY position
	`
	rows, err := r.db.Query(query, dailyTestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily test questions: %w", err)
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
