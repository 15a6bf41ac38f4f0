package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"examengine/internal/database"
	"examengine/internal/models"
	"examengine/internal/selection"
)

// QuestionRepository handles database operations for the question bank
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Insert adds a question to the bank. It accepts a DBTX so bulk import
// can run many inserts inside one transaction.
func (r *QuestionRepository) Insert(dbtx database.DBTX, q *models.Question) (int64, error) {
	query := `
		INSERT INTO questions (question_text, option_a, option_b, option_c, option_d,
		                       correct_option, explanation, chapter, category, difficulty)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := dbtx.ExecReturningID(query,
		q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD,
		string(q.CorrectOption), q.Explanation, q.Chapter, q.Category, q.Difficulty)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}
	return id, nil
}

// GetByID retrieves a single question
func (r *QuestionRepository) GetByID(id int64) (*models.Question, error) {
	query := selectQuestionColumns + " WHERE id = ?"
	q := &models.Question{}
	err := scanQuestion(r.db.QueryRow(query, id), q)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return q, nil
}

// GetByIDs retrieves questions for the given ids, preserving the order
// of the input slice. Missing ids are silently skipped.
func (r *QuestionRepository) GetByIDs(ids []int64) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := selectQuestionColumns + " WHERE id IN (" + placeholders(len(ids)) + ")"
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]models.Question, len(ids))
	for rows.Next() {
		var q models.Question
		if err := scanQuestionRows(rows, &q); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		byID[q.ID] = q
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

// ExistingTexts returns which of the given question texts are already in
// the bank. Used by bulk import to skip duplicates.
func (r *QuestionRepository) ExistingTexts(texts []string) (map[string]bool, error) {
	existing := make(map[string]bool)

	// Chunked so the IN list stays within driver parameter limits.
	const chunkSize = 500
	for start := 0; start < len(texts); start += chunkSize {
		end := start + chunkSize
		if end > len(texts) {
			end = len(texts)
		}
		chunk := texts[start:end]

		query := "SELECT question_text FROM questions WHERE question_text IN (" + placeholders(len(chunk)) + ")"
		args := make([]interface{}, len(chunk))
		for i, t := range chunk {
			args[i] = t
		}

		rows, err := r.db.Query(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query existing texts: %w", err)
		}
		for rows.Next() {
			var text string
			if err := rows.Scan(&text); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan text: %w", err)
			}
			existing[text] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return existing, nil
}

// IDsByTexts maps question texts to their ids. Bulk import uses this to
// link duplicate rows into new decks.
func (r *QuestionRepository) IDsByTexts(texts []string) (map[string]int64, error) {
	ids := make(map[string]int64)

	const chunkSize = 500
	for start := 0; start < len(texts); start += chunkSize {
		end := start + chunkSize
		if end > len(texts) {
			end = len(texts)
		}
		chunk := texts[start:end]

		query := "SELECT id, question_text FROM questions WHERE question_text IN (" + placeholders(len(chunk)) + ")"
		args := make([]interface{}, len(chunk))
		for i, t := range chunk {
			args[i] = t
		}

		rows, err := r.db.Query(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query ids by text: %w", err)
		}
		for rows.Next() {
			var id int64
			var text string
			if err := rows.Scan(&id, &text); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan id: %w", err)
			}
			ids[text] = id
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return ids, nil
}

// IDsMatching returns the ids of questions matching the filter, minus
// the excluded ids, ordered by id. The stable ordering is what makes
// fixed-seed selection deterministic.
func (r *QuestionRepository) IDsMatching(f selection.Filter, exclude []int64) ([]int64, error) {
	var conditions []string
	var args []interface{}

	if len(f.Chapters) > 0 {
		conditions = append(conditions, "chapter IN ("+placeholders(len(f.Chapters))+")")
		for _, c := range f.Chapters {
			args = append(args, c)
		}
	}
	if len(f.Categories) > 0 {
		conditions = append(conditions, "category IN ("+placeholders(len(f.Categories))+")")
		for _, c := range f.Categories {
			args = append(args, c)
		}
	}
	if len(exclude) > 0 {
		conditions = append(conditions, "id NOT IN ("+placeholders(len(exclude))+")")
		for _, id := range exclude {
			args = append(args, id)
		}
	}

	query := "SELECT id FROM questions"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matching ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountTotal returns the number of questions in the bank
func (r *QuestionRepository) CountTotal() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// CountByChapter returns question counts grouped by chapter
func (r *QuestionRepository) CountByChapter() (map[string]int, error) {
	return r.countGrouped("chapter")
}

// CountByCategory returns question counts grouped by category
func (r *QuestionRepository) CountByCategory() (map[string]int, error) {
	return r.countGrouped("category")
}

func (r *QuestionRepository) countGrouped(column string) (map[string]int, error) {
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM questions GROUP BY %s", column, column)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

const selectQuestionColumns = `
	SELECT id, question_text, option_a, option_b, option_c, option_d,
	       correct_option, COALESCE(explanation, ''), chapter, category, difficulty, created_at
	FROM questions`

func scanQuestion(row *sql.Row, q *models.Question) error {
	var correct string
	err := row.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&correct, &q.Explanation, &q.Chapter, &q.Category, &q.Difficulty, &q.CreatedAt)
	q.CorrectOption = models.Option(correct)
	return err
}

func scanQuestionRows(rows *sql.Rows, q *models.Question) error {
	var correct string
	err := rows.Scan(&q.ID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD,
		&correct, &q.Explanation, &q.Chapter, &q.Category, &q.Difficulty, &q.CreatedAt)
	q.CorrectOption = models.Option(correct)
	return err
}

// placeholders returns n comma-separated ? markers for an IN clause
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
