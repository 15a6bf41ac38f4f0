package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"examengine/internal/database"
	"examengine/internal/models"
	"examengine/internal/repository"
	"examengine/internal/validation"
)

// ErrImportFormat marks structural CSV problems (bad headers, empty
// file) that abort an import before any row is processed
var ErrImportFormat = errors.New("invalid csv format")

// RequiredHeaders is the exact header row a question CSV must carry,
// in this order
var RequiredHeaders = []string{
	"question_text", "option_a", "option_b", "option_c", "option_d",
	"correct_option", "explanation", "chapter", "category", "difficulty",
	"deck_name",
}

// ImportResult summarizes one bulk import
type ImportResult struct {
	TotalRows         int      `json:"total_rows"`
	Inserted          int      `json:"inserted"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	Errors            []string `json:"errors"`
	DecksCreated      []string `json:"decks_created"`
}

// ImportService loads question CSVs into the master bank and builds
// the immutable decks they describe
type ImportService struct {
	db        *database.DB
	questions *repository.QuestionRepository
	decks     *repository.DeckRepository
}

// NewImportService creates a new import service
func NewImportService(db *database.DB, questions *repository.QuestionRepository, decks *repository.DeckRepository) *ImportService {
	return &ImportService{db: db, questions: questions, decks: decks}
}

type importRow struct {
	question models.Question
	deckName string
}

// ImportCSV parses, validates and loads a question CSV. Structural
// problems abort the whole import; per-row validation errors are
// collected (1-based row numbers, header = row 1) while the remaining
// rows load. Duplicate question texts are skipped but still linked
// into the new decks. Question inserts run in one transaction; each
// deck is then created atomically with name versioning on collision.
func (s *ImportService) ImportCSV(r io.Reader) (*ImportResult, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{TotalRows: len(rows), Errors: []string{}, DecksCreated: []string{}}

	var valid []importRow
	for i, row := range rows {
		// Header is row 1, first data row is row 2.
		rowNum := i + 2
		parsed, rowErrs := parseRow(row)
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, strings.Join(rowErrs, "; ")))
			continue
		}
		valid = append(valid, parsed)
	}

	if err := s.insertQuestions(valid, result); err != nil {
		return nil, err
	}
	if err := s.createDecks(valid, result); err != nil {
		return nil, err
	}

	return result, nil
}

// insertQuestions loads all new question rows in one transaction,
// counting duplicates against the bank and within the file
func (s *ImportService) insertQuestions(valid []importRow, result *ImportResult) error {
	if len(valid) == 0 {
		return nil
	}

	texts := make([]string, len(valid))
	for i, row := range valid {
		texts[i] = row.question.Text
	}
	existing, err := s.questions.ExistingTexts(texts)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range valid {
		if existing[row.question.Text] {
			result.DuplicatesSkipped++
			continue
		}
		q := row.question
		if _, err := s.questions.Insert(tx, &q); err != nil {
			return err
		}
		existing[row.question.Text] = true
		result.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

// createDecks groups rows by deck name (first-seen order) and creates
// one deck per name, linking duplicates by their existing bank ids
func (s *ImportService) createDecks(valid []importRow, result *ImportResult) error {
	if len(valid) == 0 {
		return nil
	}

	texts := make([]string, len(valid))
	for i, row := range valid {
		texts[i] = row.question.Text
	}
	idByText, err := s.questions.IDsByTexts(texts)
	if err != nil {
		return err
	}

	groups := make(map[string][]int64)
	var order []string
	for _, row := range valid {
		qid, ok := idByText[row.question.Text]
		if !ok {
			continue
		}
		ids, seen := groups[row.deckName]
		if !seen {
			order = append(order, row.deckName)
		}
		if !containsID(ids, qid) {
			groups[row.deckName] = append(ids, qid)
		}
	}

	for _, name := range order {
		deck, err := s.decks.CreateDeckWithQuestions(name, groups[name])
		if err != nil {
			return err
		}
		result.DecksCreated = append(result.DecksCreated, deck.Name)
	}
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// readCSV reads and validates the header, returning the data rows as
// header-keyed maps
func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrImportFormat)
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}
	if err := checkHeaders(headers); err != nil {
		return nil, err
	}

	if len(records) == 1 {
		return nil, fmt.Errorf("%w: no data rows", ErrImportFormat)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// checkHeaders requires the exact expected header row, in order
func checkHeaders(headers []string) error {
	if equalStrings(headers, RequiredHeaders) {
		return nil
	}

	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}
	want := make(map[string]bool, len(RequiredHeaders))
	for _, h := range RequiredHeaders {
		want[h] = true
	}

	var missing, extra []string
	for _, h := range RequiredHeaders {
		if !have[h] {
			missing = append(missing, h)
		}
	}
	for _, h := range headers {
		if !want[h] {
			extra = append(extra, h)
		}
	}

	msg := "header mismatch"
	if len(missing) > 0 {
		msg += fmt.Sprintf(", missing: %v", missing)
	}
	if len(extra) > 0 {
		msg += fmt.Sprintf(", extra: %v", extra)
	}
	return fmt.Errorf("%w: %s, expected exactly %v", ErrImportFormat, msg, RequiredHeaders)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// parseRow validates one CSV row into a question plus its deck name
func parseRow(row map[string]string) (importRow, []string) {
	var errs []string

	text := strings.TrimSpace(row["question_text"])
	if text == "" {
		errs = append(errs, "question_text is empty")
	}

	option := strings.ToUpper(strings.TrimSpace(row["correct_option"]))
	if !models.Option(option).IsValid() {
		errs = append(errs, fmt.Sprintf("correct_option %q not in A/B/C/D", option))
	}

	difficulty := 0
	diffStr := strings.TrimSpace(row["difficulty"])
	if d, err := strconv.Atoi(diffStr); err != nil {
		errs = append(errs, fmt.Sprintf("difficulty %q is not a number", diffStr))
	} else if err := validation.ValidateDifficulty(d); err != nil {
		errs = append(errs, err.Error())
	} else {
		difficulty = d
	}

	chapter := strings.TrimSpace(row["chapter"])
	if chapter == "" {
		errs = append(errs, "chapter is empty")
	}

	category := strings.ToLower(strings.TrimSpace(row["category"]))
	if err := validation.ValidateCategory(category); err != nil {
		errs = append(errs, err.Error())
	}

	deckName := strings.TrimSpace(row["deck_name"])
	if deckName == "" {
		errs = append(errs, "deck_name is empty")
	}

	if len(errs) > 0 {
		return importRow{}, errs
	}

	return importRow{
		question: models.Question{
			Text:          text,
			OptionA:       strings.TrimSpace(row["option_a"]),
			OptionB:       strings.TrimSpace(row["option_b"]),
			OptionC:       strings.TrimSpace(row["option_c"]),
			OptionD:       strings.TrimSpace(row["option_d"]),
			CorrectOption: models.Option(option),
			Explanation:   strings.TrimSpace(row["explanation"]),
			Chapter:       chapter,
			Category:      category,
			Difficulty:    difficulty,
		},
		deckName: deckName,
	}, nil
}
