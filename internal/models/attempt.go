package models

import "time"

// AttemptMode distinguishes the three quiz modes sharing the attempt lifecycle
type AttemptMode string

// Quiz modes
const (
	ModeFlashcard AttemptMode = "flashcard"
	ModeFullTest  AttemptMode = "full_test"
	ModeDaily     AttemptMode = "daily"
)

// IsValid reports whether the mode is one of the three quiz modes
func (m AttemptMode) IsValid() bool {
	switch m {
	case ModeFlashcard, ModeFullTest, ModeDaily:
		return true
	}
	return false
}

// Flashcard question statuses
const (
	StatusPending = "pending"
	StatusCorrect = "correct"
)

// Attempt is a single run of a quiz mode by one user. Its question list is
// locked at creation; once Completed it rejects further answers.
type Attempt struct {
	ID              int64
	UserID          int64
	Mode            AttemptMode
	DeckID          *int64
	DailyTestID     *int64
	TotalQuestions  int
	CorrectCount    int
	WrongCount      int
	UnansweredCount int
	Score           float64
	NegativeMarks   float64
	FinalScore      float64
	Completed       bool
	StartedAt       time.Time
	CompletedAt     *time.Time
}

// AttemptQuestion is one slot in an attempt's locked question list.
// Position carries the draw order; for flashcard sessions it doubles as
// the requeue order key and Status tracks pending/correct.
type AttemptQuestion struct {
	ID              int64
	AttemptID       int64
	QuestionID      int64
	Position        int
	Status          string
	LastAttemptedAt *time.Time
}

// Answer records the latest submitted option for one (attempt, question)
// pair. It is upsertable until the attempt completes.
type Answer struct {
	ID             int64
	AttemptID      int64
	QuestionID     int64
	SelectedOption Option
	IsCorrect      bool
	AnsweredAt     time.Time
}
