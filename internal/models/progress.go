package models

import "time"

// QuestionProgress tracks a user's lifetime history with one question.
// FirstTryCorrect is set only when the very first recorded attempt was
// correct and is never unset; deck generation excludes mastered questions.
type QuestionProgress struct {
	ID              int64
	UserID          int64
	QuestionID      int64
	Attempts        int
	FirstTryCorrect bool
	LastAttempted   time.Time
}

// Mastered reports whether the question counts as known material
func (p *QuestionProgress) Mastered() bool {
	return p.FirstTryCorrect
}
