package service

import (
	"examengine/internal/repository"
)

// ProgressService tracks per-user question mastery. A question is
// mastered when the user's very first recorded answer to it was
// correct; mastery never regresses and mastered questions stay out of
// generated decks.
type ProgressService struct {
	progress *repository.ProgressRepository
}

// NewProgressService creates a new progress service
func NewProgressService(progress *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progress: progress}
}

// RecordAnswer registers one answer in the user's lifetime history
func (s *ProgressService) RecordAnswer(userID, questionID int64, correct bool) error {
	return s.progress.Record(userID, questionID, correct)
}

// MasteredIDs returns the user's mastered question ids
func (s *ProgressService) MasteredIDs(userID int64) ([]int64, error) {
	return s.progress.MasteredIDs(userID)
}

// DeckResults summarizes a user's mastery over one deck's questions
type DeckResults struct {
	TotalQuestions  int     `json:"total_questions"`
	FirstTryCorrect int     `json:"first_try_correct"`
	AccuracyPercent float64 `json:"accuracy_percent"`
	TotalAttempts   int     `json:"total_attempts"`
	MasteryLevel    string  `json:"mastery_level"`
}

// Mastery level thresholds out of a 20-question deck
const (
	masteryThreshold = 18
	goodThreshold    = 14
)

// DeckResultsFor rates a user's performance across the given questions
func (s *ProgressService) DeckResultsFor(userID int64, questionIDs []int64) (*DeckResults, error) {
	results := &DeckResults{TotalQuestions: len(questionIDs)}

	for _, qid := range questionIDs {
		p, err := s.progress.Get(userID, qid)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		results.TotalAttempts += p.Attempts
		if p.Mastered() {
			results.FirstTryCorrect++
		}
	}

	if len(questionIDs) > 0 {
		results.AccuracyPercent = Round2(float64(results.FirstTryCorrect) / float64(len(questionIDs)) * 100)
	}

	switch {
	case results.FirstTryCorrect >= masteryThreshold:
		results.MasteryLevel = "Mastery"
	case results.FirstTryCorrect >= goodThreshold:
		results.MasteryLevel = "Good"
	default:
		results.MasteryLevel = "Needs Revision"
	}

	return results, nil
}

// Summary returns the user's overall seen/mastered counts
func (s *ProgressService) Summary(userID int64) (*repository.ProgressSummary, error) {
	return s.progress.SummaryForUser(userID)
}
