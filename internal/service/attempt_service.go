package service

import (
	"examengine/internal/models"
	"examengine/internal/repository"
)

// AnswerResult is what the caller learns after answering one question.
// PendingCount and SessionDone only carry meaning for flashcard
// attempts, where wrong answers keep the question in the queue.
type AnswerResult struct {
	Correct       bool          `json:"correct"`
	CorrectOption models.Option `json:"correct_option"`
	Explanation   string        `json:"explanation"`
	PendingCount  int           `json:"pending_count,omitempty"`
	SessionDone   bool          `json:"completed"`
}

// AttemptService is the mode-independent core of the three quiz modes:
// ownership and completion checks, answer recording, mastery tracking.
// Mode-specific behavior hangs off the attempt's mode: flashcard
// attempts requeue wrong answers and complete themselves when the queue
// drains, test and daily attempts wait for an explicit submit.
type AttemptService struct {
	attempts  *repository.AttemptRepository
	questions *repository.QuestionRepository
	progress  *ProgressService
}

// NewAttemptService creates the shared attempt core
func NewAttemptService(attempts *repository.AttemptRepository, questions *repository.QuestionRepository, progress *ProgressService) *AttemptService {
	return &AttemptService{attempts: attempts, questions: questions, progress: progress}
}

// Answer records a user's answer to one question of an attempt. The
// answer is graded against the bank at call time, stored (latest wins
// until submit) and fed into mastery tracking.
func (s *AttemptService) Answer(userID, attemptID, questionID int64, option models.Option) (*AnswerResult, error) {
	if !option.IsValid() {
		return nil, ErrInvalidOption
	}

	attempt, err := s.attempts.GetAttemptForUser(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	if attempt.Completed {
		return nil, ErrAttemptCompleted
	}

	slot, err := s.attempts.Slot(attemptID, questionID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrQuestionNotInAttempt
	}

	question, err := s.questions.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	isCorrect := option == question.CorrectOption

	if err := s.attempts.UpsertAnswer(attemptID, questionID, option, isCorrect); err != nil {
		return nil, err
	}
	if err := s.progress.RecordAnswer(userID, questionID, isCorrect); err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Correct:       isCorrect,
		CorrectOption: question.CorrectOption,
		Explanation:   question.Explanation,
	}

	if attempt.Mode == models.ModeFlashcard {
		if err := s.settleFlashcardSlot(attempt, questionID, isCorrect, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// settleFlashcardSlot applies the requeue rule and closes the session
// when the queue drains
func (s *AttemptService) settleFlashcardSlot(attempt *models.Attempt, questionID int64, isCorrect bool, result *AnswerResult) error {
	if isCorrect {
		if err := s.attempts.MarkQuestionCorrect(attempt.ID, questionID); err != nil {
			return err
		}
	} else {
		if err := s.attempts.Requeue(attempt.ID, questionID); err != nil {
			return err
		}
	}

	pending, err := s.attempts.PendingCount(attempt.ID)
	if err != nil {
		return err
	}
	result.PendingCount = pending

	if pending == 0 {
		total := attempt.TotalQuestions
		score := PercentScore(total, total)
		if err := s.attempts.CompleteAttempt(attempt.ID, total, 0, 0, score, 0, score); err != nil {
			return err
		}
		result.SessionDone = true
	}
	return nil
}

// Tally counts an attempt's correct, wrong and unanswered questions
// from its recorded answers
func (s *AttemptService) Tally(attempt *models.Attempt) (correct, wrong, unanswered int, err error) {
	answers, err := s.attempts.AnswersFor(attempt.ID)
	if err != nil {
		return 0, 0, 0, err
	}

	for _, a := range answers {
		if a.IsCorrect {
			correct++
		} else {
			wrong++
		}
	}
	unanswered = attempt.TotalQuestions - len(answers)
	return correct, wrong, unanswered, nil
}

// GetOwned fetches an attempt and enforces ownership
func (s *AttemptService) GetOwned(userID, attemptID int64) (*models.Attempt, error) {
	attempt, err := s.attempts.GetAttemptForUser(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}
