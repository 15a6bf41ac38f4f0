package service

import (
	"fmt"
	"time"

	"examengine/internal/database"
	"examengine/internal/models"
	"examengine/internal/repository"
	"examengine/internal/selection"
)

// DailyService runs the shared daily test: one fixed 10-question set
// per calendar date, identical for every user, one attempt per user per
// date.
type DailyService struct {
	daily     *repository.DailyTestRepository
	attempts  *repository.AttemptRepository
	questions *repository.QuestionRepository
	core      *AttemptService
	engine    *selection.Engine
}

// NewDailyService creates a new daily test service
func NewDailyService(daily *repository.DailyTestRepository, attempts *repository.AttemptRepository, questions *repository.QuestionRepository, core *AttemptService, engine *selection.Engine) *DailyService {
	return &DailyService{daily: daily, attempts: attempts, questions: questions, core: core, engine: engine}
}

// DailySession is a started or resumed daily test
type DailySession struct {
	DailyTestID int64
	Attempt     *models.Attempt
	TestDate    string
	Questions   []models.Question
}

// Start returns the user's daily attempt for the date, generating the
// shared question set on first access. An empty date means today.
// Everyone hitting the same date gets the same questions in the same
// order.
func (s *DailyService) Start(userID int64, date string) (*DailySession, error) {
	if date == "" {
		date = time.Now().Format(models.DateFormat)
	} else if _, err := time.Parse(models.DateFormat, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	dt, err := s.getOrCreateDailyTest(date)
	if err != nil {
		return nil, err
	}

	attempt, err := s.getOrCreateAttempt(dt.ID, userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.daily.QuestionIDs(dt.ID)
	if err != nil {
		return nil, err
	}
	questions, err := s.questions.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	return &DailySession{
		DailyTestID: dt.ID,
		Attempt:     attempt,
		TestDate:    date,
		Questions:   questions,
	}, nil
}

func (s *DailyService) getOrCreateDailyTest(date string) (*models.DailyTest, error) {
	existing, err := s.daily.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	ids, err := s.engine.Select(s.questions, DailyQuotaSpec(), nil)
	if err != nil {
		return nil, err
	}

	return s.daily.GetOrCreate(date, ids)
}

// getOrCreateAttempt returns the user's attempt for a daily test,
// creating it on first access. A concurrent first access loses on the
// (daily_test_id, user_id) constraint and adopts the winner.
func (s *DailyService) getOrCreateAttempt(dailyTestID, userID int64) (*models.Attempt, error) {
	attempt, err := s.attempts.GetAttemptByDailyTest(dailyTestID, userID)
	if err != nil {
		return nil, err
	}
	if attempt != nil {
		return attempt, nil
	}

	ids, err := s.daily.QuestionIDs(dailyTestID)
	if err != nil {
		return nil, err
	}

	attempt, err = s.attempts.CreateAttempt(userID, models.ModeDaily, nil, &dailyTestID, ids)
	if err == nil {
		return attempt, nil
	}
	if !database.IsUniqueViolation(err) {
		return nil, err
	}

	attempt, err = s.attempts.GetAttemptByDailyTest(dailyTestID, userID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, ErrAttemptNotFound
	}
	return attempt, nil
}

// Answer records one daily test answer; re-answering before submit
// overwrites
func (s *DailyService) Answer(userID, attemptID, questionID int64, option models.Option) (*AnswerResult, error) {
	return s.core.Answer(userID, attemptID, questionID, option)
}

// DailyResult is a submitted daily test's scorecard
type DailyResult struct {
	AttemptID    int64   `json:"attempt_id"`
	Total        int     `json:"total"`
	CorrectCount int     `json:"correct_count"`
	WrongCount   int     `json:"wrong_count"`
	Unanswered   int     `json:"unanswered"`
	Score        float64 `json:"score"`
}

// Submit closes a daily attempt and scores it as a percentage
func (s *DailyService) Submit(userID, attemptID int64) (*DailyResult, error) {
	attempt, err := s.core.GetOwned(userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed {
		return nil, ErrAttemptCompleted
	}

	correct, wrong, unanswered, err := s.core.Tally(attempt)
	if err != nil {
		return nil, err
	}

	score := PercentScore(correct, attempt.TotalQuestions)

	if err := s.attempts.CompleteAttempt(attemptID, correct, wrong, unanswered, score, 0, score); err != nil {
		return nil, err
	}

	return &DailyResult{
		AttemptID:    attemptID,
		Total:        attempt.TotalQuestions,
		CorrectCount: correct,
		WrongCount:   wrong,
		Unanswered:   unanswered,
		Score:        score,
	}, nil
}
