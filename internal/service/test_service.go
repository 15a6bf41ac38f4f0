package service

import (
	"examengine/internal/models"
	"examengine/internal/repository"
	"examengine/internal/selection"
)

// TestService runs full-length tests: chapter-weighted generation from
// the whole bank, answer upserts until submit, negative marking and a
// per-chapter breakdown at the end.
type TestService struct {
	attempts  *repository.AttemptRepository
	questions *repository.QuestionRepository
	core      *AttemptService
	engine    *selection.Engine
}

// NewTestService creates a new test service
func NewTestService(attempts *repository.AttemptRepository, questions *repository.QuestionRepository, core *AttemptService, engine *selection.Engine) *TestService {
	return &TestService{attempts: attempts, questions: questions, core: core, engine: engine}
}

// Start generates a test of the given size (0 means the default) and
// locks its question order
func (s *TestService) Start(userID int64, total int) (*models.Attempt, []models.Question, error) {
	spec := TestQuotaSpec(total)

	ids, err := s.engine.Select(s.questions, spec, nil)
	if err != nil {
		return nil, nil, err
	}

	attempt, err := s.attempts.CreateAttempt(userID, models.ModeFullTest, nil, nil, ids)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.questions.GetByIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	return attempt, questions, nil
}

// Answer records one answer; re-answering before submit overwrites
func (s *TestService) Answer(userID, attemptID, questionID int64, option models.Option) (*AnswerResult, error) {
	return s.core.Answer(userID, attemptID, questionID, option)
}

// TestResult is a submitted test's full scorecard
type TestResult struct {
	AttemptID        int64          `json:"attempt_id"`
	TotalQuestions   int            `json:"total_questions"`
	CorrectCount     int            `json:"correct_count"`
	WrongCount       int            `json:"wrong_count"`
	UnansweredCount  int            `json:"unanswered_count"`
	Score            float64        `json:"score"`
	NegativeMarks    float64        `json:"negative_marks"`
	FinalScore       float64        `json:"final_score"`
	ChapterBreakdown []ChapterScore `json:"chapter_breakdown"`
}

// Submit closes a test attempt, applies negative marking and builds the
// per-chapter breakdown
func (s *TestService) Submit(userID, attemptID int64) (*TestResult, error) {
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

	score, negative, final := TestScore(correct, wrong)

	breakdown, err := s.chapterBreakdown(attemptID)
	if err != nil {
		return nil, err
	}

	if err := s.attempts.CompleteAttempt(attemptID, correct, wrong, unanswered, score, negative, final); err != nil {
		return nil, err
	}

	return &TestResult{
		AttemptID:        attemptID,
		TotalQuestions:   attempt.TotalQuestions,
		CorrectCount:     correct,
		WrongCount:       wrong,
		UnansweredCount:  unanswered,
		Score:            score,
		NegativeMarks:    negative,
		FinalScore:       final,
		ChapterBreakdown: breakdown,
	}, nil
}

// chapterBreakdown scores every chapter present in the attempt,
// counting unanswered questions but never penalizing them
func (s *TestService) chapterBreakdown(attemptID int64) ([]ChapterScore, error) {
	slots, err := s.attempts.Questions(attemptID)
	if err != nil {
		return nil, err
	}

	answers, err := s.attempts.AnswersFor(attemptID)
	if err != nil {
		return nil, err
	}
	answerByQuestion := make(map[int64]models.Answer, len(answers))
	for _, a := range answers {
		answerByQuestion[a.QuestionID] = a
	}

	ids := make([]int64, len(slots))
	for i, slot := range slots {
		ids[i] = slot.QuestionID
	}
	questions, err := s.questions.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*ChapterScore)
	var order []string
	for _, q := range questions {
		cs, ok := stats[q.Chapter]
		if !ok {
			cs = &ChapterScore{Chapter: q.Chapter}
			stats[q.Chapter] = cs
			order = append(order, q.Chapter)
		}
		cs.Total++

		a, answered := answerByQuestion[q.ID]
		switch {
		case !answered:
			cs.Unanswered++
		case a.IsCorrect:
			cs.Correct++
		default:
			cs.Wrong++
		}
	}

	breakdown := make([]ChapterScore, 0, len(order))
	for _, chapter := range order {
		cs := stats[chapter]
		cs.Score = Round2(float64(cs.Correct)*MarksPerCorrect - float64(cs.Wrong)*NegativeMarkPerWrong)
		breakdown = append(breakdown, *cs)
	}
	return breakdown, nil
}

// History returns the user's past test attempts, newest first
func (s *TestService) History(userID int64, limit int) ([]models.Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.attempts.ListForUser(userID, models.ModeFullTest, limit)
}
