package handlers

import (
	"time"

	"examengine/internal/models"
)

// questionBrief is the question shape returned while a session is live.
// It never carries the correct option or the explanation; those are only
// revealed by the answer endpoint.
type questionBrief struct {
	ID         int64  `json:"id"`
	Text       string `json:"question_text"`
	OptionA    string `json:"option_a"`
	OptionB    string `json:"option_b"`
	OptionC    string `json:"option_c"`
	OptionD    string `json:"option_d"`
	Chapter    string `json:"chapter"`
	Category   string `json:"category"`
	Difficulty int    `json:"difficulty"`
}

func toQuestionBrief(q *models.Question) questionBrief {
	return questionBrief{
		ID:         q.ID,
		Text:       q.Text,
		OptionA:    q.OptionA,
		OptionB:    q.OptionB,
		OptionC:    q.OptionC,
		OptionD:    q.OptionD,
		Chapter:    q.Chapter,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

func toQuestionBriefs(qs []models.Question) []questionBrief {
	briefs := make([]questionBrief, len(qs))
	for i := range qs {
		briefs[i] = toQuestionBrief(&qs[i])
	}
	return briefs
}

type userView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserView(u *models.User) userView {
	return userView{ID: u.ID, Email: u.Email, Role: u.Role}
}

type deckView struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	IsNew         bool   `json:"is_new"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     string `json:"created_at"`
}

func toDeckView(d *models.Deck) deckView {
	return deckView{
		ID:            d.ID,
		Name:          d.Name,
		IsNew:         d.IsNew,
		QuestionCount: d.QuestionCount,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}

func toDeckViews(decks []models.Deck) []deckView {
	views := make([]deckView, len(decks))
	for i := range decks {
		views[i] = toDeckView(&decks[i])
	}
	return views
}

type attemptView struct {
	ID              int64   `json:"id"`
	Mode            string  `json:"mode"`
	DeckID          *int64  `json:"deck_id,omitempty"`
	DailyTestID     *int64  `json:"daily_test_id,omitempty"`
	TotalQuestions  int     `json:"total_questions"`
	CorrectCount    int     `json:"correct_count"`
	WrongCount      int     `json:"wrong_count"`
	UnansweredCount int     `json:"unanswered_count"`
	Score           float64 `json:"score"`
	NegativeMarks   float64 `json:"negative_marks"`
	FinalScore      float64 `json:"final_score"`
	Completed       bool    `json:"completed"`
	StartedAt       string  `json:"started_at"`
	CompletedAt     *string `json:"completed_at,omitempty"`
}

func toAttemptView(a *models.Attempt) attemptView {
	v := attemptView{
		ID:              a.ID,
		Mode:            string(a.Mode),
		DeckID:          a.DeckID,
		DailyTestID:     a.DailyTestID,
		TotalQuestions:  a.TotalQuestions,
		CorrectCount:    a.CorrectCount,
		WrongCount:      a.WrongCount,
		UnansweredCount: a.UnansweredCount,
		Score:           a.Score,
		NegativeMarks:   a.NegativeMarks,
		FinalScore:      a.FinalScore,
		Completed:       a.Completed,
		StartedAt:       a.StartedAt.Format(time.RFC3339),
	}
	if a.CompletedAt != nil {
		s := a.CompletedAt.Format(time.RFC3339)
		v.CompletedAt = &s
	}
	return v
}

func toAttemptViews(attempts []models.Attempt) []attemptView {
	views := make([]attemptView, len(attempts))
	for i := range attempts {
		views[i] = toAttemptView(&attempts[i])
	}
	return views
}
