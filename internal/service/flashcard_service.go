package service

import (
	"examengine/internal/models"
	"examengine/internal/repository"
	"examengine/internal/selection"
)

// FlashcardService runs flashcard mastery sessions: a shuffled copy of
// a deck where correct answers retire a card and wrong answers push it
// to the back of the queue. A session is done when every card has been
// answered correctly; reopening a deck starts a fresh session.
type FlashcardService struct {
	attempts *repository.AttemptRepository
	decks    *repository.DeckRepository
	core     *AttemptService
	engine   *selection.Engine
}

// NewFlashcardService creates a new flashcard service
func NewFlashcardService(attempts *repository.AttemptRepository, decks *repository.DeckRepository, core *AttemptService, engine *selection.Engine) *FlashcardService {
	return &FlashcardService{attempts: attempts, decks: decks, core: core, engine: engine}
}

// Start creates a new flashcard session over a deck. The deck's
// questions are shuffled into the session's initial queue order.
func (s *FlashcardService) Start(userID, deckID int64) (*models.Attempt, error) {
	deck, err := s.decks.GetByID(deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil || !deck.Active {
		return nil, ErrDeckNotFound
	}

	questionIDs, err := s.decks.QuestionIDsForDeck(deckID)
	if err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		return nil, ErrDeckEmpty
	}

	s.engine.Shuffle(questionIDs)

	return s.attempts.CreateAttempt(userID, models.ModeFlashcard, &deckID, nil, questionIDs)
}

// NextCard is the state a client needs to show the next flashcard
type NextCard struct {
	Question     *models.Question
	PendingCount int
	Completed    bool
}

// Next returns the lowest-position pending question of a session, or a
// completed marker when the queue has drained
func (s *FlashcardService) Next(userID, attemptID int64) (*NextCard, error) {
	attempt, err := s.core.GetOwned(userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed {
		return &NextCard{Completed: true}, nil
	}

	slot, err := s.attempts.NextPending(attemptID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return &NextCard{Completed: true}, nil
	}

	pending, err := s.attempts.PendingCount(attemptID)
	if err != nil {
		return nil, err
	}

	question, err := s.core.questions.GetByID(slot.QuestionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}

	return &NextCard{Question: question, PendingCount: pending}, nil
}

// Answer grades one card. Wrong answers requeue; the session closes
// itself on the last correct answer.
func (s *FlashcardService) Answer(userID, attemptID, questionID int64, option models.Option) (*AnswerResult, error) {
	return s.core.Answer(userID, attemptID, questionID, option)
}
