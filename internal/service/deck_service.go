package service

import (
	"fmt"
	"time"

	"examengine/internal/models"
	"examengine/internal/repository"
	"examengine/internal/selection"
)

// DeckService manages flashcard decks: the immutable ones created by
// import and personalized ones generated on demand with the user's
// mastered questions excluded.
type DeckService struct {
	decks     *repository.DeckRepository
	questions *repository.QuestionRepository
	progress  *ProgressService
	engine    *selection.Engine
}

// NewDeckService creates a new deck service
func NewDeckService(decks *repository.DeckRepository, questions *repository.QuestionRepository, progress *ProgressService, engine *selection.Engine) *DeckService {
	return &DeckService{decks: decks, questions: questions, progress: progress, engine: engine}
}

// List returns all active decks, newest first
func (s *DeckService) List() ([]models.Deck, error) {
	return s.decks.ListActive()
}

// Detail returns a deck with its questions in link order
func (s *DeckService) Detail(deckID int64) (*models.Deck, []models.Question, error) {
	deck, err := s.decks.GetByID(deckID)
	if err != nil {
		return nil, nil, err
	}
	if deck == nil || !deck.Active {
		return nil, nil, ErrDeckNotFound
	}

	ids, err := s.decks.QuestionIDsForDeck(deckID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.questions.GetByIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	return deck, questions, nil
}

// MarkViewed clears a deck's new flag
func (s *DeckService) MarkViewed(deckID int64) error {
	deck, err := s.decks.GetByID(deckID)
	if err != nil {
		return err
	}
	if deck == nil {
		return ErrDeckNotFound
	}
	return s.decks.MarkViewed(deckID)
}

// Deactivate soft-deletes a deck. It stops appearing in listings and
// new flashcard sessions cannot start over it; existing attempts keep
// their question history.
func (s *DeckService) Deactivate(deckID int64) error {
	deck, err := s.decks.GetByID(deckID)
	if err != nil {
		return err
	}
	if deck == nil || !deck.Active {
		return ErrDeckNotFound
	}
	return s.decks.Deactivate(deckID)
}

// Generate builds a personalized 20-question deck for the user:
// chapter-weighted, excluding every question the user has already
// mastered. The deck is persisted so flashcard sessions can run over
// it. Exclusions are never relaxed, so a nearly exhausted bank yields a
// smaller deck rather than repeating mastered material.
func (s *DeckService) Generate(userID int64) (*models.Deck, []models.Question, error) {
	mastered, err := s.progress.MasteredIDs(userID)
	if err != nil {
		return nil, nil, err
	}

	ids, err := s.engine.Select(s.questions, DeckQuotaSpec(), mastered)
	if err != nil {
		return nil, nil, err
	}
	s.engine.Shuffle(ids)

	baseName := fmt.Sprintf("Practice %s", time.Now().Format(models.DateFormat))
	deck, err := s.decks.CreateDeckWithQuestions(baseName, ids)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.questions.GetByIDs(ids)
	if err != nil {
		return nil, nil, err
	}

	return deck, questions, nil
}

// Results summarizes the user's mastery over one deck
func (s *DeckService) Results(userID, deckID int64) (*DeckResults, error) {
	deck, err := s.decks.GetByID(deckID)
	if err != nil {
		return nil, err
	}
	if deck == nil {
		return nil, ErrDeckNotFound
	}

	ids, err := s.decks.QuestionIDsForDeck(deckID)
	if err != nil {
		return nil, err
	}
	return s.progress.DeckResultsFor(userID, ids)
}
