package handlers

import (
	"net/http"

	"examengine/internal/models"
	"examengine/internal/service"
	"examengine/internal/validation"
)

// FlashcardHandler serves flashcard session endpoints
type FlashcardHandler struct {
	flashcardService *service.FlashcardService
}

// NewFlashcardHandler creates a new flashcard handler
func NewFlashcardHandler(flashcardService *service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{flashcardService: flashcardService}
}

// answerRequest is the shared answer body for all three quiz modes
type answerRequest struct {
	AttemptID      int64  `json:"attempt_id"`
	QuestionID     int64  `json:"question_id"`
	SelectedOption string `json:"selected_option"`
}

type nextCardResponse struct {
	Question     *questionBrief `json:"question,omitempty"`
	PendingCount int            `json:"pending_count"`
	Completed    bool           `json:"completed"`
}

// Start handles POST /flashcards/start/{deckID}
func (h *FlashcardHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	attempt, err := h.flashcardService.Start(claims.UserID, pathID(r, "deckID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"attempt": toAttemptView(attempt)})
}

// Next handles GET /flashcards/next/{attemptID}
func (h *FlashcardHandler) Next(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	card, err := h.flashcardService.Next(claims.UserID, pathID(r, "attemptID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := nextCardResponse{PendingCount: card.PendingCount, Completed: card.Completed}
	if card.Question != nil {
		brief := toQuestionBrief(card.Question)
		resp.Question = &brief
	}
	writeJSON(w, http.StatusOK, resp)
}

// Answer handles POST /flashcards/answer. A wrong answer requeues the card
// at the back of the session.
func (h *FlashcardHandler) Answer(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validation.ValidateOption(req.SelectedOption); err != nil {
		respondServiceError(w, r, err)
		return
	}

	result, err := h.flashcardService.Answer(claims.UserID, req.AttemptID, req.QuestionID, models.Option(req.SelectedOption))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
