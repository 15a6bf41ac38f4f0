package handlers

import (
	"net/http"

	"examengine/internal/service"
)

// DeckHandler serves flashcard deck endpoints
type DeckHandler struct {
	deckService *service.DeckService
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(deckService *service.DeckService) *DeckHandler {
	return &DeckHandler{deckService: deckService}
}

// List handles GET /decks
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	decks, err := h.deckService.List()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"decks": toDeckViews(decks)})
}

// Detail handles GET /decks/{id}
func (h *DeckHandler) Detail(w http.ResponseWriter, r *http.Request) {
	deck, questions, err := h.deckService.Detail(pathID(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deck":      toDeckView(deck),
		"questions": toQuestionBriefs(questions),
	})
}

// MarkViewed handles PATCH /decks/{id}/mark-viewed
func (h *DeckHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	if err := h.deckService.MarkViewed(pathID(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Deactivate handles DELETE /decks/{id} (admin). Soft delete: the deck
// disappears from listings but attempt history stays intact.
func (h *DeckHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.deckService.Deactivate(pathID(r, "id")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Generate handles POST /decks/generate. The deck is personalized: questions
// the user already mastered are excluded from the draw.
func (h *DeckHandler) Generate(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	deck, questions, err := h.deckService.Generate(claims.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"deck":      toDeckView(deck),
		"questions": toQuestionBriefs(questions),
	})
}

// Results handles GET /decks/{id}/results
func (h *DeckHandler) Results(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	results, err := h.deckService.Results(claims.UserID, pathID(r, "id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
