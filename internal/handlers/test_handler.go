package handlers

import (
	"net/http"

	"examengine/internal/models"
	"examengine/internal/service"
	"examengine/internal/validation"
)

// TestHandler serves full-length test endpoints
type TestHandler struct {
	testService *service.TestService
}

// NewTestHandler creates a new test handler
func NewTestHandler(testService *service.TestService) *TestHandler {
	return &TestHandler{testService: testService}
}

type startTestRequest struct {
	TotalQuestions int `json:"total_questions"`
}

// Start handles POST /tests/start. TotalQuestions defaults to the
// standard paper size when omitted.
func (h *TestHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	var req startTestRequest
	if err := decodeJSON(r, &req); err != nil && r.ContentLength > 0 {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attempt, questions, err := h.testService.Start(claims.UserID, req.TotalQuestions)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"attempt":   toAttemptView(attempt),
		"questions": toQuestionBriefs(questions),
	})
}

// Answer handles POST /tests/answer. Answers can be revised until submission.
func (h *TestHandler) Answer(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.testService.Answer(claims.UserID, req.AttemptID, req.QuestionID, models.Option(req.SelectedOption))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Submit handles POST /tests/submit/{attemptID}
func (h *TestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	result, err := h.testService.Submit(claims.UserID, pathID(r, "attemptID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /tests/history
func (h *TestHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	attempts, err := h.testService.History(claims.UserID, 0)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tests": toAttemptViews(attempts)})
}
