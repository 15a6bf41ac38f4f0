package handlers

import (
	"net/http"

	"examengine/internal/models"
	"examengine/internal/service"
	"examengine/internal/validation"
)

// DailyHandler serves shared daily test endpoints
type DailyHandler struct {
	dailyService *service.DailyService
}

// NewDailyHandler creates a new daily test handler
func NewDailyHandler(dailyService *service.DailyService) *DailyHandler {
	return &DailyHandler{dailyService: dailyService}
}

type dailySessionResponse struct {
	DailyTestID int64           `json:"daily_test_id"`
	TestDate    string          `json:"test_date"`
	Attempt     attemptView     `json:"attempt"`
	Questions   []questionBrief `json:"questions"`
}

// Start handles POST /daily/start. All users share the same question set
// for a given date; restarting resumes the existing attempt.
func (h *DailyHandler) Start(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	session, err := h.dailyService.Start(claims.UserID, r.URL.Query().Get("date"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dailySessionResponse{
		DailyTestID: session.DailyTestID,
		TestDate:    session.TestDate,
		Attempt:     toAttemptView(session.Attempt),
		Questions:   toQuestionBriefs(session.Questions),
	})
}

// Answer handles POST /daily/answer
func (h *DailyHandler) Answer(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.dailyService.Answer(claims.UserID, req.AttemptID, req.QuestionID, models.Option(req.SelectedOption))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Submit handles POST /daily/submit/{attemptID}
func (h *DailyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	result, err := h.dailyService.Submit(claims.UserID, pathID(r, "attemptID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
