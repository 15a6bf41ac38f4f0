package handlers

import (
	"net/http"

	"examengine/internal/repository"
	"examengine/internal/service"
)

// StatsHandler serves per-user aggregate statistics
type StatsHandler struct {
	attempts        *repository.AttemptRepository
	progressService *service.ProgressService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(attempts *repository.AttemptRepository, progressService *service.ProgressService) *StatsHandler {
	return &StatsHandler{
		attempts:        attempts,
		progressService: progressService,
	}
}

type modeStatView struct {
	Mode          string  `json:"mode"`
	Count         int     `json:"count"`
	AvgFinalScore float64 `json:"avg_final_score"`
	BestScore     float64 `json:"best_score"`
}

type statsResponse struct {
	ByMode        []modeStatView `json:"by_mode"`
	QuestionsSeen int            `json:"questions_seen"`
	Mastered      int            `json:"mastered"`
}

// Me handles GET /stats/me
func (h *StatsHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaimsFromContext(r.Context())

	stats, err := h.attempts.StatsForUser(claims.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	summary, err := h.progressService.Summary(claims.UserID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := statsResponse{
		ByMode:        make([]modeStatView, len(stats)),
		QuestionsSeen: summary.QuestionsSeen,
		Mastered:      summary.Mastered,
	}
	for i, s := range stats {
		resp.ByMode[i] = modeStatView{
			Mode:          string(s.Mode),
			Count:         s.Count,
			AvgFinalScore: s.AvgFinalScore,
			BestScore:     s.BestScore,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
