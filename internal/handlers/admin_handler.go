package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"examengine/internal/repository"
	"examengine/internal/service"
)

// AdminHandler serves question bank administration endpoints
type AdminHandler struct {
	importService *service.ImportService
	emailService  *service.EmailService
	questions     *repository.QuestionRepository
	users         *repository.UserRepository
	adminEmail    string
	uploadMaxSize int64
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(importService *service.ImportService, emailService *service.EmailService, questions *repository.QuestionRepository, users *repository.UserRepository, adminEmail string, uploadMaxSize int64) *AdminHandler {
	return &AdminHandler{
		importService: importService,
		emailService:  emailService,
		questions:     questions,
		users:         users,
		adminEmail:    adminEmail,
		uploadMaxSize: uploadMaxSize,
	}
}

// Import handles POST /admin/import. The CSV is uploaded as a multipart
// form file under the "file" field.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxSize)
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		writeError(w, http.StatusBadRequest, "upload too large or malformed")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportCSV(file)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if h.emailService.IsEnabled() && h.adminEmail != "" {
		go func(res service.ImportResult) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := h.emailService.SendImportReport(ctx, h.adminEmail, &res); err != nil {
				log.Printf("Error sending import report: %v", err)
			}
		}(*result)
	}

	writeJSON(w, http.StatusOK, result)
}

type bankStatsResponse struct {
	TotalQuestions int            `json:"total_questions"`
	TotalUsers     int            `json:"total_users"`
	ByChapter      map[string]int `json:"by_chapter"`
	ByCategory     map[string]int `json:"by_category"`
}

// BankStats handles GET /admin/bank-stats
func (h *AdminHandler) BankStats(w http.ResponseWriter, r *http.Request) {
	total, err := h.questions.CountTotal()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	totalUsers, err := h.users.CountUsers()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	byChapter, err := h.questions.CountByChapter()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	byCategory, err := h.questions.CountByCategory()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bankStatsResponse{
		TotalQuestions: total,
		TotalUsers:     totalUsers,
		ByChapter:      byChapter,
		ByCategory:     byCategory,
	})
}
