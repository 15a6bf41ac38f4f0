package handlers

import (
	"errors"
	"log"
	"net/http"

	"examengine/internal/selection"
	"examengine/internal/service"
	"examengine/internal/validation"
)

// statusForError maps service errors to HTTP status codes. Unknown errors
// map to 500 and are logged without leaking the cause to the client.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrQuestionNotInAttempt),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAttemptCompleted),
		errors.Is(err, service.ErrDeckEmpty),
		errors.Is(err, service.ErrInvalidOption),
		errors.Is(err, service.ErrImportFormat),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, selection.ErrInsufficientBank):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	var ve validation.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondServiceError converts a service error into a JSON error response
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error handling %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}
