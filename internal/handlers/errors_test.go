package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"examengine/internal/selection"
	"examengine/internal/service"
	"examengine/internal/validation"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"attempt not found", service.ErrAttemptNotFound, http.StatusNotFound},
		{"deck not found", service.ErrDeckNotFound, http.StatusNotFound},
		{"question not found", service.ErrQuestionNotFound, http.StatusNotFound},
		{"question not in attempt", service.ErrQuestionNotInAttempt, http.StatusNotFound},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"attempt completed", service.ErrAttemptCompleted, http.StatusBadRequest},
		{"deck empty", service.ErrDeckEmpty, http.StatusBadRequest},
		{"invalid option", service.ErrInvalidOption, http.StatusBadRequest},
		{"import format", service.ErrImportFormat, http.StatusBadRequest},
		{"insufficient bank", selection.ErrInsufficientBank, http.StatusBadRequest},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"validation error", validation.ValidationError{Field: "email", Message: "required"}, http.StatusBadRequest},
		{"unknown error", fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusForWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("starting session: %w", service.ErrDeckNotFound)
	if got := statusForError(wrapped); got != http.StatusNotFound {
		t.Errorf("statusForError(wrapped) = %d, want %d", got, http.StatusNotFound)
	}

	wrappedFormat := fmt.Errorf("%w: bad headers", service.ErrImportFormat)
	if got := statusForError(wrappedFormat); got != http.StatusBadRequest {
		t.Errorf("statusForError(wrapped format) = %d, want %d", got, http.StatusBadRequest)
	}
}
