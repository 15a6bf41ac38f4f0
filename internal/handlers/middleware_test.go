package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"examengine/internal/models"
	"examengine/internal/security"
)

func newTestMiddleware(t *testing.T) (*Middleware, *security.TokenManager) {
	t.Helper()
	tokens := security.NewTokenManager("test-secret", time.Hour)
	limiter := security.NewRateLimiter(100, time.Minute)
	return NewMiddleware(tokens, limiter), tokens
}

func TestRequireAuth(t *testing.T) {
	m, tokens := newTestMiddleware(t)

	var gotClaims *security.Claims
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = GetClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token, err := tokens.Issue(7, models.RoleUser)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/stats/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != 7 {
		t.Errorf("expected claims for user 7, got %+v", gotClaims)
	}
}

func TestRequireAuthRejectsBadTokens(t *testing.T) {
	m, _ := newTestMiddleware(t)

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/stats/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}

			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("error response is not JSON: %v", err)
			}
			if body.Error == "" {
				t.Error("expected an error message in the body")
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m, tokens := newTestMiddleware(t)

	handler := m.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	userToken, err := tokens.Issue(1, models.RoleUser)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	adminToken, err := tokens.Issue(2, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("POST", "/admin/import", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for regular user, got %d", rec.Code)
	}

	req = httptest.NewRequest("POST", "/admin/import", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for admin, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	limiter := security.NewRateLimiter(2, time.Minute)
	m := NewMiddleware(tokens, limiter)

	handler := m.RateLimit(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}

	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after limit, got %d", rec.Code)
	}
}
