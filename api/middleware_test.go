package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devroutine/services/dashboard"
	"devroutine/services/sessions"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"session header", func(r *http.Request) { r.Header.Set(SessionHeader, " abc ") }, "abc"},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer xyz") }, "xyz"},
		{"basic is ignored", func(r *http.Request) { r.Header.Set("Authorization", "Basic xyz") }, ""},
		{"header wins over bearer", func(r *http.Request) {
			r.Header.Set(SessionHeader, "from-header")
			r.Header.Set("Authorization", "Bearer from-bearer")
		}, "from-header"},
		{"query", func(r *http.Request) { r.URL.RawQuery = "session=q1" }, "q1"},
		{"none", func(r *http.Request) {}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			if got := ExtractToken(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDashboardSessionMiddleware(t *testing.T) {
	svc := sessions.NewService(func() *dashboard.Dashboard {
		return dashboard.New(dashboard.Config{Location: time.UTC}, nil)
	}, time.Hour, 0)
	session, mounted, err := svc.Create("test", "127.0.0.1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var seen *dashboard.Dashboard
	handler := DashboardSessionMiddleware(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetDashboard(r)
		if s, ok := GetSession(r); !ok || s.Token != session.Token {
			t.Errorf("expected session %s in context", session.Token)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"valid", session.Token, http.StatusNoContent},
		{"unknown", "nope", http.StatusNotFound},
		{"missing", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboards/current", nil)
			if tt.token != "" {
				req.Header.Set(SessionHeader, tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	if seen != mounted {
		t.Error("expected the mounted dashboard in the request context")
	}
}

func TestRequestLogger_PassesStatusThrough(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rec.Code)
	}
}
