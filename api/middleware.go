package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"devroutine/internal/sessionctx"
	"devroutine/services/sessions"
)

// SessionHeader carries the dashboard session token on API requests.
const SessionHeader = "X-Dashboard-Session"

// Re-export from sessionctx so handlers only import api.
var (
	GetDashboard = sessionctx.GetDashboard
	GetSession   = sessionctx.GetSession
)

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// DashboardSessionMiddleware resolves the mounted dashboard for the request
// and stores it in the request context. Unknown or expired sessions get 404.
func DashboardSessionMiddleware(sessionsSvc *sessions.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Always allow OPTIONS for CORS
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := ExtractToken(r)
			if token == "" {
				writeJSONError(w, http.StatusBadRequest, "dashboard session required")
				return
			}
			if sessionsSvc == nil {
				writeJSONError(w, http.StatusInternalServerError, "session service unavailable")
				return
			}

			session, d, err := sessionsSvc.Get(token)
			switch {
			case errors.Is(err, sessions.ErrSessionExpired), errors.Is(err, sessions.ErrSessionNotFound):
				writeJSONError(w, http.StatusNotFound, "dashboard not found")
				return
			case err != nil:
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(sessionctx.With(r.Context(), session, d)))
		})
	}
}

// ExtractToken reads the session token from the request.
// Priority: X-Dashboard-Session header > Authorization bearer > ?session= query param.
func ExtractToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(SessionHeader)); token != "" {
		return token
	}

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		scheme, token, ok := strings.Cut(authHeader, " ")
		if ok && strings.EqualFold(scheme, "bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}

	return strings.TrimSpace(r.URL.Query().Get("session"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs method, path, status and duration of every request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[http] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
