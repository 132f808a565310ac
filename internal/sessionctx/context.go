// Package sessionctx carries the mounted dashboard of a request in its context.
package sessionctx

import (
	"context"
	"net/http"

	"devroutine/models"
	"devroutine/services/dashboard"
)

// ContextKey is the type used for context keys
type ContextKey string

const (
	// ContextKeySession is the key for the dashboard session in the context
	ContextKeySession ContextKey = "session"
	// ContextKeyDashboard is the key for the mounted dashboard in the context
	ContextKeyDashboard ContextKey = "dashboard"
)

// With returns a copy of ctx carrying session and its dashboard.
func With(ctx context.Context, session models.Session, d *dashboard.Dashboard) context.Context {
	ctx = context.WithValue(ctx, ContextKeySession, session)
	return context.WithValue(ctx, ContextKeyDashboard, d)
}

// GetSession retrieves the dashboard session from the request context.
func GetSession(r *http.Request) (models.Session, bool) {
	s, ok := r.Context().Value(ContextKeySession).(models.Session)
	return s, ok
}

// GetDashboard retrieves the mounted dashboard from the request context.
func GetDashboard(r *http.Request) *dashboard.Dashboard {
	if d, ok := r.Context().Value(ContextKeyDashboard).(*dashboard.Dashboard); ok {
		return d
	}
	return nil
}
