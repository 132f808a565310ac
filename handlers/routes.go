package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"devroutine/api"
	"devroutine/services/sessions"
)

// Routes bundles what RegisterRoutes needs.
type Routes struct {
	Sessions *sessions.Service
	Limiter  *api.IPRateLimiter
	// TrustProxyHeaders takes the client IP stored on sessions from proxy headers.
	TrustProxyHeaders bool
}

// RegisterRoutes mounts the JSON API, the HTML page and the static assets on r.
// Mounting a dashboard and saving events are rate limited per client IP.
func RegisterRoutes(r *mux.Router, deps Routes) {
	limit := func(h http.HandlerFunc) http.HandlerFunc { return h }
	if deps.Limiter != nil {
		limit = deps.Limiter.HandlerFunc
	}

	versionHandler := NewVersionHandler()
	r.HandleFunc("/api/version", versionHandler.GetVersion).Methods(http.MethodGet)

	calendarHandler := NewCalendarHandler()
	r.HandleFunc("/api/calendar/{year:[0-9]+}/{month:[0-9]+}", calendarHandler.GetMonth).Methods(http.MethodGet)
	r.HandleFunc("/api/calendar/{year:[0-9]+}/{month:[0-9]+}", calendarHandler.Options).Methods(http.MethodOptions)

	dashboardHandler := NewDashboardHandler(deps.Sessions)
	dashboardHandler.TrustProxyHeaders = deps.TrustProxyHeaders
	r.HandleFunc("/api/dashboards", limit(dashboardHandler.Mount)).Methods(http.MethodPost)
	r.HandleFunc("/api/dashboards", dashboardHandler.Options).Methods(http.MethodOptions)

	cur := r.PathPrefix("/api/dashboards/current").Subrouter()
	cur.Use(api.DashboardSessionMiddleware(deps.Sessions))
	cur.Methods(http.MethodOptions).HandlerFunc(dashboardHandler.Options)
	cur.HandleFunc("", dashboardHandler.GetView).Methods(http.MethodGet)
	cur.HandleFunc("", dashboardHandler.Unmount).Methods(http.MethodDelete)
	cur.HandleFunc("/month/prev", dashboardHandler.PreviousMonth).Methods(http.MethodPost)
	cur.HandleFunc("/month/next", dashboardHandler.NextMonth).Methods(http.MethodPost)
	cur.HandleFunc("/hover", dashboardHandler.Hover).Methods(http.MethodPut)
	cur.HandleFunc("/hover", dashboardHandler.ClearHover).Methods(http.MethodDelete)
	cur.HandleFunc("/modal", dashboardHandler.OpenModal).Methods(http.MethodPost)
	cur.HandleFunc("/modal", dashboardHandler.CancelModal).Methods(http.MethodDelete)
	cur.HandleFunc("/modal/draft", dashboardHandler.UpdateDraft).Methods(http.MethodPut)
	cur.HandleFunc("/modal/save", limit(dashboardHandler.SaveModal)).Methods(http.MethodPost)
	cur.HandleFunc("/events", dashboardHandler.ListEvents).Methods(http.MethodGet)
	cur.HandleFunc("/events", limit(dashboardHandler.AddEvent)).Methods(http.MethodPost)

	pageHandler := NewPageHandler(deps.Sessions)
	pageHandler.TrustProxyHeaders = deps.TrustProxyHeaders
	r.HandleFunc("/", limit(pageHandler.Index)).Methods(http.MethodGet)
	r.HandleFunc("/d/{token}", pageHandler.Show).Methods(http.MethodGet)
	r.HandleFunc("/d/{token}/{action}", pageHandler.Action).Methods(http.MethodPost)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", NewStaticHandler())).Methods(http.MethodGet)
}
