package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"devroutine/api"
	"devroutine/models"
	"devroutine/services/calendar"
	"devroutine/services/dashboard"
	"devroutine/services/sessions"
)

type sessionService interface {
	Create(userAgent, ipAddress string) (models.Session, *dashboard.Dashboard, error)
	Get(token string) (models.Session, *dashboard.Dashboard, error)
	Revoke(token string) error
}

// DashboardHandler serves the JSON API of mounted dashboards. Every route
// below /api/dashboards/current runs behind api.DashboardSessionMiddleware.
type DashboardHandler struct {
	Sessions sessionService
	// TrustProxyHeaders records X-Forwarded-For as the session's client IP.
	TrustProxyHeaders bool
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(sessionsSvc sessionService) *DashboardHandler {
	return &DashboardHandler{Sessions: sessionsSvc}
}

type dateRequest struct {
	Date string `json:"date"`
}

type draftRequest struct {
	Title *string `json:"title"`
	Color *string `json:"color"`
}

type addEventRequest struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Mount creates a new dashboard session showing the current month.
func (h *DashboardHandler) Mount(w http.ResponseWriter, r *http.Request) {
	session, d, err := h.Sessions.Create(r.UserAgent(), api.ClientIP(r, h.TrustProxyHeaders))
	if err != nil {
		if errors.Is(err, sessions.ErrTooManySessions) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		log.Printf("[dashboard] mount failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to mount dashboard")
		return
	}

	writeJSON(w, http.StatusCreated, models.DashboardResponse{
		Session: session,
		View:    localize(r, d.View()),
	})
}

// current returns the dashboard resolved by the session middleware.
func current(w http.ResponseWriter, r *http.Request) (*dashboard.Dashboard, bool) {
	d := api.GetDashboard(r)
	if d == nil {
		writeError(w, http.StatusNotFound, "dashboard not found")
		return nil, false
	}
	return d, true
}

func (h *DashboardHandler) respondView(w http.ResponseWriter, r *http.Request, d *dashboard.Dashboard) {
	writeJSON(w, http.StatusOK, localize(r, d.View()))
}

// GetView renders the current dashboard.
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	h.respondView(w, r, d)
}

// Unmount drops the current dashboard and its events.
func (h *DashboardHandler) Unmount(w http.ResponseWriter, r *http.Request) {
	session, ok := api.GetSession(r)
	if !ok {
		writeError(w, http.StatusNotFound, "dashboard not found")
		return
	}
	if err := h.Sessions.Revoke(session.Token); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PreviousMonth moves the calendar one month back.
func (h *DashboardHandler) PreviousMonth(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	d.PreviousMonth()
	h.respondView(w, r, d)
}

// NextMonth moves the calendar one month forward.
func (h *DashboardHandler) NextMonth(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	d.NextMonth()
	h.respondView(w, r, d)
}

func parseDateField(w http.ResponseWriter, raw string) (models.CalendarDate, bool) {
	if strings.TrimSpace(raw) == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return models.CalendarDate{}, false
	}
	date, err := models.ParseCalendarDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return models.CalendarDate{}, false
	}
	return date, true
}

// Hover marks a cell as hovered.
func (h *DashboardHandler) Hover(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	var req dateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, ok := parseDateField(w, req.Date)
	if !ok {
		return
	}
	d.Hover(date)
	h.respondView(w, r, d)
}

// ClearHover removes the hover mark.
func (h *DashboardHandler) ClearHover(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	d.ClearHover()
	h.respondView(w, r, d)
}

// OpenModal opens the add-event dialog for a day of the displayed month.
func (h *DashboardHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	var req dateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, ok := parseDateField(w, req.Date)
	if !ok {
		return
	}
	if err := d.OpenModal(date); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.respondView(w, r, d)
}

// CancelModal closes the dialog without saving.
func (h *DashboardHandler) CancelModal(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	d.CancelModal()
	h.respondView(w, r, d)
}

// UpdateDraft edits the draft title and/or color.
func (h *DashboardHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	var req draftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Color != nil {
		if err := d.SetDraftColor(models.Color(strings.TrimSpace(*req.Color))); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Title != nil {
		d.SetDraftTitle(*req.Title)
	}
	h.respondView(w, r, d)
}

// SaveModal stores the draft. A blank title is not an error: the response
// reports saved=false and the dialog stays open.
func (h *DashboardHandler) SaveModal(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}

	resp := models.SaveResponse{}
	if event, saved := d.Save(); saved {
		resp.Saved = true
		resp.Event = &event
	}
	resp.View = localize(r, d.View())
	writeJSON(w, http.StatusOK, resp)
}

// AddEvent stores an event on any date without going through the dialog.
func (h *DashboardHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}
	var req addEventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	date, ok := parseDateField(w, req.Date)
	if !ok {
		return
	}

	color := models.Color(strings.TrimSpace(req.Color))
	if color == "" {
		color = d.Palette().First()
	}
	event, saved, err := d.AddEvent(date, req.Title, color)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !saved {
		writeJSON(w, http.StatusOK, models.SaveResponse{Saved: false, View: localize(r, d.View())})
		return
	}
	writeJSON(w, http.StatusCreated, models.SaveResponse{Saved: true, Event: &event, View: localize(r, d.View())})
}

// ListEvents returns stored events between ?from= and ?to= (inclusive).
// Both default to the bounds of the displayed month.
func (h *DashboardHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	d, ok := current(w, r)
	if !ok {
		return
	}

	shown := d.State().Displayed()
	from := shown.FirstDay()
	to := models.CalendarDate{Year: shown.Year, Month: shown.TimeMonth(), Day: calendar.DaysIn(shown.Year, shown.TimeMonth())}

	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		parsed, err := models.ParseCalendarDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from: "+err.Error())
			return
		}
		from = parsed
	}
	if raw := q.Get("to"); raw != "" {
		parsed, err := models.ParseCalendarDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to: "+err.Error())
			return
		}
		to = parsed
	}
	if to.Before(from) {
		from, to = to, from
	}

	days := d.EventsBetween(from, to)
	if days == nil {
		days = []models.DatedEvents{}
	}
	total := 0
	for _, day := range days {
		total += len(day.Events)
	}
	writeJSON(w, http.StatusOK, models.EventsResponse{From: from, To: to, Days: days, Total: total})
}

// Options handles CORS preflight for the dashboard endpoints.
func (h *DashboardHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
