package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"devroutine/api"
	"devroutine/models"
	"devroutine/services/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("dashboard.html").Funcs(template.FuncMap{
		"weekdayClass": weekdayClass,
		"background":   background,
		"typeLabel":    typeLabel,
	}).ParseFS(templateFS, "templates/dashboard.html"),
)

func weekdayClass(i int) string {
	switch i {
	case 0:
		return "sun"
	case 6:
		return "sat"
	}
	return ""
}

// background is only ever fed palette colors, which are validated as #RRGGBB.
func background(c models.Color) template.CSS {
	if !c.Valid() {
		return ""
	}
	return template.CSS("background-color: " + string(c))
}

func typeLabel(labels *models.Labels, t models.DeadlineType) string {
	if labels != nil {
		if s, ok := labels.DeadlineTypes[string(t)]; ok {
			return s
		}
	}
	return string(t)
}

type pageData struct {
	View  models.DashboardView
	Token string
	Lang  string
}

// PageHandler serves the server-rendered dashboard page. Each browser tab
// gets its own mounted dashboard whose token lives in the URL.
type PageHandler struct {
	Sessions          sessionService
	TrustProxyHeaders bool
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(sessionsSvc sessionService) *PageHandler {
	return &PageHandler{Sessions: sessionsSvc}
}

func pagePath(token, lang string) string {
	p := "/d/" + url.PathEscape(token)
	if lang != "" {
		p += "?lang=" + url.QueryEscape(lang)
	}
	return p
}

func requestLang(r *http.Request) string {
	if lang := strings.TrimSpace(r.URL.Query().Get("lang")); lang != "" {
		return lang
	}
	return strings.TrimSpace(r.PostFormValue("lang"))
}

// Index mounts a new dashboard and redirects to its page.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	session, _, err := h.Sessions.Create(r.UserAgent(), api.ClientIP(r, h.TrustProxyHeaders))
	if err != nil {
		log.Printf("[page] mount failed: %v", err)
		http.Error(w, "could not open a dashboard, try again later", http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, pagePath(session.Token, requestLang(r)), http.StatusSeeOther)
}

func (h *PageHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *dashboard.Dashboard, bool) {
	token := mux.Vars(r)["token"]
	session, d, err := h.Sessions.Get(token)
	if err != nil {
		http.Error(w, "dashboard not found", http.StatusNotFound)
		return "", nil, false
	}
	return session.Token, d, true
}

// Show renders the page.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	token, d, ok := h.lookup(w, r)
	if !ok {
		return
	}

	view := localize(r, d.View())
	data := pageData{View: view, Token: token, Lang: requestLang(r)}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Printf("[page] render failed: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

// Action applies one form post ({action} of prev, next, open, cancel, save)
// and redirects back to the page.
func (h *PageHandler) Action(w http.ResponseWriter, r *http.Request) {
	token, d, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	switch mux.Vars(r)["action"] {
	case "prev":
		d.PreviousMonth()
	case "next":
		d.NextMonth()
	case "open":
		date, err := models.ParseCalendarDate(r.PostFormValue("date"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := d.OpenModal(date); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
	case "cancel":
		d.CancelModal()
	case "save":
		if color := strings.TrimSpace(r.PostFormValue("color")); color != "" {
			if err := d.SetDraftColor(models.Color(color)); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		d.SetDraftTitle(r.PostFormValue("title"))
		d.Save()
	default:
		http.NotFound(w, r)
		return
	}

	http.Redirect(w, r, pagePath(token, requestLang(r)), http.StatusSeeOther)
}
