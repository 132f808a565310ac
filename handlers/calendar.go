package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"devroutine/models"
	"devroutine/services/calendar"
)

// CalendarHandler serves the stateless month grid.
type CalendarHandler struct{}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{}
}

// GetMonth returns the 42-cell grid of /api/calendar/{year}/{month} (month 1-12).
func (h *CalendarHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "invalid year: "+vars["year"])
		return
	}
	month, err := strconv.Atoi(vars["month"])
	ym := models.YearMonth{Year: year, Month: month - 1}
	if err != nil || !ym.Valid() {
		writeError(w, http.StatusBadRequest, "invalid month: "+vars["month"])
		return
	}

	writeJSON(w, http.StatusOK, models.CalendarGridResponse{
		Year:        year,
		Month:       month,
		DaysInMonth: calendar.DaysIn(year, ym.TimeMonth()),
		Rows:        calendar.MinimalRows(ym),
		Cells:       calendar.BuildMonthGrid(ym),
	})
}

// Options handles CORS preflight for the calendar endpoint.
func (h *CalendarHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
