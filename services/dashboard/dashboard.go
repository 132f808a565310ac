package dashboard

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"devroutine/models"
	"devroutine/services/calendar"
	"devroutine/services/events"
)

var (
	ErrDateNotInMonth    = errors.New("date is not in the displayed month")
	ErrColorNotInPalette = errors.New("color is not in the palette")
)

// DefaultUpcomingLimit is how many deadlines the upcoming widget lists.
const DefaultUpcomingLimit = 3

// Clock returns the current wall-clock time.
type Clock func() time.Time

// DeadlineSpec is a configured deadline. When Date is zero the deadline is
// pinned to Day of the month the dashboard was mounted in, clamped to that
// month's last day.
type DeadlineSpec struct {
	Date  models.CalendarDate
	Day   int
	Title string
	Type  models.DeadlineType
}

// Config is the fixed content a dashboard is mounted with.
type Config struct {
	Title         string
	Subtitle      string
	StreakDays    int
	Tip           string
	Message       string
	Palette       models.Palette
	Routines      []models.Routine
	Deadlines     []DeadlineSpec
	UpcomingLimit int
	Location      *time.Location
}

// Dashboard is one mounted DevRoutine page: the view state, the in-memory
// event store, and the render of both. All methods are serialized by a single
// mutex so a dashboard behaves like a single-threaded UI component.
type Dashboard struct {
	mu        sync.Mutex
	cfg       Config
	clock     Clock
	state     models.ViewState
	store     *events.Store
	deadlines []models.Deadline
}

// New mounts a dashboard showing the current month with an empty event store.
func New(cfg Config, clock Clock) *Dashboard {
	if clock == nil {
		clock = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = models.DefaultPalette
	}
	if cfg.UpcomingLimit <= 0 {
		cfg.UpcomingLimit = DefaultUpcomingLimit
	}

	d := &Dashboard{
		cfg:   cfg,
		clock: clock,
		store: events.NewStore(clock),
	}

	today := d.today()
	shown := models.YearMonthOf(today)
	d.state = models.ViewState{
		CurrentYear:  shown.Year,
		CurrentMonth: shown.Month,
		DraftColor:   cfg.Palette.First(),
	}
	d.deadlines = resolveDeadlines(cfg.Deadlines, today)
	return d
}

func resolveDeadlines(specs []DeadlineSpec, today models.CalendarDate) []models.Deadline {
	out := make([]models.Deadline, 0, len(specs))
	for _, s := range specs {
		date := s.Date
		if date.IsZero() {
			day := s.Day
			if last := calendar.DaysIn(today.Year, today.Month); day > last {
				log.Printf("[dashboard] deadline %q day %d clamped to %d", s.Title, day, last)
				day = last
			}
			date = models.CalendarDate{Year: today.Year, Month: today.Month, Day: day}
		}
		out = append(out, models.Deadline{Date: date, Title: s.Title, Type: s.Type})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (d *Dashboard) today() models.CalendarDate {
	return models.DateOf(d.clock().In(d.cfg.Location))
}

// Palette returns the palette the dashboard accepts.
func (d *Dashboard) Palette() models.Palette {
	return d.cfg.Palette
}

// State returns a copy of the current view state.
func (d *Dashboard) State() models.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return cloneState(d.state)
}

// PreviousMonth shows the previous month, wrapping to December of the previous year.
func (d *Dashboard) PreviousMonth() models.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.state.Displayed().Prev()
	d.state.CurrentYear, d.state.CurrentMonth = prev.Year, prev.Month
	return cloneState(d.state)
}

// NextMonth shows the next month, wrapping to January of the next year.
func (d *Dashboard) NextMonth() models.ViewState {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.state.Displayed().Next()
	d.state.CurrentYear, d.state.CurrentMonth = next.Year, next.Month
	return cloneState(d.state)
}

// Hover marks date as the hovered cell.
func (d *Dashboard) Hover(date models.CalendarDate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.HoveredDate = &date
}

// ClearHover removes the hover mark.
func (d *Dashboard) ClearHover() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.HoveredDate = nil
}

// OpenModal opens the add-event dialog for a day of the displayed month.
// Padding cells from neighbouring months are not clickable.
func (d *Dashboard) OpenModal(date models.CalendarDate) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.Displayed().Contains(date) {
		return ErrDateNotInMonth
	}
	d.state.SelectedDate = &date
	d.state.ModalOpen = true
	return nil
}

// CancelModal closes the dialog. The draft is kept for the next opening.
func (d *Dashboard) CancelModal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.ModalOpen = false
}

// SetDraftTitle replaces the draft title as typed.
func (d *Dashboard) SetDraftTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.DraftTitle = title
}

// SetDraftColor selects a palette color for the draft.
func (d *Dashboard) SetDraftColor(color models.Color) error {
	if !d.cfg.Palette.Contains(color) {
		return ErrColorNotInPalette
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.DraftColor = d.cfg.Palette.Canonical(color)
	return nil
}

// Save stores the draft under the selected date. A blank title or a closed
// dialog leaves everything untouched and Save reports false. On success the
// dialog closes and the draft resets to an empty title and the first color.
func (d *Dashboard) Save() (models.Event, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.ModalOpen || d.state.SelectedDate == nil {
		return models.Event{}, false
	}
	if strings.TrimSpace(d.state.DraftTitle) == "" {
		return models.Event{}, false
	}

	event, ok := d.store.Add(*d.state.SelectedDate, d.state.DraftTitle, d.state.DraftColor)
	if !ok {
		return models.Event{}, false
	}

	d.state.ModalOpen = false
	d.state.DraftTitle = ""
	d.state.DraftColor = d.cfg.Palette.First()
	return event, true
}

// AddEvent appends an event directly, bypassing the dialog. A blank title is
// a silent no-op reported as false.
func (d *Dashboard) AddEvent(date models.CalendarDate, title string, color models.Color) (models.Event, bool, error) {
	if !d.cfg.Palette.Contains(color) {
		return models.Event{}, false, ErrColorNotInPalette
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	event, ok := d.store.Add(date, title, d.cfg.Palette.Canonical(color))
	return event, ok, nil
}

// EventsOn returns the events stored for date.
func (d *Dashboard) EventsOn(date models.CalendarDate) []models.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.On(date)
}

// EventsBetween returns stored events in [from, to] grouped by date.
func (d *Dashboard) EventsBetween(from, to models.CalendarDate) []models.DatedEvents {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Between(from, to)
}

// View renders the dashboard.
func (d *Dashboard) View() models.DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := d.today()
	state := cloneState(d.state)

	byDate := make(map[models.CalendarDate][]models.DeadlineView)
	for _, dl := range d.deadlines {
		byDate[dl.Date] = append(byDate[dl.Date], calendar.AnnotateDeadline(dl, today))
	}

	grid := calendar.BuildMonthGrid(state.Displayed())
	cells := make([]models.CellView, 0, len(grid))
	for _, c := range grid {
		evs := d.store.On(c.Date)
		if evs == nil {
			evs = []models.Event{}
		}
		dls := byDate[c.Date]
		if dls == nil {
			dls = []models.DeadlineView{}
		}
		cells = append(cells, models.CellView{
			Date:           c.Date,
			Day:            c.Date.Day,
			InCurrentMonth: c.InCurrentMonth,
			IsToday:        models.IsSameDate(c.Date, today),
			IsHovered:      state.HoveredDate != nil && models.IsSameDate(c.Date, *state.HoveredDate),
			Clickable:      c.InCurrentMonth,
			Events:         evs,
			Deadlines:      dls,
		})
	}

	modal := models.ModalView{
		Open:       state.ModalOpen,
		DraftTitle: state.DraftTitle,
		DraftColor: state.DraftColor,
	}
	if state.ModalOpen {
		modal.Date = state.SelectedDate
	}
	for _, c := range d.cfg.Palette {
		modal.Swatches = append(modal.Swatches, models.Swatch{Color: c, Selected: c == state.DraftColor})
	}

	routines := make([]models.Routine, len(d.cfg.Routines))
	copy(routines, d.cfg.Routines)

	return models.DashboardView{
		Title:      d.cfg.Title,
		Subtitle:   d.cfg.Subtitle,
		StreakDays: d.cfg.StreakDays,
		Today:      today,
		State:      state,
		Cells:      cells,
		Routines:   routines,
		Tip:        d.cfg.Tip,
		Message:    d.cfg.Message,
		Upcoming:   d.upcoming(today),
		Legend:     models.DeadlineTypes,
		Modal:      modal,
	}
}

// upcoming lists counted deadlines from today on, soonest first.
func (d *Dashboard) upcoming(today models.CalendarDate) []models.DeadlineView {
	out := []models.DeadlineView{}
	for _, dl := range d.deadlines {
		if !dl.Type.Counted() || dl.Date.Before(today) {
			continue
		}
		out = append(out, calendar.AnnotateDeadline(dl, today))
		if len(out) == d.cfg.UpcomingLimit {
			break
		}
	}
	return out
}

func cloneState(s models.ViewState) models.ViewState {
	if s.HoveredDate != nil {
		h := *s.HoveredDate
		s.HoveredDate = &h
	}
	if s.SelectedDate != nil {
		sel := *s.SelectedDate
		s.SelectedDate = &sel
	}
	return s
}
