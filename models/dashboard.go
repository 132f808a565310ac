package models

// ViewState is the mutable UI state of one mounted dashboard.
type ViewState struct {
	CurrentYear  int           `json:"currentYear"`
	CurrentMonth int           `json:"currentMonth"` // 0-11
	HoveredDate  *CalendarDate `json:"hoveredDate"`
	SelectedDate *CalendarDate `json:"selectedDate"`
	ModalOpen    bool          `json:"modalOpen"`
	DraftTitle   string        `json:"draftTitle"`
	DraftColor   Color         `json:"draftColor"`
}

// Displayed returns the month currently shown.
func (v ViewState) Displayed() YearMonth {
	return YearMonth{Year: v.CurrentYear, Month: v.CurrentMonth}
}

// CellView is one rendered calendar cell.
type CellView struct {
	Date           CalendarDate   `json:"date"`
	Day            int            `json:"day"`
	InCurrentMonth bool           `json:"inCurrentMonth"`
	IsToday        bool           `json:"isToday"`
	IsHovered      bool           `json:"isHovered"`
	Clickable      bool           `json:"clickable"`
	Events         []Event        `json:"events"`
	Deadlines      []DeadlineView `json:"deadlines"`
}

// Swatch is one palette button of the add-event modal.
type Swatch struct {
	Color    Color `json:"color"`
	Selected bool  `json:"selected"`
}

// ModalView is the add-event dialog.
type ModalView struct {
	Open       bool          `json:"open"`
	Date       *CalendarDate `json:"date,omitempty"`
	DraftTitle string        `json:"draftTitle"`
	DraftColor Color         `json:"draftColor"`
	Swatches   []Swatch      `json:"swatches"`
}

// Labels holds the localized strings of the page. Filled in by the HTTP layer.
type Labels struct {
	Locale           string            `json:"locale"`
	MonthTitle       string            `json:"monthTitle"`
	Weekdays         []string          `json:"weekdays"`
	StreakBadge      string            `json:"streakBadge,omitempty"`
	RoutineHeading   string            `json:"routineHeading"`
	TipHeading       string            `json:"tipHeading"`
	MessageHeading   string            `json:"messageHeading"`
	UpcomingHeading  string            `json:"upcomingHeading"`
	ModalHeading     string            `json:"modalHeading,omitempty"`
	TitlePlaceholder string            `json:"titlePlaceholder"`
	Save             string            `json:"save"`
	Cancel           string            `json:"cancel"`
	DeadlineTypes    map[string]string `json:"deadlineTypes"`
}

// DashboardView is the full render of a dashboard.
type DashboardView struct {
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle"`
	StreakDays int            `json:"streakDays"`
	Today      CalendarDate   `json:"today"`
	State      ViewState      `json:"state"`
	Cells      []CellView     `json:"cells"`
	Routines   []Routine      `json:"routines"`
	Tip        string         `json:"tip"`
	Message    string         `json:"message"`
	Upcoming   []DeadlineView `json:"upcoming"`
	Legend     []DeadlineType `json:"legend"`
	Modal      ModalView      `json:"modal"`
	Labels     *Labels        `json:"labels,omitempty"`
}

// Weeks splits the cells into rows of seven.
func (v DashboardView) Weeks() [][]CellView {
	weeks := make([][]CellView, 0, (len(v.Cells)+6)/7)
	for i := 0; i < len(v.Cells); i += 7 {
		end := i + 7
		if end > len(v.Cells) {
			end = len(v.Cells)
		}
		weeks = append(weeks, v.Cells[i:end])
	}
	return weeks
}

// DashboardResponse is returned when a dashboard is mounted.
type DashboardResponse struct {
	Session Session       `json:"session"`
	View    DashboardView `json:"view"`
}

// SaveResponse reports the outcome of saving the modal draft.
type SaveResponse struct {
	Saved bool          `json:"saved"`
	Event *Event        `json:"event,omitempty"`
	View  DashboardView `json:"view"`
}

// EventsResponse lists stored events by date.
type EventsResponse struct {
	From  CalendarDate  `json:"from"`
	To    CalendarDate  `json:"to"`
	Days  []DatedEvents `json:"days"`
	Total int           `json:"total"`
}
