package events

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"devroutine/models"
)

// Store holds events by calendar day in insertion order. A date key exists
// only once an event has been added for it, and entries are never removed.
//
// Store is not safe for concurrent use; its owner serializes access.
type Store struct {
	events map[models.CalendarDate][]models.Event
	now    func() time.Time
}

// NewStore returns an empty store. now stamps CreatedAt and defaults to time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		events: make(map[models.CalendarDate][]models.Event),
		now:    now,
	}
}

// Add appends an event under date with the title as typed. A title that is
// blank after trimming is ignored and Add reports false.
func (s *Store) Add(date models.CalendarDate, title string, color models.Color) (models.Event, bool) {
	if strings.TrimSpace(title) == "" {
		return models.Event{}, false
	}

	event := models.Event{
		ID:        uuid.NewString(),
		Title:     title,
		Color:     color,
		CreatedAt: s.now().UTC(),
	}
	s.events[date] = append(s.events[date], event)
	return event, true
}

// On returns a copy of the events stored for date, or nil.
func (s *Store) On(date models.CalendarDate) []models.Event {
	stored := s.events[date]
	if len(stored) == 0 {
		return nil
	}
	out := make([]models.Event, len(stored))
	copy(out, stored)
	return out
}

// Between returns the events of every date in [from, to], ordered by date.
func (s *Store) Between(from, to models.CalendarDate) []models.DatedEvents {
	if to.Before(from) {
		from, to = to, from
	}

	var result []models.DatedEvents
	for _, date := range s.Dates() {
		if date.Before(from) || to.Before(date) {
			continue
		}
		result = append(result, models.DatedEvents{Date: date, Events: s.On(date)})
	}
	return result
}

// Dates returns every date that has events, ascending.
func (s *Store) Dates() []models.CalendarDate {
	dates := make([]models.CalendarDate, 0, len(s.events))
	for d := range s.events {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// Len returns the total number of stored events.
func (s *Store) Len() int {
	n := 0
	for _, evs := range s.events {
		n += len(evs)
	}
	return n
}
