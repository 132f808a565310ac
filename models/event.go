package models

import (
	"regexp"
	"strings"
	"time"
)

// Color is a #RRGGBB swatch color.
type Color string

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Valid reports whether c is a #RRGGBB hex color.
func (c Color) Valid() bool {
	return colorPattern.MatchString(string(c))
}

// Palette is the fixed, ordered set of colors an event may use.
type Palette []Color

// DefaultPalette is the swatch row of the add-event modal.
var DefaultPalette = Palette{"#7886C7", "#F4B6B6", "#4EA8DE", "#FFD43B"}

// First returns the palette's first color, the draft default.
func (p Palette) First() Color {
	if len(p) == 0 {
		return DefaultPalette[0]
	}
	return p[0]
}

// Contains matches colors case-insensitively.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if strings.EqualFold(string(pc), string(c)) {
			return true
		}
	}
	return false
}

// Canonical returns the palette's spelling of c, or c unchanged if absent.
func (p Palette) Canonical(c Color) Color {
	for _, pc := range p {
		if strings.EqualFold(string(pc), string(c)) {
			return pc
		}
	}
	return c
}

// Event is a user-created calendar entry.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Color     Color     `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// DatedEvents groups the events stored under one date.
type DatedEvents struct {
	Date   CalendarDate `json:"date"`
	Events []Event      `json:"events"`
}

// DeadlineType classifies job-search deadlines and personal entries.
type DeadlineType string

const (
	DeadlineDocument  DeadlineType = "document"
	DeadlineCoding    DeadlineType = "coding"
	DeadlineInterview DeadlineType = "interview"
	DeadlineBasic     DeadlineType = "basic"
)

// DeadlineTypes lists the known types in legend order.
var DeadlineTypes = []DeadlineType{DeadlineDocument, DeadlineCoding, DeadlineInterview, DeadlineBasic}

// Valid reports whether t is a known type.
func (t DeadlineType) Valid() bool {
	for _, known := range DeadlineTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Counted reports whether the type shows a D-day countdown. Basic entries do not.
func (t DeadlineType) Counted() bool {
	return t != DeadlineBasic
}

// Deadline is a configured job-search deadline or personal fixed event.
type Deadline struct {
	Date  CalendarDate `json:"date"`
	Title string       `json:"title"`
	Type  DeadlineType `json:"type"`
}

// DeadlineView is a deadline annotated relative to today.
type DeadlineView struct {
	Deadline
	DDay      int    `json:"dday"`
	DDayLabel string `json:"ddayLabel,omitempty"`
	Urgent    bool   `json:"urgent"`
}
