package models

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire format for calendar dates (always zero-padded).
const DateFormat = "2006-01-02"

// CalendarDate identifies a calendar day independent of time of day.
// It is comparable and is used directly as a map key.
type CalendarDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// NewCalendarDate normalizes out-of-range components the same way time.Date
// does, so day 0 of a month is the last day of the previous month.
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return DateOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseCalendarDate parses a YYYY-MM-DD string.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return CalendarDate{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight of the date in loc.
func (d CalendarDate) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return NewCalendarDate(d.Year, d.Month, d.Day+n)
}

// Weekday returns the day of the week, Sunday = 0.
func (d CalendarDate) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// IsZero reports whether d is the zero value.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(b []byte) error {
	parsed, err := ParseCalendarDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsSameDate compares only year, month and day.
func IsSameDate(a, b CalendarDate) bool {
	return a.Year == b.Year && a.Month == b.Month && a.Day == b.Day
}

// YearMonth is the month shown by the calendar. Month is 0-based (0 = January).
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// YearMonthOf returns the month containing d.
func YearMonthOf(d CalendarDate) YearMonth {
	return YearMonth{Year: d.Year, Month: int(d.Month) - 1}
}

// Prev returns the previous month, wrapping January to December of the previous year.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == 0 {
		return YearMonth{Year: ym.Year - 1, Month: 11}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Next returns the following month, wrapping December to January of the next year.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == 11 {
		return YearMonth{Year: ym.Year + 1, Month: 0}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// TimeMonth converts the 0-based month to time.Month.
func (ym YearMonth) TimeMonth() time.Month {
	return time.Month(ym.Month + 1)
}

// FirstDay returns the first day of the month.
func (ym YearMonth) FirstDay() CalendarDate {
	return CalendarDate{Year: ym.Year, Month: ym.TimeMonth(), Day: 1}
}

// Contains reports whether d falls inside the month.
func (ym YearMonth) Contains(d CalendarDate) bool {
	return d.Year == ym.Year && d.Month == ym.TimeMonth()
}

// Valid reports whether Month is within 0..11.
func (ym YearMonth) Valid() bool {
	return ym.Month >= 0 && ym.Month <= 11
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month+1)
}

// DayCell is one position of the month grid.
type DayCell struct {
	Date           CalendarDate `json:"date"`
	InCurrentMonth bool         `json:"inCurrentMonth"`
}

// CalendarGridResponse is the API response for the pure grid endpoint.
type CalendarGridResponse struct {
	Year        int       `json:"year"`
	Month       int       `json:"month"` // 1-12
	DaysInMonth int       `json:"daysInMonth"`
	Rows        int       `json:"rows"` // minimal rows needed; cells always hold 42 entries
	Cells       []DayCell `json:"cells"`
}
