package calendar

import (
	"fmt"
	"time"

	"devroutine/models"
)

// UrgentWithin is the D-day threshold at or below which a deadline is urgent.
const UrgentWithin = 3

const secondsPerDay = 24 * 60 * 60

// DaysUntil counts whole calendar days from from to to. Negative when to is past.
// It subtracts day numbers, so dates centuries apart stay exact.
func DaysUntil(from, to models.CalendarDate) int {
	return int(dayNumber(to) - dayNumber(from))
}

// dayNumber is the count of days since the Unix epoch of a UTC midnight.
func dayNumber(d models.CalendarDate) int64 {
	return d.Time(time.UTC).Unix() / secondsPerDay
}

// DDayLabel formats a countdown: D-3 ahead, D-DAY on the day, D+2 after.
func DDayLabel(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("D-%d", n)
	case n == 0:
		return "D-DAY"
	default:
		return fmt.Sprintf("D+%d", -n)
	}
}

// AnnotateDeadline computes the countdown of d as seen from today.
func AnnotateDeadline(d models.Deadline, today models.CalendarDate) models.DeadlineView {
	v := models.DeadlineView{Deadline: d}
	if !d.Type.Counted() {
		return v
	}
	v.DDay = DaysUntil(today, d.Date)
	v.DDayLabel = DDayLabel(v.DDay)
	v.Urgent = v.DDay >= 0 && v.DDay <= UrgentWithin
	return v
}
