package calendar

import (
	"time"

	"devroutine/models"
)

// GridSize is the number of cells in a month grid: six Sunday-first weeks.
const GridSize = 42

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// BuildMonthGrid returns the 42 cells shown for ym, starting on the Sunday on
// or before the first of the month. Cells outside ym are padded from the
// neighbouring months and flagged InCurrentMonth=false.
func BuildMonthGrid(ym models.YearMonth) []models.DayCell {
	first := ym.FirstDay()
	lead := int(first.Weekday())
	total := DaysIn(ym.Year, ym.TimeMonth())

	prev := ym.Prev()
	prevLast := DaysIn(prev.Year, prev.TimeMonth())
	next := ym.Next()

	cells := make([]models.DayCell, 0, GridSize)
	for i := lead - 1; i >= 0; i-- {
		cells = append(cells, models.DayCell{
			Date: models.CalendarDate{Year: prev.Year, Month: prev.TimeMonth(), Day: prevLast - i},
		})
	}
	for day := 1; day <= total; day++ {
		cells = append(cells, models.DayCell{
			Date:           models.CalendarDate{Year: ym.Year, Month: ym.TimeMonth(), Day: day},
			InCurrentMonth: true,
		})
	}
	for day := 1; len(cells) < GridSize; day++ {
		cells = append(cells, models.DayCell{
			Date: models.CalendarDate{Year: next.Year, Month: next.TimeMonth(), Day: day},
		})
	}
	return cells
}

// MinimalRows returns how many week rows actually contain days of ym.
func MinimalRows(ym models.YearMonth) int {
	used := int(ym.FirstDay().Weekday()) + DaysIn(ym.Year, ym.TimeMonth())
	return (used + 6) / 7
}

// Weeks splits grid cells into rows of seven.
func Weeks(cells []models.DayCell) [][]models.DayCell {
	weeks := make([][]models.DayCell, 0, len(cells)/7+1)
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		weeks = append(weeks, cells[i:end])
	}
	return weeks
}
