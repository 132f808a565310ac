package calendar

import (
	"testing"
	"time"

	"devroutine/models"
)

func TestBuildMonthGrid_AlwaysFortyTwoCells(t *testing.T) {
	for year := 1999; year <= 2031; year++ {
		for month := 0; month < 12; month++ {
			cells := BuildMonthGrid(models.YearMonth{Year: year, Month: month})
			if len(cells) != GridSize {
				t.Fatalf("%04d-%02d: expected %d cells, got %d", year, month+1, GridSize, len(cells))
			}
		}
	}
}

func TestBuildMonthGrid_CurrentMonthCountMatchesLeapRule(t *testing.T) {
	expected := func(year, month int) int {
		switch time.Month(month + 1) {
		case time.February:
			if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
				return 29
			}
			return 28
		case time.April, time.June, time.September, time.November:
			return 30
		default:
			return 31
		}
	}

	years := []int{1900, 2000, 2023, 2024, 2025, 2100, 2400}
	for _, year := range years {
		for month := 0; month < 12; month++ {
			cells := BuildMonthGrid(models.YearMonth{Year: year, Month: month})
			count := 0
			for _, c := range cells {
				if c.InCurrentMonth {
					count++
				}
			}
			if want := expected(year, month); count != want {
				t.Errorf("%04d-%02d: expected %d current-month cells, got %d", year, month+1, want, count)
			}
		}
	}
}

func TestBuildMonthGrid_ConsecutiveDaysStartingSunday(t *testing.T) {
	cells := BuildMonthGrid(models.YearMonth{Year: 2025, Month: 10}) // November 2025

	if wd := cells[0].Date.Weekday(); wd != time.Sunday {
		t.Fatalf("first cell should be a Sunday, got %s", wd)
	}
	for i := 1; i < len(cells); i++ {
		want := cells[i-1].Date.AddDays(1)
		if cells[i].Date != want {
			t.Fatalf("cell %d: expected %s, got %s", i, want, cells[i].Date)
		}
	}

	// November 1st 2025 is a Saturday: six trailing October days lead the grid.
	if cells[0].Date != (models.CalendarDate{Year: 2025, Month: time.October, Day: 26}) {
		t.Errorf("unexpected first cell %s", cells[0].Date)
	}
	if cells[6].Date.Day != 1 || !cells[6].InCurrentMonth {
		t.Errorf("expected November 1st in the seventh cell, got %+v", cells[6])
	}
	last := cells[len(cells)-1]
	if last.InCurrentMonth || last.Date.Month != time.December || last.Date.Day != 6 {
		t.Errorf("unexpected last cell %+v", last)
	}
}

func TestBuildMonthGrid_YearBoundaries(t *testing.T) {
	jan := BuildMonthGrid(models.YearMonth{Year: 2026, Month: 0})
	// January 1st 2026 is a Thursday, so the grid opens with December 2025.
	if jan[0].Date != (models.CalendarDate{Year: 2025, Month: time.December, Day: 28}) {
		t.Errorf("expected 2025-12-28 first, got %s", jan[0].Date)
	}

	var days []int
	for _, c := range jan {
		if c.InCurrentMonth {
			days = append(days, c.Date.Day)
		}
	}
	if len(days) != 31 || days[0] != 1 || days[30] != 31 {
		t.Fatalf("expected January days 1..31, got %v", days)
	}

	dec := BuildMonthGrid(models.YearMonth{Year: 2025, Month: 11})
	tail := dec[len(dec)-1]
	if tail.Date.Year != 2026 || tail.Date.Month != time.January {
		t.Errorf("expected December grid to spill into January 2026, got %s", tail.Date)
	}
}

func TestBuildMonthGrid_MonthStartingOnSundayHasNoLeadingCells(t *testing.T) {
	// February 2026 starts on a Sunday.
	cells := BuildMonthGrid(models.YearMonth{Year: 2026, Month: 1})
	if !cells[0].InCurrentMonth || cells[0].Date.Day != 1 {
		t.Fatalf("expected grid to open on February 1st, got %+v", cells[0])
	}
	if got := MinimalRows(models.YearMonth{Year: 2026, Month: 1}); got != 4 {
		t.Errorf("expected 4 minimal rows, got %d", got)
	}
}

func TestMinimalRows(t *testing.T) {
	tests := []struct {
		name string
		ym   models.YearMonth
		want int
	}{
		{"five rows", models.YearMonth{Year: 2025, Month: 11}, 5},
		{"six rows", models.YearMonth{Year: 2025, Month: 10}, 6},
		{"long month from Saturday", models.YearMonth{Year: 2026, Month: 7}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinimalRows(tt.ym); got != tt.want {
				t.Errorf("MinimalRows(%s) = %d, want %d", tt.ym, got, tt.want)
			}
		})
	}
}

func TestWeeks(t *testing.T) {
	weeks := Weeks(BuildMonthGrid(models.YearMonth{Year: 2025, Month: 0}))
	if len(weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("week %d: expected 7 days, got %d", i, len(w))
		}
	}
}

func TestDaysIn(t *testing.T) {
	if DaysIn(2024, time.February) != 29 {
		t.Error("2024 is a leap year")
	}
	if DaysIn(1900, time.February) != 28 {
		t.Error("1900 is not a leap year")
	}
	if DaysIn(2000, time.February) != 29 {
		t.Error("2000 is a leap year")
	}
	if DaysIn(2025, time.December) != 31 {
		t.Error("December has 31 days")
	}
}
