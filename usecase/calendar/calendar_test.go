package calendar

import (
	"testing"
	"time"

	"github.com/tasksure/client/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthGrid_March2024(t *testing.T) {
	// Friday 2024-03-15; March 1st is a Friday (weekday index 5).
	today := date(2024, time.March, 15)
	completions := []time.Time{
		time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC),
		time.Date(2024, time.March, 12, 22, 15, 0, 0, time.UTC),
	}

	grid := MonthGrid(today, completions)

	if got := len(grid); got != 5+31 {
		t.Fatalf("len(grid)=%d, want %d", got, 5+31)
	}
	for i := 0; i < 5; i++ {
		if !grid[i].IsPadding() {
			t.Fatalf("grid[%d].IsPadding()=false, want true", i)
		}
	}
	for day := 1; day <= 31; day++ {
		cell := grid[5+day-1]
		if cell.Day != day {
			t.Fatalf("grid[%d].Day=%d, want %d", 5+day-1, cell.Day, day)
		}
		wantCompleted := day == 5 || day == 12
		if cell.Completed != wantCompleted {
			t.Fatalf("day %d Completed=%v, want %v", day, cell.Completed, wantCompleted)
		}
	}
}

func TestMonthGrid_NoLeadingPadding(t *testing.T) {
	// September 2024 starts on a Sunday.
	grid := MonthGrid(date(2024, time.September, 10), nil)

	if got := len(grid); got != 30 {
		t.Fatalf("len(grid)=%d, want 30", got)
	}
	if grid[0].Day != 1 {
		t.Fatalf("grid[0].Day=%d, want 1", grid[0].Day)
	}
}

func TestMonthGrid_IgnoresOtherMonths(t *testing.T) {
	today := date(2024, time.March, 15)
	completions := []time.Time{
		date(2024, time.February, 5),
		date(2024, time.April, 5),
		date(2023, time.March, 5),
	}

	grid := MonthGrid(today, completions)
	for _, cell := range grid {
		if cell.Completed {
			t.Fatalf("day %d marked completed from another month", cell.Day)
		}
	}
}

func TestMonthGrid_Pure(t *testing.T) {
	today := date(2024, time.March, 15)
	completions := []time.Time{date(2024, time.March, 5)}

	first := MonthGrid(today, completions)
	second := MonthGrid(today, completions)

	if len(first) != len(second) {
		t.Fatalf("grids differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("grid[%d] differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDatesFromCounts(t *testing.T) {
	counts := map[string]int{
		"2024-03-12": 1,
		"2024-03-05": 2,
		"2024-03-20": 0,
		"not a date": 3,
	}

	dates := DatesFromCounts(counts)
	if len(dates) != 2 {
		t.Fatalf("len(dates)=%d, want 2", len(dates))
	}
	if dates[0].Day() != 5 || dates[1].Day() != 12 {
		t.Fatalf("dates=%v, want March 5th then 12th", dates)
	}

	grid := MonthGrid(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local), dates)
	for _, cell := range grid {
		wantCompleted := cell.Day == 5 || cell.Day == 12
		if cell.Completed != wantCompleted {
			t.Fatalf("day %d Completed=%v, want %v", cell.Day, cell.Completed, wantCompleted)
		}
	}
}

func TestDatesFromCounts_Empty(t *testing.T) {
	if dates := DatesFromCounts(nil); dates != nil {
		t.Fatalf("DatesFromCounts(nil)=%v, want nil", dates)
	}
}

func TestCompletionDates(t *testing.T) {
	done := date(2024, time.March, 5)
	tasks := []domain.Task{
		{ID: "1", Title: "read", CompletedAt: &done},
		{ID: "2", Title: "run"},
	}

	dates := CompletionDates(tasks)
	if len(dates) != 1 {
		t.Fatalf("len(dates)=%d, want 1", len(dates))
	}
	if !dates[0].Equal(done) {
		t.Fatalf("dates[0]=%v, want %v", dates[0], done)
	}
}
