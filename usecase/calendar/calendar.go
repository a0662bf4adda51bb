package calendar

import (
	"sort"
	"time"

	"github.com/tasksure/client/domain"
)

// dayFormat is the local calendar-date form completions are compared in.
const dayFormat = "2006-01-02"

// Cell is one slot of the month grid: either leading padding before the
// first day of the month (Day == 0) or a day tagged with its completion
// state.
type Cell struct {
	Day       int
	Completed bool
}

// IsPadding reports whether the cell precedes day 1 of the month.
func (c Cell) IsPadding() bool {
	return c.Day == 0
}

// MonthGrid derives the calendar grid for today's month. The grid opens
// with one padding cell per weekday index of day 1 (Sunday = 0),
// followed by one cell per day, marked completed when the day's local
// date appears among the completion instants. Pure: identical inputs
// always produce the identical grid.
func MonthGrid(today time.Time, completions []time.Time) []Cell {
	year, month, _ := today.Date()
	loc := today.Location()

	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()
	leading := int(firstOfMonth.Weekday())

	completed := make(map[string]struct{}, len(completions))
	for _, instant := range completions {
		completed[instant.In(loc).Format(dayFormat)] = struct{}{}
	}

	cells := make([]Cell, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc).Format(dayFormat)
		_, ok := completed[date]
		cells = append(cells, Cell{Day: day, Completed: ok})
	}
	return cells
}

// DatesFromCounts converts per-day completion counts keyed by local
// calendar date into completion instants. Days with no completions and
// keys that do not parse as dates are skipped. The result is sorted so
// derived grids stay stable across runs.
func DatesFromCounts(counts map[string]int) []time.Time {
	var dates []time.Time
	for day, n := range counts {
		if n <= 0 {
			continue
		}
		date, err := time.ParseInLocation(dayFormat, day, time.Local)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// CompletionDates extracts the completion instants from a task list.
func CompletionDates(tasks []domain.Task) []time.Time {
	var dates []time.Time
	for _, t := range tasks {
		if t.CompletedAt != nil {
			dates = append(dates, *t.CompletedAt)
		}
	}
	return dates
}
