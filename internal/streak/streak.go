// Package streak decides how a routine's current and best streak move when today's
// completion is toggled.
package streak

import (
	"sort"
	"time"
)

// Counters are the running streak totals stored on a routine.
type Counters struct {
	Current int `json:"currentStreak"`
	Best    int `json:"bestStreak"`
}

// Entry is a day's completion log. A nil *Entry means no log exists for that day.
type Entry struct {
	Completed bool
}

// ApplyToggle computes the counters after setting today's completion to completed.
//
// The stored current streak is trusted as the running total and adjusted by at most one;
// yesterday is consulted only when no log exists for today yet.
func ApplyToggle(before Counters, today, yesterday *Entry, completed bool) Counters {
	current := max(before.Current, 0)
	best := max(before.Best, 0)

	switch {
	case today == nil && completed:
		if yesterday != nil && yesterday.Completed {
			current++
		} else {
			current = 1
		}
	case today == nil:
		// a not-completed log for a fresh day changes nothing
	case today.Completed && !completed:
		current = max(0, current-1)
	case !today.Completed && completed:
		current++
	}

	return Counters{Current: current, Best: max(best, current)}
}

// Day is one stored completion log with its calendar date.
type Day struct {
	Date      time.Time
	Completed bool
}

// Recompute derives the counters from a routine's full log history. The current streak
// is the run of completed days ending today, or yesterday when today is not completed
// yet; any other gap resets it to zero.
func Recompute(days []Day, today time.Time) Counters {
	completed := make(map[string]bool, len(days))
	var dates []time.Time
	for _, day := range days {
		if !day.Completed {
			continue
		}
		key := day.Date.Format(time.DateOnly)
		if completed[key] {
			continue
		}
		completed[key] = true
		dates = append(dates, calendarDay(day.Date))
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	best, run := 0, 0
	for i, date := range dates {
		if i > 0 && dates[i-1].AddDate(0, 0, 1).Equal(date) {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}

	cursor := calendarDay(today)
	if !completed[cursor.Format(time.DateOnly)] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	current := 0
	for completed[cursor.Format(time.DateOnly)] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return Counters{Current: current, Best: max(best, current)}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
