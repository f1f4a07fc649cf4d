package services

import (
	"slices"
	"strings"
	"time"

	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/models"
)

var icalWeekdays = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// NextOccurrence returns the first day on or after from that the routine is scheduled for,
// at local midnight. The second result is false when the routine has no scheduled days.
func NextOccurrence(routine models.Routine, from time.Time) (time.Time, bool) {
	weekdays := routine.Weekdays()
	if len(weekdays) == 0 {
		return time.Time{}, false
	}

	day := clock.StartOfDay(from)
	for offset := 0; offset < 7; offset++ {
		candidate := day.AddDate(0, 0, offset)
		if slices.Contains(weekdays, candidate.Weekday()) {
			return candidate, true
		}
	}
	return time.Time{}, false
}

// At combines a day with an HH:MM time of day in the day's location.
func At(day time.Time, timeOfDay string) (time.Time, error) {
	parsed, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

// WeeklyRule builds an RRULE for the given weekdays, shifted by shift days. A shift is
// needed when the event start is written in UTC and lands on a different weekday.
func WeeklyRule(weekdays []time.Weekday, shift int) string {
	days := make([]string, 0, len(weekdays))
	for _, weekday := range weekdays {
		shifted := time.Weekday(((int(weekday)+shift)%7 + 7) % 7)
		days = append(days, icalWeekdays[shifted])
	}
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(days, ",")
}
