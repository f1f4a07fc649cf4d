// Package clock supplies the notion of "today" used by the streak engine.
package clock

import "time"

const DayLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock in a fixed location.
type System struct {
	Location *time.Location
}

func (system System) Now() time.Time {
	if system.Location == nil {
		return time.Now()
	}
	return time.Now().In(system.Location)
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (fixed Fixed) Now() time.Time {
	return fixed.At
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}

func Yesterday(c Clock) time.Time {
	return Today(c).AddDate(0, 0, -1)
}

// DayKey formats the calendar day of t, the form completion logs are keyed by.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}
