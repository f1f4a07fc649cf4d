package models

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

type RoutineType string

const (
	RoutineMorning   RoutineType = "morning"
	RoutineAfternoon RoutineType = "afternoon"
	RoutineEvening   RoutineType = "evening"
	RoutineAnytime   RoutineType = "anytime"
)

const (
	RepeatDaily    = "daily"
	RepeatWeekly   = "weekly"
	RepeatWeekdays = "weekdays"
	RepeatWeekends = "weekends"
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Routine struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Title         string       `json:"title"`
	Type          RoutineType  `json:"type"`
	Time          *string      `json:"time"`
	RepeatDays    string       `json:"repeatDays"`
	Enabled       bool         `json:"enabled"`
	CurrentStreak int          `json:"currentStreak"`
	BestStreak    int          `json:"bestStreak"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Logs          []RoutineLog `json:"logs"`
}

// RoutineLog records whether a routine was completed on one calendar day.
type RoutineLog struct {
	ID        string    `json:"id"`
	RoutineID string    `json:"routineId"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (routine *Routine) ApplyDefaults() {
	if routine.Type == "" {
		routine.Type = RoutineMorning
	}
	if routine.RepeatDays == "" {
		routine.RepeatDays = RepeatDaily
	}
}

func (routine Routine) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(routine.Title) == "" {
		errs.Add("title", "title is required")
	}
	switch routine.Type {
	case RoutineMorning, RoutineAfternoon, RoutineEvening, RoutineAnytime:
	default:
		errs.Add("type", "type must be morning, afternoon, evening or anytime")
	}
	if routine.Time != nil && !timeOfDayPattern.MatchString(*routine.Time) {
		errs.Add("time", "time must use HH:MM")
	}
	if _, err := ParseRepeatDays(routine.RepeatDays, time.Sunday); err != nil {
		errs.Add("repeatDays", err.Error())
	}
	if routine.CurrentStreak < 0 || routine.BestStreak < routine.CurrentStreak {
		errs.Add("bestStreak", "best streak must be at least the current streak")
	}
	return errs.Err()
}

// Weekdays resolves the repeat descriptor into the days of the week the routine runs on.
func (routine Routine) Weekdays() []time.Weekday {
	created := routine.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	days, err := ParseRepeatDays(routine.RepeatDays, created.Weekday())
	if err != nil {
		return nil
	}
	return days
}

func (routine Routine) ScheduledOn(day time.Time) bool {
	return slices.Contains(routine.Weekdays(), day.Weekday())
}

// ParseRepeatDays accepts a preset name or a comma separated list of weekday
// numbers (0 = Sunday). Weekly routines run on the anchor weekday.
func ParseRepeatDays(value string, anchor time.Weekday) ([]time.Weekday, error) {
	switch strings.TrimSpace(value) {
	case "", RepeatDaily:
		return []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}, nil
	case RepeatWeekdays:
		return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}, nil
	case RepeatWeekends:
		return []time.Weekday{time.Sunday, time.Saturday}, nil
	case RepeatWeekly:
		return []time.Weekday{anchor}, nil
	}

	var days []time.Weekday
	for _, part := range strings.Split(value, ",") {
		number, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || number < 0 || number > 6 {
			return nil, fmt.Errorf("repeat days must be a preset or weekday numbers 0-6, got %q", part)
		}
		day := time.Weekday(number)
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}
	slices.Sort(days)
	return days, nil
}
