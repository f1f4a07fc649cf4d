package services

import (
	"testing"
	"time"

	"github.com/bensuskins/habit-hub/internal/models"
)

func TestNextOccurrence(t *testing.T) {
	// 2025-03-15 is a Saturday.
	saturday := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		repeatDays string
		expected   time.Time
	}{
		{"daily runs today", "daily", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"weekdays skip the weekend", "weekdays", time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)},
		{"weekends include saturday", "weekends", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"explicit wednesday", "3", time.Date(2025, 3, 19, 0, 0, 0, 0, time.UTC)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, ok := NextOccurrence(models.Routine{RepeatDays: test.repeatDays}, saturday)
			if !ok {
				t.Fatal("expected an occurrence")
			}
			if !next.Equal(test.expected) {
				t.Errorf("expected %v, got %v", test.expected, next)
			}
		})
	}
}

func TestNextOccurrence_InvalidRepeatDays(t *testing.T) {
	if _, ok := NextOccurrence(models.Routine{RepeatDays: "never"}, time.Now()); ok {
		t.Error("expected no occurrence for an invalid descriptor")
	}
}

func TestAt(t *testing.T) {
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	at, err := At(day, "07:45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at.Hour() != 7 || at.Minute() != 45 || at.Day() != 15 {
		t.Errorf("unexpected time %v", at)
	}

	if _, err := At(day, "late"); err == nil {
		t.Error("expected error for malformed time")
	}
}

func TestWeeklyRule(t *testing.T) {
	weekdays := []time.Weekday{time.Monday, time.Wednesday, time.Saturday}

	if rule := WeeklyRule(weekdays, 0); rule != "FREQ=WEEKLY;BYDAY=MO,WE,SA" {
		t.Errorf("unexpected rule %q", rule)
	}
	if rule := WeeklyRule(weekdays, 1); rule != "FREQ=WEEKLY;BYDAY=TU,TH,SU" {
		t.Errorf("unexpected shifted rule %q", rule)
	}
	if rule := WeeklyRule(weekdays, -1); rule != "FREQ=WEEKLY;BYDAY=SU,TU,FR" {
		t.Errorf("unexpected negative shift %q", rule)
	}
}
