package services

import (
	"time"

	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/models"
)

// parseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD days. An empty value clears the date.
func parseDate(field string, value string, errs *models.ValidationErrors) *time.Time {
	if value == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse(clock.DayLayout, value); err == nil {
		return &parsed
	}
	errs.Add(field, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	return nil
}
