package models

import (
	"strings"
	"time"
)

type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "in_progress"
	GoalStatusCompleted  GoalStatus = "completed"
)

type GoalType string

const (
	GoalTypeShort GoalType = "short"
	GoalTypeLong  GoalType = "long"
)

type Goal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        GoalType   `json:"type"`
	Category    string     `json:"category"`
	Status      GoalStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Progress    int        `json:"progress"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (goal *Goal) ApplyDefaults() {
	if goal.Type == "" {
		goal.Type = GoalTypeShort
	}
	if goal.Category == "" {
		goal.Category = "personal"
	}
	if goal.Status == "" {
		goal.Status = GoalStatusInProgress
	}
	if goal.Priority == "" {
		goal.Priority = PriorityMedium
	}
}

// ClampProgress bounds a progress percentage to 0..100.
func ClampProgress(progress int) int {
	return min(100, max(0, progress))
}

func (goal Goal) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(goal.Title) == "" {
		errs.Add("title", "title is required")
	}
	switch goal.Type {
	case GoalTypeShort, GoalTypeLong:
	default:
		errs.Add("type", "type must be short or long")
	}
	switch goal.Status {
	case GoalStatusInProgress, GoalStatusCompleted:
	default:
		errs.Add("status", "status must be in_progress or completed")
	}
	if !validPriority(goal.Priority) {
		errs.Add("priority", "priority must be low, medium or high")
	}
	if goal.Progress < 0 || goal.Progress > 100 {
		errs.Add("progress", "progress must be between 0 and 100")
	}
	if goal.StartDate != nil && goal.EndDate != nil && goal.EndDate.Before(*goal.StartDate) {
		errs.Add("endDate", "end date must not be before start date")
	}
	return errs.Err()
}
