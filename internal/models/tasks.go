package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not_started"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Urgency string

const (
	UrgencyUrgent    Urgency = "urgent"
	UrgencyImportant Urgency = "important"
	UrgencyNormal    Urgency = "normal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Urgency     Urgency    `json:"urgency"`
	Category    string     `json:"category"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Order       int        `json:"order"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (task *Task) ApplyDefaults() {
	if task.Status == "" {
		task.Status = TaskStatusNotStarted
	}
	if task.Urgency == "" {
		task.Urgency = UrgencyNormal
	}
	if task.Category == "" {
		task.Category = "personal"
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
}

func (task Task) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(task.Title) == "" {
		errs.Add("title", "title is required")
	}
	switch task.Status {
	case TaskStatusNotStarted, TaskStatusCompleted:
	default:
		errs.Add("status", "status must be not_started or completed")
	}
	switch task.Urgency {
	case UrgencyUrgent, UrgencyImportant, UrgencyNormal:
	default:
		errs.Add("urgency", "urgency must be urgent, important or normal")
	}
	if !validPriority(task.Priority) {
		errs.Add("priority", "priority must be low, medium or high")
	}
	return errs.Err()
}

func validPriority(priority Priority) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
