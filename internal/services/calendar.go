package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
)

const routineEventLength = 30 * time.Minute

type CalendarService struct {
	taskRepo    repository.TaskRepository
	routineRepo repository.RoutineRepository
	clock       clock.Clock
}

func NewCalendarService(taskRepo repository.TaskRepository, routineRepo repository.RoutineRepository, clock clock.Clock) *CalendarService {
	return &CalendarService{taskRepo: taskRepo, routineRepo: routineRepo, clock: clock}
}

// Feed renders a user's timed routines as weekly recurring events and open tasks with a
// due date as all-day events.
func (service *CalendarService) Feed(ctx context.Context, user models.User) (string, error) {
	routines, err := service.routineRepo.FindAll(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("finding routines for feed: %w", err)
	}
	notStarted := models.TaskStatusNotStarted
	tasks, err := service.taskRepo.FindAll(ctx, user.ID, repository.TaskFilter{Status: &notStarted, HasDue: true})
	if err != nil {
		return "", fmt.Errorf("finding tasks for feed: %w", err)
	}

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//habit-hub//habit-hub//EN")
	calendar.SetXWRCalName(user.Name + " - Habit Hub")

	now := service.clock.Now()
	for _, routine := range routines {
		if !routine.Enabled || routine.Time == nil {
			continue
		}
		next, ok := NextOccurrence(routine, now)
		if !ok {
			continue
		}
		start, err := At(next, *routine.Time)
		if err != nil {
			slog.Warn("skipping routine with bad time", "routine", routine.ID, "time", *routine.Time)
			continue
		}

		event := calendar.AddEvent("routine-" + routine.ID + "@habit-hub")
		event.SetSummary(routine.Title)
		event.SetDtStampTime(routine.UpdatedAt)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(routineEventLength))
		event.AddRrule(WeeklyRule(routine.Weekdays(), weekdayShift(start)))
	}

	for _, task := range tasks {
		due := *task.DueDate
		event := calendar.AddEvent("task-" + task.ID + "@habit-hub")
		event.SetSummary(task.Title)
		if task.Description != "" {
			event.SetDescription(task.Description)
		}
		event.SetDtStampTime(task.UpdatedAt)
		event.SetAllDayStartAt(due)
		event.SetAllDayEndAt(due.AddDate(0, 0, 1))
	}

	return calendar.Serialize(), nil
}

// weekdayShift is how many days the UTC rendering of t moves its weekday.
func weekdayShift(t time.Time) int {
	shift := int(t.UTC().Weekday()) - int(t.Weekday())
	switch shift {
	case 6:
		return -1
	case -6:
		return 1
	}
	return shift
}
