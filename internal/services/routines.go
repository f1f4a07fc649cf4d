package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/database"
	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/streak"
)

// RecentLogLimit is how many logs a single routine read returns.
const RecentLogLimit = 30

type RoutineInput struct {
	Title      *string             `json:"title"`
	Type       *models.RoutineType `json:"type"`
	Time       *string             `json:"time"`
	RepeatDays *string             `json:"repeatDays"`
	Enabled    *bool               `json:"enabled"`
}

func (input RoutineInput) apply(routine *models.Routine) {
	if input.Title != nil {
		routine.Title = *input.Title
	}
	if input.Type != nil {
		routine.Type = *input.Type
	}
	if input.Time != nil {
		if value := strings.TrimSpace(*input.Time); value != "" {
			routine.Time = &value
		} else {
			routine.Time = nil
		}
	}
	if input.RepeatDays != nil {
		routine.RepeatDays = *input.RepeatDays
	}
	if input.Enabled != nil {
		routine.Enabled = *input.Enabled
	}
}

// ToggleResult is the outcome of setting today's completion for a routine.
type ToggleResult struct {
	Log models.RoutineLog `json:"log"`
	streak.Counters
}

type RoutineService struct {
	database    *sql.DB
	routineRepo repository.RoutineRepository
	logRepo     repository.RoutineLogRepository
	clock       clock.Clock
}

func NewRoutineService(database *sql.DB, clock clock.Clock) *RoutineService {
	return &RoutineService{
		database:    database,
		routineRepo: repository.NewRoutineRepository(database),
		logRepo:     repository.NewRoutineLogRepository(database),
		clock:       clock,
	}
}

// List returns the user's routines with today's log embedded. When scheduledToday is set,
// only enabled routines that run today are returned.
func (service *RoutineService) List(ctx context.Context, userID string, scheduledToday bool) ([]models.Routine, error) {
	routines, err := service.routineRepo.FindAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := clock.Today(service.clock)
	logs, err := service.logRepo.FindByUserAndDate(ctx, userID, clock.DayKey(today))
	if err != nil {
		return nil, err
	}

	result := make([]models.Routine, 0, len(routines))
	for _, routine := range routines {
		if scheduledToday && (!routine.Enabled || !routine.ScheduledOn(today)) {
			continue
		}
		routine.Logs = logs[routine.ID]
		if routine.Logs == nil {
			routine.Logs = []models.RoutineLog{}
		}
		result = append(result, routine)
	}
	return result, nil
}

// Get returns a routine with its most recent logs, newest first.
func (service *RoutineService) Get(ctx context.Context, userID string, id string) (models.Routine, error) {
	routine, err := service.routineRepo.FindByID(ctx, userID, id)
	if err != nil {
		return models.Routine{}, err
	}
	routine.Logs, err = service.logRepo.FindRecent(ctx, routine.ID, RecentLogLimit)
	if err != nil {
		return models.Routine{}, err
	}
	return routine, nil
}

func (service *RoutineService) Create(ctx context.Context, userID string, input RoutineInput) (models.Routine, error) {
	routine := models.Routine{UserID: userID, Enabled: true}
	input.apply(&routine)
	routine.ApplyDefaults()
	if err := routine.Validate(); err != nil {
		return models.Routine{}, err
	}

	created, err := service.routineRepo.Create(ctx, routine)
	if err != nil {
		return models.Routine{}, fmt.Errorf("creating routine: %w", err)
	}
	created.Logs = []models.RoutineLog{}
	return created, nil
}

func (service *RoutineService) Update(ctx context.Context, userID string, id string, input RoutineInput) (models.Routine, error) {
	routine, err := service.routineRepo.FindByID(ctx, userID, id)
	if err != nil {
		return models.Routine{}, err
	}

	input.apply(&routine)
	routine.ApplyDefaults()
	if err := routine.Validate(); err != nil {
		return models.Routine{}, err
	}
	return service.routineRepo.Update(ctx, routine)
}

func (service *RoutineService) Delete(ctx context.Context, userID string, id string) error {
	return service.routineRepo.Delete(ctx, userID, id)
}

// ToggleToday sets today's completion for a routine and moves its streak counters.
// The log upsert and counter write commit together or not at all.
func (service *RoutineService) ToggleToday(ctx context.Context, userID string, id string, completed bool) (ToggleResult, error) {
	today := clock.DayKey(clock.Today(service.clock))
	yesterday := clock.DayKey(clock.Yesterday(service.clock))

	var result ToggleResult
	err := database.WithTx(ctx, service.database, func(transaction *sql.Tx) error {
		routineRepo := repository.NewRoutineRepository(transaction)
		logRepo := repository.NewRoutineLogRepository(transaction)

		if err := routineRepo.Touch(ctx, userID, id); err != nil {
			return err
		}
		routine, err := routineRepo.FindByID(ctx, userID, id)
		if err != nil {
			return err
		}

		todayEntry, err := findEntry(ctx, logRepo, id, today)
		if err != nil {
			return err
		}
		var yesterdayEntry *streak.Entry
		if todayEntry == nil {
			yesterdayEntry, err = findEntry(ctx, logRepo, id, yesterday)
			if err != nil {
				return err
			}
		}

		counters := streak.ApplyToggle(
			streak.Counters{Current: routine.CurrentStreak, Best: routine.BestStreak},
			todayEntry, yesterdayEntry, completed,
		)

		log, err := logRepo.Upsert(ctx, id, today, completed)
		if err != nil {
			return err
		}
		if err := routineRepo.UpdateStreaks(ctx, id, counters.Current, counters.Best); err != nil {
			return err
		}

		result = ToggleResult{Log: log, Counters: counters}
		return nil
	})
	if err != nil {
		return ToggleResult{}, fmt.Errorf("toggling routine: %w", err)
	}
	return result, nil
}

func findEntry(ctx context.Context, logRepo repository.RoutineLogRepository, routineID string, date string) (*streak.Entry, error) {
	log, err := logRepo.FindByDate(ctx, routineID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak.Entry{Completed: log.Completed}, nil
}

// RecomputeAll rebuilds every routine's counters from its full log history and returns
// how many routines changed. A stored best streak is never lowered.
func (service *RoutineService) RecomputeAll(ctx context.Context) (int, error) {
	routines, err := service.routineRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	today := clock.Today(service.clock)
	changed := 0
	for _, routine := range routines {
		logs, err := service.logRepo.FindAllByRoutine(ctx, routine.ID)
		if err != nil {
			return changed, err
		}

		days := make([]streak.Day, 0, len(logs))
		for _, log := range logs {
			date, err := time.ParseInLocation(clock.DayLayout, log.Date, today.Location())
			if err != nil {
				slog.Warn("skipping routine log with bad date", "routine", routine.ID, "date", log.Date)
				continue
			}
			days = append(days, streak.Day{Date: date, Completed: log.Completed})
		}

		counters := streak.Recompute(days, today)
		counters.Best = max(counters.Best, routine.BestStreak)
		if counters.Current == routine.CurrentStreak && counters.Best == routine.BestStreak {
			continue
		}

		if err := service.routineRepo.UpdateStreaks(ctx, routine.ID, counters.Current, counters.Best); err != nil {
			return changed, err
		}
		slog.Info("recomputed routine streaks", "routine", routine.ID,
			"current", counters.Current, "best", counters.Best,
			"previous_current", routine.CurrentStreak, "previous_best", routine.BestStreak)
		changed++
	}
	return changed, nil
}
