package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/bensuskins/habit-hub/internal/models"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"
)

const (
	minSearchLength = 2
	searchLimit     = 10
)

type SearchResults struct {
	Tasks    []models.Task    `json:"tasks"`
	Goals    []models.Goal    `json:"goals"`
	Routines []models.Routine `json:"routines"`
	Total    int              `json:"total"`
}

type SearchService struct {
	taskRepo    repository.TaskRepository
	goalRepo    repository.GoalRepository
	routineRepo repository.RoutineRepository
}

func NewSearchService(
	taskRepo repository.TaskRepository,
	goalRepo repository.GoalRepository,
	routineRepo repository.RoutineRepository,
) *SearchService {
	return &SearchService{taskRepo: taskRepo, goalRepo: goalRepo, routineRepo: routineRepo}
}

// Search ranks the user's tasks, goals and routines against the query, best match first.
func (service *SearchService) Search(ctx context.Context, userID string, query string) (SearchResults, error) {
	results := SearchResults{Tasks: []models.Task{}, Goals: []models.Goal{}, Routines: []models.Routine{}}
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return results, nil
	}

	var tasks []models.Task
	var goals []models.Goal
	var routines []models.Routine
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() (err error) {
		tasks, err = service.taskRepo.FindAll(groupCtx, userID, repository.TaskFilter{})
		return err
	})
	group.Go(func() (err error) {
		goals, err = service.goalRepo.FindAll(groupCtx, userID)
		return err
	})
	group.Go(func() (err error) {
		routines, err = service.routineRepo.FindAll(groupCtx, userID)
		return err
	})
	if err := group.Wait(); err != nil {
		return SearchResults{}, err
	}

	for _, index := range rank(query, len(tasks), func(i int) string { return tasks[i].Title + " " + tasks[i].Description }) {
		results.Tasks = append(results.Tasks, tasks[index])
	}
	for _, index := range rank(query, len(goals), func(i int) string { return goals[i].Title + " " + goals[i].Description }) {
		results.Goals = append(results.Goals, goals[index])
	}
	for _, index := range rank(query, len(routines), func(i int) string { return routines[i].Title }) {
		results.Routines = append(results.Routines, routines[index])
	}

	results.Total = len(results.Tasks) + len(results.Goals) + len(results.Routines)
	return results, nil
}

type searchSource struct {
	length int
	text   func(i int) string
}

func (source searchSource) String(i int) string { return source.text(i) }
func (source searchSource) Len() int            { return source.length }

func rank(query string, length int, text func(i int) string) []int {
	matches := fuzzy.FindFrom(query, searchSource{length: length, text: text})
	indexes := make([]int, 0, min(len(matches), searchLimit))
	for _, match := range matches {
		if len(indexes) == searchLimit {
			break
		}
		indexes = append(indexes, match.Index)
	}
	return indexes
}
