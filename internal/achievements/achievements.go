// Package achievements projects a fixed badge catalog onto a user's activity counts.
package achievements

import "math"

// Counts are the live aggregates an evaluation reads from.
type Counts struct {
	CompletedTasks int
	TotalGoals     int
	CompletedGoals int
	TotalRoutines  int
	BestStreak     int
}

// Metric selects the count a definition is measured against. The set of metrics is
// closed: only the variants declared in this package satisfy the interface.
type Metric interface {
	// Type is the metric family reported to clients: tasks, goals, routines or streak.
	Type() string
	// CountsCreated reports whether the metric counts created rather than completed items.
	CountsCreated() bool
	Current(counts Counts) int
	sealed()
}

type completedTasks struct{}

func (completedTasks) Type() string              { return "tasks" }
func (completedTasks) CountsCreated() bool       { return false }
func (completedTasks) Current(counts Counts) int { return counts.CompletedTasks }
func (completedTasks) sealed()                   {}

type createdGoals struct{}

func (createdGoals) Type() string              { return "goals" }
func (createdGoals) CountsCreated() bool       { return true }
func (createdGoals) Current(counts Counts) int { return counts.TotalGoals }
func (createdGoals) sealed()                   {}

type completedGoals struct{}

func (completedGoals) Type() string              { return "goals" }
func (completedGoals) CountsCreated() bool       { return false }
func (completedGoals) Current(counts Counts) int { return counts.CompletedGoals }
func (completedGoals) sealed()                   {}

type createdRoutines struct{}

func (createdRoutines) Type() string              { return "routines" }
func (createdRoutines) CountsCreated() bool       { return true }
func (createdRoutines) Current(counts Counts) int { return counts.TotalRoutines }
func (createdRoutines) sealed()                   {}

type bestStreak struct{}

func (bestStreak) Type() string              { return "streak" }
func (bestStreak) CountsCreated() bool       { return false }
func (bestStreak) Current(counts Counts) int { return counts.BestStreak }
func (bestStreak) sealed()                   {}

var (
	CompletedTasks  Metric = completedTasks{}
	CreatedGoals    Metric = createdGoals{}
	CompletedGoals  Metric = completedGoals{}
	CreatedRoutines Metric = createdRoutines{}
	BestStreak      Metric = bestStreak{}
)

type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Metric      Metric
	Threshold   int
}

// Status is a definition evaluated against a set of counts.
type Status struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Threshold    int    `json:"threshold"`
	CountCreated bool   `json:"countCreated"`
	Current      int    `json:"current"`
	Earned       bool   `json:"earned"`
	Progress     int    `json:"progress"`
}

type Stats struct {
	CompletedTasks int `json:"completedTasks"`
	CompletedGoals int `json:"completedGoals"`
	TotalRoutines  int `json:"totalRoutines"`
	BestStreak     int `json:"bestStreak"`
	EarnedCount    int `json:"earnedCount"`
	TotalCount     int `json:"totalCount"`
}

// Catalog returns the built-in achievement definitions in display order.
func Catalog() []Definition {
	return []Definition{
		{ID: "first_task", Title: "Journey Begins", Description: "Complete your first task", Icon: "CheckCircle", Metric: CompletedTasks, Threshold: 1},
		{ID: "task_10", Title: "Task Warrior", Description: "Complete 10 tasks", Icon: "Target", Metric: CompletedTasks, Threshold: 10},
		{ID: "task_50", Title: "Productivity Master", Description: "Complete 50 tasks", Icon: "Crown", Metric: CompletedTasks, Threshold: 50},
		{ID: "task_100", Title: "Achievement Legend", Description: "Complete 100 tasks", Icon: "Trophy", Metric: CompletedTasks, Threshold: 100},
		{ID: "first_goal", Title: "Ambitious Dreamer", Description: "Create your first goal", Icon: "Star", Metric: CreatedGoals, Threshold: 1},
		{ID: "goal_complete", Title: "Goal Crusher", Description: "Achieve your first goal", Icon: "Medal", Metric: CompletedGoals, Threshold: 1},
		{ID: "goal_5", Title: "Success Maker", Description: "Achieve 5 goals", Icon: "Award", Metric: CompletedGoals, Threshold: 5},
		{ID: "first_routine", Title: "Habit Builder", Description: "Create your first routine", Icon: "Zap", Metric: CreatedRoutines, Threshold: 1},
		{ID: "streak_7", Title: "A Week of Consistency", Description: "Keep a routine going for 7 days in a row", Icon: "Flame", Metric: BestStreak, Threshold: 7},
		{ID: "streak_30", Title: "A Month of Commitment", Description: "Keep a routine going for 30 days in a row", Icon: "Fire", Metric: BestStreak, Threshold: 30},
	}
}

// Evaluate computes the status of every definition, preserving catalog order.
func Evaluate(catalog []Definition, counts Counts) []Status {
	statuses := make([]Status, 0, len(catalog))
	for _, definition := range catalog {
		current := definition.Metric.Current(counts)
		earned := current >= definition.Threshold
		statuses = append(statuses, Status{
			ID:           definition.ID,
			Type:         definition.Metric.Type(),
			Title:        definition.Title,
			Description:  definition.Description,
			Icon:         definition.Icon,
			Threshold:    definition.Threshold,
			CountCreated: definition.Metric.CountsCreated(),
			Current:      current,
			Earned:       earned,
			Progress:     progress(current, definition.Threshold, earned),
		})
	}
	return statuses
}

// Summarize builds the stats block that accompanies an evaluation.
func Summarize(statuses []Status, counts Counts) Stats {
	stats := Stats{
		CompletedTasks: counts.CompletedTasks,
		CompletedGoals: counts.CompletedGoals,
		TotalRoutines:  counts.TotalRoutines,
		BestStreak:     counts.BestStreak,
		TotalCount:     len(statuses),
	}
	for _, status := range statuses {
		if status.Earned {
			stats.EarnedCount++
		}
	}
	return stats
}

func progress(current, threshold int, earned bool) int {
	if threshold <= 0 {
		if earned {
			return 100
		}
		return 0
	}
	percent := int(math.Round(float64(current) / float64(threshold) * 100))
	return min(100, max(0, percent))
}
