package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/creatorstack/tracker/internal/domain"
)

// TaskStats is the headline dashboard aggregate.
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	InProgress     int `json:"in_progress"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completion_rate"` // whole percent
}

// WindowStats counts activity inside one calendar window.
type WindowStats struct {
	Completed int `json:"completed"`
	Created   int `json:"created"`
}

// ProductivityStats buckets completions and creations into calendar
// windows. Completion is bucketed by UpdatedAt of tasks currently in
// completed status, creation by CreatedAt. Weeks start on Monday.
type ProductivityStats struct {
	Today     WindowStats `json:"today"`
	ThisWeek  WindowStats `json:"this_week"`
	ThisMonth WindowStats `json:"this_month"`
}

// TaskStats computes the headline aggregate. An empty store yields zeros;
// the completion rate never divides by zero.
func (e *Engine) TaskStats(ctx context.Context) (TaskStats, error) {
	tasks, err := e.tasks.All(ctx)
	if err != nil {
		return TaskStats{}, fmt.Errorf("engine.TaskStats: %w", err)
	}

	now := e.now()
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch {
		case t.Completed:
			s.Completed++
		case t.Status == domain.TaskStatusInProgress:
			s.InProgress++
		case t.Status == domain.TaskStatusPending:
			s.Pending++
		}
		if !t.Completed && t.DueDate.Before(startOfDay(now)) {
			s.Overdue++
		}
	}
	s.CompletionRate = percent(s.Completed, s.Total)

	return s, nil
}

// ProductivityStats computes per-window completion and creation counts
// against the engine clock.
func (e *Engine) ProductivityStats(ctx context.Context) (ProductivityStats, error) {
	tasks, err := e.tasks.All(ctx)
	if err != nil {
		return ProductivityStats{}, fmt.Errorf("engine.ProductivityStats: %w", err)
	}

	now := e.now()
	dayStart := startOfDay(now)
	// Monday-start week: Sunday counts as 6 days into the week.
	weekStart := dayStart.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	monthStart := startOfDay(now.AddDate(0, 0, 1-now.Day()))

	var p ProductivityStats
	for _, t := range tasks {
		if t.Completed {
			if !t.UpdatedAt.Before(dayStart) {
				p.Today.Completed++
			}
			if !t.UpdatedAt.Before(weekStart) {
				p.ThisWeek.Completed++
			}
			if !t.UpdatedAt.Before(monthStart) {
				p.ThisMonth.Completed++
			}
		}
		if !t.CreatedAt.Before(dayStart) {
			p.Today.Created++
		}
		if !t.CreatedAt.Before(weekStart) {
			p.ThisWeek.Created++
		}
		if !t.CreatedAt.Before(monthStart) {
			p.ThisMonth.Created++
		}
	}

	return p, nil
}

// TasksByCategory groups the collection by category, tasks in store order.
// Categories with no tasks are omitted from the map; callers needing
// exhaustive rows range over domain.Categories.
func (e *Engine) TasksByCategory(ctx context.Context) (map[domain.TaskCategory][]*domain.Task, error) {
	tasks, err := e.tasks.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine.TasksByCategory: %w", err)
	}

	out := make(map[domain.TaskCategory][]*domain.Task)
	for _, t := range tasks {
		out[t.Category] = append(out[t.Category], t)
	}

	return out, nil
}

// CategoryProgress returns the completed share of a task sequence as a
// whole percent, 0 for an empty sequence.
func CategoryProgress(tasks []*domain.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return percent(done, len(tasks))
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
