package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/creatorstack/tracker/internal/domain"
)

type ActiveFilter string

const (
	FilterAll          ActiveFilter = "all"
	FilterPending      ActiveFilter = "pending"
	FilterInProgress   ActiveFilter = "in_progress"
	FilterCompleted    ActiveFilter = "completed"
	FilterHighPriority ActiveFilter = "high_priority"
	FilterDueToday     ActiveFilter = "due_today"
	FilterOverdue      ActiveFilter = "overdue"
)

type SortKey string

const (
	SortDueDate   SortKey = "due_date"
	SortPriority  SortKey = "priority"
	SortCreatedAt SortKey = "created_at"
	SortTitle     SortKey = "title"
)

// QuerySpec is the composable filter/search/sort specification behind the
// task list views. The zero value applies no constraint: all tasks come
// back in store order.
type QuerySpec struct {
	ActiveFilter  ActiveFilter
	SearchText    string
	Category      domain.TaskCategory // empty or "all" = no constraint
	Priority      domain.TaskPriority // empty or "all" = no constraint
	ShowCompleted *bool               // nil = no constraint
	SortBy        SortKey
}

// Query produces the derived view for a spec. It never mutates the store
// and never fails on its own logic; only repository access can error.
func (e *Engine) Query(ctx context.Context, spec QuerySpec) ([]*domain.Task, error) {
	tasks, err := e.tasks.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine.Query: %w", err)
	}

	now := e.now()
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesActiveFilter(t, spec.ActiveFilter, now) {
			continue
		}
		if !matchesValue(string(t.Category), string(spec.Category)) {
			continue
		}
		if !matchesValue(string(t.Priority), string(spec.Priority)) {
			continue
		}
		if !matchesSearch(t, spec.SearchText) {
			continue
		}
		// Suppress completed tasks when asked to, unless the active filter
		// explicitly requests completed tasks only.
		if spec.ShowCompleted != nil && !*spec.ShowCompleted &&
			t.Completed && spec.ActiveFilter != FilterCompleted {
			continue
		}
		out = append(out, t)
	}

	sortTasks(out, spec.SortBy)

	return out, nil
}

func matchesActiveFilter(t *domain.Task, f ActiveFilter, now time.Time) bool {
	switch f {
	case "", FilterAll:
		return true
	case FilterPending:
		return t.Status == domain.TaskStatusPending
	case FilterInProgress:
		return t.Status == domain.TaskStatusInProgress
	case FilterCompleted:
		return t.Completed
	case FilterHighPriority:
		return t.Priority == domain.PriorityHigh || t.Priority == domain.PriorityUrgent
	case FilterDueToday:
		return !t.Completed && sameCalendarDay(t.DueDate, now)
	case FilterOverdue:
		return !t.Completed && t.DueDate.Before(startOfDay(now))
	default:
		return false
	}
}

func matchesValue(have, want string) bool {
	return want == "" || want == "all" || have == want
}

func matchesSearch(t *domain.Task, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// sortTasks orders in place with a stable sort so equal keys keep their
// prior relative order. An unknown or empty key leaves store order.
func sortTasks(tasks []*domain.Task, key SortKey) {
	switch key {
	case SortDueDate:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].DueDate.Before(tasks[j].DueDate)
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	case SortCreatedAt:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	case SortTitle:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Title < tasks[j].Title
		})
	}
}

func sameCalendarDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
