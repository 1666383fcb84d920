// Package engine implements the task tracking and analytics core: the
// mutation facade over the task store plus the derived query and
// statistics views the dashboard reads.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/creatorstack/tracker/internal/domain"
)

// Event types emitted after successful mutations.
const (
	EventTaskCreated    = "task.created"
	EventTaskUpdated    = "task.updated"
	EventTaskCompleted  = "task.completed"
	EventTaskReopened   = "task.reopened"
	EventTaskDeleted    = "task.deleted"
	EventTaskDuplicated = "task.duplicated"
)

// Publisher receives task mutation events. *redis.PubSub satisfies this
// interface; a nil publisher disables event emission.
type Publisher interface {
	PublishTaskEvent(ctx context.Context, eventType string, task *domain.Task) error
}

// Engine owns all access to the task collection. Mutations go through the
// facade methods and are serialized by a mutex so two bulk operations can
// never interleave; the query and statistics methods are pure readers.
type Engine struct {
	tasks  domain.TaskRepository
	events Publisher
	now    func() time.Time

	mu sync.Mutex // serializes mutations
}

type Option func(*Engine)

// WithClock overrides the engine's notion of "now". Used by tests and by
// hosts with a fixed reference clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPublisher attaches a mutation event publisher.
func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.events = p }
}

func New(tasks domain.TaskRepository, opts ...Option) *Engine {
	e := &Engine{
		tasks: tasks,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetTask returns a single task by id.
func (e *Engine) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	t, err := e.tasks.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("engine.GetTask: %w", err)
	}
	return t, nil
}
