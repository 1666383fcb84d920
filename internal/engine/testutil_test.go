package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
	"github.com/creatorstack/tracker/internal/store/memory"
)

// refNow is the fixed reference clock for engine tests:
// Wednesday 2026-03-18, mid-month so week and month windows differ.
var refNow = time.Date(2026, 3, 18, 15, 30, 0, 0, time.Local)

func newTestEngine(opts ...engine.Option) *engine.Engine {
	return newEngineWithClock(func() time.Time { return refNow }, opts...)
}

func newEngineWithClock(now func() time.Time, opts ...engine.Option) *engine.Engine {
	opts = append([]engine.Option{engine.WithClock(now)}, opts...)
	return engine.New(memory.NewTaskStore(), opts...)
}

func mustCreate(t *testing.T, e *engine.Engine, req engine.CreateTaskRequest) *domain.Task {
	t.Helper()

	task, err := e.CreateTask(context.Background(), req)
	require.NoError(t, err)
	return task
}

func validRequest(title string) engine.CreateTaskRequest {
	return engine.CreateTaskRequest{
		Title:    title,
		Priority: domain.PriorityMedium,
		Category: domain.CategoryGeneral,
		DueDate:  refNow.AddDate(0, 0, 7),
	}
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	events []string
	tasks  []*domain.Task
}

func (p *capturingPublisher) PublishTaskEvent(_ context.Context, eventType string, task *domain.Task) error {
	p.events = append(p.events, eventType)
	p.tasks = append(p.tasks, task)
	return nil
}
