package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
)

// ---------------------------------------------------------------------------
// Mock TaskEngine — func fields so each test wires only what it needs
// ---------------------------------------------------------------------------

type mockEngine struct {
	createTaskFunc        func(ctx context.Context, req engine.CreateTaskRequest) (*domain.Task, error)
	updateTaskFunc        func(ctx context.Context, id uuid.UUID, patch engine.UpdateTaskPatch) (*domain.Task, error)
	toggleCompletionFunc  func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	deleteTaskFunc        func(ctx context.Context, id uuid.UUID) error
	bulkCompleteFunc      func(ctx context.Context, ids []uuid.UUID) (engine.Manifest, error)
	bulkDeleteFunc        func(ctx context.Context, ids []uuid.UUID) (engine.Manifest, error)
	duplicateTaskFunc     func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	getTaskFunc           func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	queryFunc             func(ctx context.Context, spec engine.QuerySpec) ([]*domain.Task, error)
	taskStatsFunc         func(ctx context.Context) (engine.TaskStats, error)
	productivityStatsFunc func(ctx context.Context) (engine.ProductivityStats, error)
	tasksByCategoryFunc   func(ctx context.Context) (map[domain.TaskCategory][]*domain.Task, error)
}

func (m *mockEngine) CreateTask(ctx context.Context, req engine.CreateTaskRequest) (*domain.Task, error) {
	return m.createTaskFunc(ctx, req)
}

func (m *mockEngine) UpdateTask(ctx context.Context, id uuid.UUID, patch engine.UpdateTaskPatch) (*domain.Task, error) {
	return m.updateTaskFunc(ctx, id, patch)
}

func (m *mockEngine) ToggleCompletion(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.toggleCompletionFunc(ctx, id)
}

func (m *mockEngine) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return m.deleteTaskFunc(ctx, id)
}

func (m *mockEngine) BulkComplete(ctx context.Context, ids []uuid.UUID) (engine.Manifest, error) {
	return m.bulkCompleteFunc(ctx, ids)
}

func (m *mockEngine) BulkDelete(ctx context.Context, ids []uuid.UUID) (engine.Manifest, error) {
	return m.bulkDeleteFunc(ctx, ids)
}

func (m *mockEngine) DuplicateTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.duplicateTaskFunc(ctx, id)
}

func (m *mockEngine) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.getTaskFunc(ctx, id)
}

func (m *mockEngine) Query(ctx context.Context, spec engine.QuerySpec) ([]*domain.Task, error) {
	return m.queryFunc(ctx, spec)
}

func (m *mockEngine) TaskStats(ctx context.Context) (engine.TaskStats, error) {
	return m.taskStatsFunc(ctx)
}

func (m *mockEngine) ProductivityStats(ctx context.Context) (engine.ProductivityStats, error) {
	return m.productivityStatsFunc(ctx)
}

func (m *mockEngine) TasksByCategory(ctx context.Context) (map[domain.TaskCategory][]*domain.Task, error) {
	return m.tasksByCategoryFunc(ctx)
}
