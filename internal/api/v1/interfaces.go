package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
)

// TaskEngine abstracts the mutation facade and read views for handler
// testing. *engine.Engine satisfies this interface.
type TaskEngine interface {
	CreateTask(ctx context.Context, req engine.CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, patch engine.UpdateTaskPatch) (*domain.Task, error)
	ToggleCompletion(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	BulkComplete(ctx context.Context, ids []uuid.UUID) (engine.Manifest, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) (engine.Manifest, error)
	DuplicateTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Query(ctx context.Context, spec engine.QuerySpec) ([]*domain.Task, error)
	TaskStats(ctx context.Context) (engine.TaskStats, error)
	ProductivityStats(ctx context.Context) (engine.ProductivityStats, error)
	TasksByCategory(ctx context.Context) (map[domain.TaskCategory][]*domain.Task, error)
}
