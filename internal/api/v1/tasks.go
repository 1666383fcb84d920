package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
)

type CreateTaskInput struct {
	Body struct {
		Title         string     `json:"title" minLength:"1" maxLength:"500" doc:"Task title"`
		Description   string     `json:"description,omitempty" doc:"Task description"`
		Notes         string     `json:"notes,omitempty" doc:"Free-form notes"`
		Priority      string     `json:"priority" doc:"Priority (low|medium|high|urgent)"`
		Category      string     `json:"category" doc:"Category (content|marketing|analytics|seo|monetization|community|planning|research|general)"`
		DueDate       string     `json:"due_date" doc:"Due date, YYYY-MM-DD or RFC 3339"`
		Tags          []string   `json:"tags,omitempty" doc:"Free-text labels"`
		EstimatedTime *int       `json:"estimated_time,omitempty" doc:"Estimated minutes"`
		AgentID       *uuid.UUID `json:"agent_id,omitempty" doc:"Optional specialist back-reference"`
	}
}

type CreateTaskOutput struct {
	Body *domain.Task
}

type ListTasksInput struct {
	Filter        string `query:"filter" enum:"all,pending,in_progress,completed,high_priority,due_today,overdue" doc:"Active filter"`
	Search        string `query:"q" doc:"Case-insensitive substring match on title and description"`
	Category      string `query:"category" doc:"Category value or 'all'"`
	Priority      string `query:"priority" doc:"Priority value or 'all'"`
	ShowCompleted bool   `query:"show_completed" default:"true" doc:"Include completed tasks"`
	Sort          string `query:"sort" enum:"due_date,priority,created_at,title,none" doc:"Sort key"`
}

type ListTasksOutput struct {
	Body []*domain.Task
}

type GetTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type GetTaskOutput struct {
	Body *domain.Task
}

type UpdateTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Title         *string    `json:"title,omitempty" maxLength:"500" doc:"Task title"`
		Description   *string    `json:"description,omitempty" doc:"Task description"`
		Notes         *string    `json:"notes,omitempty" doc:"Free-form notes"`
		Status        *string    `json:"status,omitempty" doc:"Status (pending|in_progress|completed|cancelled|on_hold)"`
		Priority      *string    `json:"priority,omitempty" doc:"Priority"`
		Category      *string    `json:"category,omitempty" doc:"Category"`
		DueDate       *string    `json:"due_date,omitempty" doc:"Due date, YYYY-MM-DD or RFC 3339"`
		Tags          *[]string  `json:"tags,omitempty" doc:"Free-text labels"`
		EstimatedTime *int       `json:"estimated_time,omitempty" doc:"Estimated minutes"`
		ActualTime    *int       `json:"actual_time,omitempty" doc:"Actual minutes"`
		AgentID       *uuid.UUID `json:"agent_id,omitempty" doc:"Specialist back-reference"`
	}
}

type UpdateTaskOutput struct {
	Body *domain.Task
}

type ToggleTaskOutput struct {
	Body *domain.Task
}

type DuplicateTaskOutput struct {
	Body *domain.Task
}

type DeleteTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type BulkTaskInput struct {
	Body struct {
		IDs []uuid.UUID `json:"ids" minItems:"1" doc:"Task IDs"`
	}
}

type BulkTaskOutput struct {
	Body engine.Manifest
}

// TaskMetaOutput lists the closed enumerations so the dashboard can build
// its pickers without hardcoding values.
type TaskMetaOutput struct {
	Body struct {
		Statuses   []domain.TaskStatus   `json:"statuses"`
		Priorities []domain.TaskPriority `json:"priorities"`
		Categories []domain.TaskCategory `json:"categories"`
	}
}

func RegisterTaskRoutes(api huma.API, eng TaskEngine) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		dueDate, err := parseDueDate(input.Body.DueDate)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid task",
				&huma.ErrorDetail{Location: "body.due_date", Message: err.Error()})
		}

		t, err := eng.CreateTask(ctx, engine.CreateTaskRequest{
			Title:         input.Body.Title,
			Description:   input.Body.Description,
			Notes:         input.Body.Notes,
			Priority:      domain.TaskPriority(input.Body.Priority),
			Category:      domain.TaskCategory(input.Body.Category),
			DueDate:       dueDate,
			Tags:          input.Body.Tags,
			EstimatedTime: input.Body.EstimatedTime,
			AgentID:       input.Body.AgentID,
		})
		if err != nil {
			return nil, mapEngineError(err, "failed to create task")
		}

		return &CreateTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "Query tasks with filter, search, and sort",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		spec := engine.QuerySpec{
			ActiveFilter:  engine.ActiveFilter(input.Filter),
			SearchText:    input.Search,
			Category:      domain.TaskCategory(input.Category),
			Priority:      domain.TaskPriority(input.Priority),
			ShowCompleted: &input.ShowCompleted,
		}
		if input.Sort != "" && input.Sort != "none" {
			spec.SortBy = engine.SortKey(input.Sort)
		}

		tasks, err := eng.Query(ctx, spec)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to query tasks", err)
		}

		return &ListTasksOutput{Body: tasks}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "task-meta",
		Method:      http.MethodGet,
		Path:        "/tasks/meta",
		Summary:     "Closed enumerations for task fields",
		Tags:        []string{"Tasks"},
	}, func(_ context.Context, _ *struct{}) (*TaskMetaOutput, error) {
		out := &TaskMetaOutput{}
		out.Body.Statuses = domain.Statuses()
		out.Body.Priorities = domain.Priorities()
		out.Body.Categories = domain.Categories()

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*GetTaskOutput, error) {
		t, err := eng.GetTask(ctx, input.ID)
		if err != nil {
			return nil, mapEngineError(err, "failed to get task")
		}

		return &GetTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{id}",
		Summary:     "Update a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*UpdateTaskOutput, error) {
		patch := engine.UpdateTaskPatch{
			Title:         input.Body.Title,
			Description:   input.Body.Description,
			Notes:         input.Body.Notes,
			Tags:          input.Body.Tags,
			EstimatedTime: input.Body.EstimatedTime,
			ActualTime:    input.Body.ActualTime,
			AgentID:       input.Body.AgentID,
		}
		if input.Body.Status != nil {
			s := domain.TaskStatus(*input.Body.Status)
			patch.Status = &s
		}
		if input.Body.Priority != nil {
			p := domain.TaskPriority(*input.Body.Priority)
			patch.Priority = &p
		}
		if input.Body.Category != nil {
			c := domain.TaskCategory(*input.Body.Category)
			patch.Category = &c
		}
		if input.Body.DueDate != nil {
			d, err := parseDueDate(*input.Body.DueDate)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("invalid task",
					&huma.ErrorDetail{Location: "body.due_date", Message: err.Error()})
			}
			patch.DueDate = &d
		}

		t, err := eng.UpdateTask(ctx, input.ID, patch)
		if err != nil {
			return nil, mapEngineError(err, "failed to update task")
		}

		return &UpdateTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-task-completion",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/toggle",
		Summary:     "Toggle a task between completed and pending",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*ToggleTaskOutput, error) {
		t, err := eng.ToggleCompletion(ctx, input.ID)
		if err != nil {
			return nil, mapEngineError(err, "failed to toggle task")
		}

		return &ToggleTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "duplicate-task",
		Method:      http.MethodPost,
		Path:        "/tasks/{id}/duplicate",
		Summary:     "Clone a task under a new ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*DuplicateTaskOutput, error) {
		t, err := eng.DuplicateTask(ctx, input.ID)
		if err != nil {
			return nil, mapEngineError(err, "failed to duplicate task")
		}

		return &DuplicateTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		if err := eng.DeleteTask(ctx, input.ID); err != nil {
			return nil, mapEngineError(err, "failed to delete task")
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "bulk-complete-tasks",
		Method:      http.MethodPost,
		Path:        "/tasks/bulk/complete",
		Summary:     "Mark a set of tasks completed",
		Description: "Best effort per id: missing ids are reported as skipped, never as an error.",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *BulkTaskInput) (*BulkTaskOutput, error) {
		m, err := eng.BulkComplete(ctx, input.Body.IDs)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to bulk complete", err)
		}

		return &BulkTaskOutput{Body: m}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "bulk-delete-tasks",
		Method:      http.MethodPost,
		Path:        "/tasks/bulk/delete",
		Summary:     "Delete a set of tasks",
		Description: "Best effort per id: missing ids are reported as skipped, never as an error.",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *BulkTaskInput) (*BulkTaskOutput, error) {
		m, err := eng.BulkDelete(ctx, input.Body.IDs)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to bulk delete", err)
		}

		return &BulkTaskOutput{Body: m}, nil
	})
}

// parseDueDate accepts a plain calendar date or a full RFC 3339 timestamp.
func parseDueDate(s string) (time.Time, error) {
	if d, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("must be YYYY-MM-DD or RFC 3339")
	}
	return d, nil
}

// mapEngineError translates domain errors into HTTP problem responses.
func mapEngineError(err error, fallback string) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		details := make([]error, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			details = append(details, &huma.ErrorDetail{
				Location: "body." + v.Field,
				Message:  v.Message,
			})
		}
		return huma.Error422UnprocessableEntity("invalid task", details...)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound("task not found")
	}
	if errors.Is(err, domain.ErrDuplicateID) {
		return huma.Error409Conflict("task id already exists")
	}
	return huma.Error500InternalServerError(fallback, err)
}
