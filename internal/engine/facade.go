package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/creatorstack/tracker/internal/domain"
)

// CreateTaskRequest carries the caller-supplied fields of a new task.
// Everything else (id, timestamps, status) is assigned by the facade.
type CreateTaskRequest struct {
	Title         string
	Description   string
	Notes         string
	Priority      domain.TaskPriority
	Category      domain.TaskCategory
	DueDate       time.Time
	Tags          []string
	EstimatedTime *int
	AgentID       *uuid.UUID
}

// UpdateTaskPatch holds partial task edits. Nil fields are left untouched.
type UpdateTaskPatch struct {
	Title         *string
	Description   *string
	Notes         *string
	Status        *domain.TaskStatus
	Priority      *domain.TaskPriority
	Category      *domain.TaskCategory
	DueDate       *time.Time
	Tags          *[]string
	EstimatedTime *int
	ActualTime    *int
	AgentID       *uuid.UUID
}

// Manifest reports the per-id outcome of a bulk operation. Missing ids are
// skipped, never fatal.
type Manifest struct {
	Applied []uuid.UUID `json:"applied"`
	Skipped []uuid.UUID `json:"skipped"`
}

// CreateTask validates the request, assigns identity and timestamps, and
// inserts the task with status pending. Validation reports every violated
// field at once.
func (e *Engine) CreateTask(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	verr := &domain.ValidationError{}
	if strings.TrimSpace(req.Title) == "" {
		verr.Violated("title", "must not be empty")
	}
	if !req.Priority.Valid() {
		verr.Violated("priority", fmt.Sprintf("unknown priority %q", req.Priority))
	}
	if !req.Category.Valid() {
		verr.Violated("category", fmt.Sprintf("unknown category %q", req.Category))
	}
	if req.DueDate.IsZero() {
		verr.Violated("due_date", "must be set")
	}
	if req.EstimatedTime != nil && *req.EstimatedTime < 0 {
		verr.Violated("estimated_time", "must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return nil, fmt.Errorf("engine.CreateTask: %w", err)
	}

	now := e.now()
	t := &domain.Task{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Notes:         req.Notes,
		Status:        domain.TaskStatusPending,
		Completed:     false,
		Priority:      req.Priority,
		Category:      req.Category,
		DueDate:       req.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
		Tags:          append([]string(nil), req.Tags...),
		EstimatedTime: req.EstimatedTime,
		AgentID:       req.AgentID,
	}

	if err := e.tasks.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("engine.CreateTask: %w", err)
	}

	log.Debug().Str("task_id", t.ID.String()).Str("category", string(t.Category)).Msg("task created")
	e.publish(ctx, EventTaskCreated, t)

	return t, nil
}

// UpdateTask merges the patch into the stored task, re-validates, and bumps
// UpdatedAt. Setting status to completed forces Completed true; setting any
// other status forces it false.
func (e *Engine) UpdateTask(ctx context.Context, id uuid.UUID, patch UpdateTaskPatch) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.tasks.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("engine.UpdateTask: %w", err)
	}

	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.Status != nil {
		t.Status = *patch.Status
		t.Completed = *patch.Status == domain.TaskStatusCompleted
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Tags != nil {
		t.Tags = append([]string(nil), *patch.Tags...)
	}
	if patch.EstimatedTime != nil {
		t.EstimatedTime = patch.EstimatedTime
	}
	if patch.ActualTime != nil {
		t.ActualTime = patch.ActualTime
	}
	if patch.AgentID != nil {
		t.AgentID = patch.AgentID
	}

	verr := &domain.ValidationError{}
	if t.Title == "" {
		verr.Violated("title", "must not be empty")
	}
	if !t.Status.Valid() {
		verr.Violated("status", fmt.Sprintf("unknown status %q", t.Status))
	}
	if !t.Priority.Valid() {
		verr.Violated("priority", fmt.Sprintf("unknown priority %q", t.Priority))
	}
	if !t.Category.Valid() {
		verr.Violated("category", fmt.Sprintf("unknown category %q", t.Category))
	}
	if t.DueDate.IsZero() {
		verr.Violated("due_date", "must be set")
	}
	if t.EstimatedTime != nil && *t.EstimatedTime < 0 {
		verr.Violated("estimated_time", "must not be negative")
	}
	if t.ActualTime != nil && *t.ActualTime < 0 {
		verr.Violated("actual_time", "must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return nil, fmt.Errorf("engine.UpdateTask: %w", err)
	}

	t.UpdatedAt = e.now()

	if err := e.tasks.Replace(ctx, t); err != nil {
		return nil, fmt.Errorf("engine.UpdateTask: %w", err)
	}

	e.publish(ctx, EventTaskUpdated, t)

	return t, nil
}

// ToggleCompletion flips the completed flag and sets status to completed or
// pending accordingly. Calling it twice restores the original pair only for
// tasks toggled from pending or completed; any other source status lands on
// pending, matching the dashboard's quick-toggle behavior.
func (e *Engine) ToggleCompletion(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.tasks.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("engine.ToggleCompletion: %w", err)
	}

	event := EventTaskCompleted
	if t.Completed {
		t.Completed = false
		t.Status = domain.TaskStatusPending
		event = EventTaskReopened
	} else {
		t.Completed = true
		t.Status = domain.TaskStatusCompleted
	}
	t.UpdatedAt = e.now()

	if err := e.tasks.Replace(ctx, t); err != nil {
		return nil, fmt.Errorf("engine.ToggleCompletion: %w", err)
	}

	e.publish(ctx, event, t)

	return t, nil
}

// DeleteTask removes a single task. Unlike the bulk variant, a missing id
// is an error.
func (e *Engine) DeleteTask(ctx context.Context, id uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.tasks.Remove(ctx, id); err != nil {
		return fmt.Errorf("engine.DeleteTask: %w", err)
	}

	log.Debug().Str("task_id", id.String()).Msg("task deleted")
	e.publish(ctx, EventTaskDeleted, &domain.Task{ID: id})

	return nil
}

// BulkComplete forces each listed task to completed. Ids not found are
// reported as skipped; already-completed tasks count as applied.
func (e *Engine) BulkComplete(ctx context.Context, ids []uuid.UUID) (Manifest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := Manifest{Applied: []uuid.UUID{}, Skipped: []uuid.UUID{}}
	for _, id := range ids {
		t, err := e.tasks.Get(ctx, id)
		if err != nil {
			m.Skipped = append(m.Skipped, id)
			continue
		}

		t.Completed = true
		t.Status = domain.TaskStatusCompleted
		t.UpdatedAt = e.now()

		if err := e.tasks.Replace(ctx, t); err != nil {
			m.Skipped = append(m.Skipped, id)
			continue
		}

		m.Applied = append(m.Applied, id)
		e.publish(ctx, EventTaskCompleted, t)
	}

	log.Debug().Int("applied", len(m.Applied)).Int("skipped", len(m.Skipped)).Msg("bulk complete")

	return m, nil
}

// BulkDelete removes each listed task, skipping ids that are already gone.
func (e *Engine) BulkDelete(ctx context.Context, ids []uuid.UUID) (Manifest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m := Manifest{Applied: []uuid.UUID{}, Skipped: []uuid.UUID{}}
	for _, id := range ids {
		if err := e.tasks.Remove(ctx, id); err != nil {
			m.Skipped = append(m.Skipped, id)
			continue
		}

		m.Applied = append(m.Applied, id)
		e.publish(ctx, EventTaskDeleted, &domain.Task{ID: id})
	}

	log.Debug().Int("applied", len(m.Applied)).Int("skipped", len(m.Skipped)).Msg("bulk delete")

	return m, nil
}

// DuplicateTask clones an existing task under a new id with fresh
// timestamps, pending status, and a suffixed title.
func (e *Engine) DuplicateTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	src, err := e.tasks.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("engine.DuplicateTask: %w", err)
	}

	now := e.now()
	dup := src.Clone()
	dup.ID = uuid.New()
	dup.Title = src.Title + " (copy)"
	dup.Status = domain.TaskStatusPending
	dup.Completed = false
	dup.CreatedAt = now
	dup.UpdatedAt = now

	if err := e.tasks.Insert(ctx, dup); err != nil {
		return nil, fmt.Errorf("engine.DuplicateTask: %w", err)
	}

	e.publish(ctx, EventTaskDuplicated, dup)

	return dup, nil
}

// publish emits a mutation event when a publisher is configured. Event
// delivery is best effort; a failure never fails the mutation.
func (e *Engine) publish(ctx context.Context, eventType string, t *domain.Task) {
	if e.events == nil {
		return
	}
	if err := e.events.PublishTaskEvent(ctx, eventType, t); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("task event publish failed")
	}
}
