package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creatorstack/tracker/internal/domain"
)

// TaskRepo persists one row per task keyed by id. The tasks table carries a
// seq bigserial column the database assigns on insert; All orders by it so
// snapshots come back in exact insertion order, matching the memory store.
type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskColumns = `id, title, description, notes, status, completed, priority, category,
       due_date, created_at, updated_at, tags, estimated_time, actual_time, agent_id`

func (r *TaskRepo) Insert(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, title, description, notes, status, completed, priority, category,
		                    due_date, created_at, updated_at, tags, estimated_time, actual_time, agent_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.ID, t.Title, t.Description, t.Notes, t.Status, t.Completed, t.Priority, t.Category,
		t.DueDate, t.CreatedAt, t.UpdatedAt, t.Tags, t.EstimatedTime, t.ActualTime, t.AgentID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("taskRepo.Insert: %w", domain.ErrDuplicateID)
		}
		return fmt.Errorf("taskRepo.Insert: %w", err)
	}

	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id,
	)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.Get: %w", err)
	}

	return t, nil
}

func (r *TaskRepo) Replace(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, notes = $3, status = $4, completed = $5,
		        priority = $6, category = $7, due_date = $8, created_at = $9, updated_at = $10,
		        tags = $11, estimated_time = $12, actual_time = $13, agent_id = $14
		 WHERE id = $15`,
		t.Title, t.Description, t.Notes, t.Status, t.Completed,
		t.Priority, t.Category, t.DueDate, t.CreatedAt, t.UpdatedAt,
		t.Tags, t.EstimatedTime, t.ActualTime, t.AgentID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Replace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Replace: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Remove: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Remove: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) All(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.All: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("taskRepo.All: scan: %w", scanErr)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("taskRepo.All: rows: %w", err)
	}

	return tasks, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Notes, &t.Status, &t.Completed,
		&t.Priority, &t.Category, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		&t.Tags, &t.EstimatedTime, &t.ActualTime, &t.AgentID,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
