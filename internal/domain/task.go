package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
	TaskStatusOnHold     TaskStatus = "on_hold"
)

// Valid reports whether s is one of the closed status values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusCancelled, TaskStatusOnHold:
		return true
	default:
		return false
	}
}

// Statuses returns all status values in display order.
func Statuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusCancelled,
		TaskStatusOnHold,
	}
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether p is one of the closed priority values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Rank returns the severity rank of a priority: urgent > high > medium > low.
// Unknown priorities rank below low.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Priorities returns all priority values ordered by ascending severity.
func Priorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

type TaskCategory string

const (
	CategoryContent      TaskCategory = "content"
	CategoryMarketing    TaskCategory = "marketing"
	CategoryAnalytics    TaskCategory = "analytics"
	CategorySEO          TaskCategory = "seo"
	CategoryMonetization TaskCategory = "monetization"
	CategoryCommunity    TaskCategory = "community"
	CategoryPlanning     TaskCategory = "planning"
	CategoryResearch     TaskCategory = "research"
	CategoryGeneral      TaskCategory = "general"
)

// Valid reports whether c is one of the closed category values.
func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryContent, CategoryMarketing, CategoryAnalytics, CategorySEO,
		CategoryMonetization, CategoryCommunity, CategoryPlanning,
		CategoryResearch, CategoryGeneral:
		return true
	default:
		return false
	}
}

// Categories returns all category values in display order.
func Categories() []TaskCategory {
	return []TaskCategory{
		CategoryContent,
		CategoryMarketing,
		CategoryAnalytics,
		CategorySEO,
		CategoryMonetization,
		CategoryCommunity,
		CategoryPlanning,
		CategoryResearch,
		CategoryGeneral,
	}
}

// Task is a single trackable unit of work on the creator dashboard.
// Completed is derived-consistent with Status: it is true if and only if
// Status is completed. The mutation facade is the only writer allowed to
// set either field.
type Task struct {
	ID            uuid.UUID    `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Status        TaskStatus   `json:"status"`
	Completed     bool         `json:"completed"`
	Priority      TaskPriority `json:"priority"`
	Category      TaskCategory `json:"category"`
	DueDate       time.Time    `json:"due_date"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Tags          []string     `json:"tags,omitempty"`
	EstimatedTime *int         `json:"estimated_time,omitempty"` // minutes
	ActualTime    *int         `json:"actual_time,omitempty"`    // minutes
	AgentID       *uuid.UUID   `json:"agent_id,omitempty"`       // back-reference only
}

// Clone returns a deep copy of the task. Tags and the optional pointer
// fields are copied so mutating the clone never aliases the original.
func (t *Task) Clone() *Task {
	c := *t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.EstimatedTime != nil {
		v := *t.EstimatedTime
		c.EstimatedTime = &v
	}
	if t.ActualTime != nil {
		v := *t.ActualTime
		c.ActualTime = &v
	}
	if t.AgentID != nil {
		v := *t.AgentID
		c.AgentID = &v
	}
	return &c
}

// TaskRepository is the raw CRUD surface over the canonical task
// collection. Implementations do not apply business validation; that is
// the mutation facade's job. All returns snapshot copies in store order.
type TaskRepository interface {
	Insert(ctx context.Context, t *Task) error
	Get(ctx context.Context, id uuid.UUID) (*Task, error)
	Replace(ctx context.Context, t *Task) error
	Remove(ctx context.Context, id uuid.UUID) error
	All(ctx context.Context) ([]*Task, error)
}
