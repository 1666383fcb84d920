// Package memory provides the canonical in-process task collection.
// It preserves insertion order, which downstream views rely on for
// stable sorting and per-category grouping.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/creatorstack/tracker/internal/domain"
)

type TaskStore struct {
	mu    sync.RWMutex
	tasks []*domain.Task
	index map[uuid.UUID]int
}

func NewTaskStore() *TaskStore {
	return &TaskStore{index: make(map[uuid.UUID]int)}
}

func (s *TaskStore) Insert(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[t.ID]; ok {
		return fmt.Errorf("memory.TaskStore.Insert: %w", domain.ErrDuplicateID)
	}

	s.index[t.ID] = len(s.tasks)
	s.tasks = append(s.tasks, t.Clone())

	return nil
}

func (s *TaskStore) Get(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("memory.TaskStore.Get: %w", domain.ErrNotFound)
	}

	return s.tasks[i].Clone(), nil
}

func (s *TaskStore) Replace(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[t.ID]
	if !ok {
		return fmt.Errorf("memory.TaskStore.Replace: %w", domain.ErrNotFound)
	}

	s.tasks[i] = t.Clone()

	return nil
}

func (s *TaskStore) Remove(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("memory.TaskStore.Remove: %w", domain.ErrNotFound)
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.tasks); j++ {
		s.index[s.tasks[j].ID] = j
	}

	return nil
}

// All returns a snapshot of the collection in insertion order. Every task
// is a copy; mutating the result never affects the store.
func (s *TaskStore) All(_ context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}

	return out, nil
}
