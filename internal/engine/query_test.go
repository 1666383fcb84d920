package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
)

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

// seedQueryFixture creates a small mixed population:
//
//	overdue   — high, content, due yesterday, open
//	today     — low, seo, due today, open
//	tomorrow  — urgent, content, due tomorrow, completed
//	paused    — medium, marketing, due next week, on hold
func seedQueryFixture(t *testing.T, e *engine.Engine) {
	t.Helper()
	ctx := context.Background()

	mustCreate(t, e, engine.CreateTaskRequest{
		Title: "overdue", Description: "analytics audit slipped",
		Priority: domain.PriorityHigh, Category: domain.CategoryContent,
		DueDate: refNow.AddDate(0, 0, -1),
	})
	mustCreate(t, e, engine.CreateTaskRequest{
		Title: "today", Priority: domain.PriorityLow,
		Category: domain.CategorySEO, DueDate: refNow,
	})
	done := mustCreate(t, e, engine.CreateTaskRequest{
		Title: "tomorrow", Priority: domain.PriorityUrgent,
		Category: domain.CategoryContent, DueDate: refNow.AddDate(0, 0, 1),
	})
	_, err := e.ToggleCompletion(ctx, done.ID)
	require.NoError(t, err)

	paused := mustCreate(t, e, engine.CreateTaskRequest{
		Title: "paused", Priority: domain.PriorityMedium,
		Category: domain.CategoryMarketing, DueDate: refNow.AddDate(0, 0, 7),
	})
	hold := domain.TaskStatusOnHold
	_, err = e.UpdateTask(ctx, paused.ID, engine.UpdateTaskPatch{Status: &hold})
	require.NoError(t, err)
}

func TestQuery_ZeroSpec_ReturnsAllInStoreOrder(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	seedQueryFixture(t, e)

	got, err := e.Query(context.Background(), engine.QuerySpec{})
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue", "today", "tomorrow", "paused"}, titles(got))
}

func TestQuery_ActiveFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filter engine.ActiveFilter
		want   []string
	}{
		{engine.FilterAll, []string{"overdue", "today", "tomorrow", "paused"}},
		{engine.FilterPending, []string{"overdue", "today"}},
		{engine.FilterInProgress, nil},
		{engine.FilterCompleted, []string{"tomorrow"}},
		{engine.FilterHighPriority, []string{"overdue", "tomorrow"}},
		{engine.FilterDueToday, []string{"today"}},
		{engine.FilterOverdue, []string{"overdue"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.filter), func(t *testing.T) {
			t.Parallel()

			e := newTestEngine()
			seedQueryFixture(t, e)

			got, err := e.Query(context.Background(), engine.QuerySpec{ActiveFilter: tc.filter})
			require.NoError(t, err)
			assert.Equal(t, tc.want, func() []string {
				if len(got) == 0 {
					return nil
				}
				return titles(got)
			}())
		})
	}
}

func TestQuery_OverdueNeverIncludesCompleted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := newTestEngine()
	late := mustCreate(t, e, engine.CreateTaskRequest{
		Title: "late but done", Priority: domain.PriorityHigh,
		Category: domain.CategoryContent, DueDate: refNow.AddDate(0, 0, -3),
	})
	_, err := e.ToggleCompletion(ctx, late.ID)
	require.NoError(t, err)

	got, err := e.Query(ctx, engine.QuerySpec{ActiveFilter: engine.FilterOverdue})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_CategoryAndPriorityFilters(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	seedQueryFixture(t, e)
	ctx := context.Background()

	got, err := e.Query(ctx, engine.QuerySpec{Category: domain.CategoryContent})
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue", "tomorrow"}, titles(got))

	got, err = e.Query(ctx, engine.QuerySpec{Category: "all", Priority: domain.PriorityLow})
	require.NoError(t, err)
	assert.Equal(t, []string{"today"}, titles(got))
}

func TestQuery_Search(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	seedQueryFixture(t, e)
	ctx := context.Background()

	// Case-insensitive, matches title or description.
	got, err := e.Query(ctx, engine.QuerySpec{SearchText: "TOMOR"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tomorrow"}, titles(got))

	got, err = e.Query(ctx, engine.QuerySpec{SearchText: "Analytics Audit"})
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue"}, titles(got))

	// Empty search matches everything.
	got, err = e.Query(ctx, engine.QuerySpec{SearchText: ""})
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestQuery_ShowCompletedSuppression(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	seedQueryFixture(t, e)
	ctx := context.Background()

	got, err := e.Query(ctx, engine.QuerySpec{ShowCompleted: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, []string{"overdue", "today", "paused"}, titles(got))

	// Explicit completed filter overrides the suppression.
	got, err = e.Query(ctx, engine.QuerySpec{
		ActiveFilter:  engine.FilterCompleted,
		ShowCompleted: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tomorrow"}, titles(got))
}

func TestQuery_Sorts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort engine.SortKey
		want []string
	}{
		{engine.SortDueDate, []string{"overdue", "today", "tomorrow", "paused"}},
		{engine.SortPriority, []string{"tomorrow", "overdue", "paused", "today"}},
		{engine.SortTitle, []string{"overdue", "paused", "today", "tomorrow"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.sort), func(t *testing.T) {
			t.Parallel()

			e := newTestEngine()
			seedQueryFixture(t, e)

			got, err := e.Query(context.Background(), engine.QuerySpec{SortBy: tc.sort})
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestQuery_SortCreatedAt_NewestFirst(t *testing.T) {
	t.Parallel()

	now := refNow
	e := newEngineWithClock(func() time.Time { return now })
	for _, title := range []string{"oldest", "middle", "newest"} {
		mustCreate(t, e, validRequest(title))
		now = now.Add(time.Hour)
	}

	got, err := e.Query(context.Background(), engine.QuerySpec{SortBy: engine.SortCreatedAt})
	require.NoError(t, err)
	assert.Equal(t, []string{"newest", "middle", "oldest"}, titles(got))
}

func TestQuery_SortPriority_StableForEqualKeys(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	for _, title := range []string{"first", "second", "third"} {
		req := validRequest(title)
		req.Priority = domain.PriorityHigh
		mustCreate(t, e, req)
	}
	urgent := validRequest("jump")
	urgent.Priority = domain.PriorityUrgent
	mustCreate(t, e, urgent)

	got, err := e.Query(context.Background(), engine.QuerySpec{SortBy: engine.SortPriority})
	require.NoError(t, err)

	// Urgent first, then the equal high-priority tasks in store order.
	assert.Equal(t, []string{"jump", "first", "second", "third"}, titles(got))
}

func TestQuery_EmptyStore(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	got, err := e.Query(context.Background(), engine.QuerySpec{
		ActiveFilter: engine.FilterOverdue,
		SortBy:       engine.SortDueDate,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}
