package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/creatorstack/tracker/internal/api/v1"
	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
)

func TestTaskStatsRoute(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		eng := &mockEngine{
			taskStatsFunc: func(_ context.Context) (engine.TaskStats, error) {
				return engine.TaskStats{
					Total: 3, Completed: 1, Pending: 2, Overdue: 1, CompletionRate: 33,
				}, nil
			},
		}
		v1.RegisterStatsRoutes(api, eng)

		resp := api.Get("/stats/tasks")

		require.Equal(t, http.StatusOK, resp.Code)

		var body engine.TaskStats
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 3, body.Total)
		assert.Equal(t, 1, body.Completed)
		assert.Equal(t, 2, body.Pending)
		assert.Equal(t, 1, body.Overdue)
		assert.Equal(t, 33, body.CompletionRate)
	})

	t.Run("engine_error", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		eng := &mockEngine{
			taskStatsFunc: func(_ context.Context) (engine.TaskStats, error) {
				return engine.TaskStats{}, errors.New("db timeout")
			},
		}
		v1.RegisterStatsRoutes(api, eng)

		resp := api.Get("/stats/tasks")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

func TestProductivityStatsRoute(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	eng := &mockEngine{
		productivityStatsFunc: func(_ context.Context) (engine.ProductivityStats, error) {
			return engine.ProductivityStats{
				Today:     engine.WindowStats{Completed: 1, Created: 2},
				ThisWeek:  engine.WindowStats{Completed: 2, Created: 3},
				ThisMonth: engine.WindowStats{Completed: 3, Created: 4},
			}, nil
		},
	}
	v1.RegisterStatsRoutes(api, eng)

	resp := api.Get("/stats/productivity")

	require.Equal(t, http.StatusOK, resp.Code)

	var body engine.ProductivityStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, engine.WindowStats{Completed: 1, Created: 2}, body.Today)
	assert.Equal(t, engine.WindowStats{Completed: 2, Created: 3}, body.ThisWeek)
	assert.Equal(t, engine.WindowStats{Completed: 3, Created: 4}, body.ThisMonth)
}

func TestCategoryStatsRoute(t *testing.T) {
	t.Parallel()

	t.Run("fixed_display_order_and_progress", func(t *testing.T) {
		t.Parallel()

		seo := []*domain.Task{
			{ID: uuid.New(), Title: "Keyword audit", Category: domain.CategorySEO, Completed: true},
		}
		content := []*domain.Task{
			{ID: uuid.New(), Title: "Script episode", Category: domain.CategoryContent},
			{ID: uuid.New(), Title: "Edit episode", Category: domain.CategoryContent, Completed: true},
		}

		_, api := humatest.New(t)
		eng := &mockEngine{
			tasksByCategoryFunc: func(_ context.Context) (map[domain.TaskCategory][]*domain.Task, error) {
				return map[domain.TaskCategory][]*domain.Task{
					domain.CategorySEO:     seo,
					domain.CategoryContent: content,
				}, nil
			},
		}
		v1.RegisterStatsRoutes(api, eng)

		resp := api.Get("/stats/categories")

		require.Equal(t, http.StatusOK, resp.Code)

		var body []struct {
			Category domain.TaskCategory `json:"category"`
			Tasks    []*domain.Task      `json:"tasks"`
			Progress int                 `json:"progress"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		// content sorts before seo in the canonical category order; empty
		// categories never appear.
		require.Len(t, body, 2)
		assert.Equal(t, domain.CategoryContent, body[0].Category)
		assert.Len(t, body[0].Tasks, 2)
		assert.Equal(t, 50, body[0].Progress)
		assert.Equal(t, domain.CategorySEO, body[1].Category)
		assert.Equal(t, 100, body[1].Progress)
	})

	t.Run("engine_error", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		eng := &mockEngine{
			tasksByCategoryFunc: func(_ context.Context) (map[domain.TaskCategory][]*domain.Task, error) {
				return nil, errors.New("db timeout")
			},
		}
		v1.RegisterStatsRoutes(api, eng)

		resp := api.Get("/stats/categories")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}
