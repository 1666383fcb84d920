package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/creatorstack/tracker/internal/domain"
	"github.com/creatorstack/tracker/internal/engine"
)

type TaskStatsOutput struct {
	Body engine.TaskStats
}

type ProductivityStatsOutput struct {
	Body engine.ProductivityStats
}

// CategoryBreakdown pairs one category's tasks with their completion
// progress for the dashboard's category panel.
type CategoryBreakdown struct {
	Category domain.TaskCategory `json:"category"`
	Tasks    []*domain.Task      `json:"tasks"`
	Progress int                 `json:"progress"` // whole percent completed
}

type CategoryStatsOutput struct {
	Body []CategoryBreakdown
}

func RegisterStatsRoutes(api huma.API, eng TaskEngine) {
	huma.Register(api, huma.Operation{
		OperationID: "task-stats",
		Method:      http.MethodGet,
		Path:        "/stats/tasks",
		Summary:     "Headline task aggregates",
		Tags:        []string{"Stats"},
	}, func(ctx context.Context, _ *struct{}) (*TaskStatsOutput, error) {
		s, err := eng.TaskStats(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to compute task stats", err)
		}

		return &TaskStatsOutput{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "productivity-stats",
		Method:      http.MethodGet,
		Path:        "/stats/productivity",
		Summary:     "Completion and creation counts per calendar window",
		Tags:        []string{"Stats"},
	}, func(ctx context.Context, _ *struct{}) (*ProductivityStatsOutput, error) {
		s, err := eng.ProductivityStats(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to compute productivity stats", err)
		}

		return &ProductivityStatsOutput{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "category-stats",
		Method:      http.MethodGet,
		Path:        "/stats/categories",
		Summary:     "Tasks grouped by category with completion progress",
		Tags:        []string{"Stats"},
	}, func(ctx context.Context, _ *struct{}) (*CategoryStatsOutput, error) {
		byCategory, err := eng.TasksByCategory(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to group tasks", err)
		}

		// Fixed display order; empty categories are omitted.
		out := make([]CategoryBreakdown, 0, len(byCategory))
		for _, c := range domain.Categories() {
			tasks, ok := byCategory[c]
			if !ok {
				continue
			}
			out = append(out, CategoryBreakdown{
				Category: c,
				Tasks:    tasks,
				Progress: engine.CategoryProgress(tasks),
			})
		}

		return &CategoryStatsOutput{Body: out}, nil
	})
}
