package port

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/model/response"
)

type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	// Search and Count must interpret the same filter identically so a page
	// and its total always agree. Count ignores Limit and Offset.
	Search(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	Count(ctx context.Context, filter domain.TaskFilter) (int64, error)
}

type TaskService interface {
	Create(ctx context.Context, userID int, req *request.CreateTaskRequest) (*response.TaskResponse, error)
	SearchTasks(ctx context.Context, userID int, req *request.SearchTasksRequest) (*response.TaskPageResponse, error)
}
