package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/model/response"
	"taskboard/internal/core/port"
	"taskboard/pkg/tracing"
)

// TaskService exposes task creation and the filtered, paginated search.
type TaskService struct {
	repo      port.TaskRepository
	validator port.Validator
}

func NewTaskService(repo port.TaskRepository, validator port.Validator) *TaskService {
	return &TaskService{
		repo:      repo,
		validator: validator,
	}
}

func (s *TaskService) Create(ctx context.Context, userID int, req *request.CreateTaskRequest) (*response.TaskResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()

	task, err := s.repo.Create(ctx, domain.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	if err != nil {
		slog.Error("Task#Create", "error", err, "title", req.Title)
		return nil, err
	}

	resp := taskToResponse(task)

	return &resp, nil
}

// SearchTasks runs a page fetch and a count under the identical predicate
// set, always scoped to userID. The page is 1-indexed; total_page is the
// ceiling of count over size, so zero items means zero pages.
func (s *TaskService) SearchTasks(ctx context.Context, userID int, req *request.SearchTasksRequest) (*response.TaskPageResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	ctx, span := tracing.CreateChildSpan(ctx, "service.task.SearchTasks",
		attribute.Int("user.id", userID),
		attribute.Int("page", req.Page),
		attribute.Int("size", req.Size))
	defer span.End()

	skip := (req.Page - 1) * req.Size

	filter := domain.TaskFilter{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Limit:       req.Size,
		Offset:      skip,
	}

	tasks, err := s.repo.Search(ctx, filter)

	if err != nil {
		tracing.AddSpanError(span, err)
		return nil, err
	}

	total, err := s.repo.Count(ctx, filter)

	if err != nil {
		tracing.AddSpanError(span, err)
		return nil, err
	}

	data := make([]response.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		data = append(data, taskToResponse(task))
	}

	totalPage := int((total + int64(req.Size) - 1) / int64(req.Size))

	return &response.TaskPageResponse{
		Data: data,
		Paging: response.Paging{
			Page:      req.Page,
			TotalItem: total,
			TotalPage: totalPage,
		},
	}, nil
}

func taskToResponse(task domain.Task) response.TaskResponse {
	return response.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
