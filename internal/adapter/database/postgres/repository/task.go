package repository

import (
	"context"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"taskboard/internal/adapter/database/postgres"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

var taskColumns = []string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}

type TaskRepository struct {
	db *postgres.DB
}

func NewTaskRepository(db *postgres.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("user_id", "title", "description", "completed", "created_at", "updated_at").
		Values(task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	if err := tr.db.QueryRow(ctx, stmt, args...).Scan(&task.ID); err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	return task, nil
}

func (tr *TaskRepository) Search(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns...).
		From("tasks").
		Where(taskPredicate(filter)).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error searching tasks", "error", err)
		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		var task domain.Task

		err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (tr *TaskRepository) Count(ctx context.Context, filter domain.TaskFilter) (int64, error) {
	query := tr.db.QueryBuilder.Select("COUNT(*)").
		From("tasks").
		Where(taskPredicate(filter))

	stmt, args, err := query.ToSql()

	if err != nil {
		return 0, err
	}

	var count int64

	if err := tr.db.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// taskPredicate mirrors the sqlite builder, with ILIKE for the substring
// filters since postgres LIKE is case sensitive.
func taskPredicate(filter domain.TaskFilter) sq.And {
	pred := sq.And{sq.Eq{"user_id": filter.UserID}}

	if filter.Title != "" {
		pred = append(pred, sq.ILike{"title": "%" + filter.Title + "%"})
	}

	if filter.Description != "" {
		pred = append(pred, sq.ILike{"description": "%" + filter.Description + "%"})
	}

	if filter.Completed != nil {
		pred = append(pred, sq.Eq{"completed": *filter.Completed})
	}

	return pred
}
