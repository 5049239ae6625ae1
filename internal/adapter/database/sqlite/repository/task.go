package repository

import (
	"context"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"taskboard/internal/adapter/database/sqlite"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

const taskColumns = "id, user_id, title, description, completed, created_at, updated_at"

type TaskRepository struct {
	db *sqlite.DB
}

func NewTaskRepository(db *sqlite.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("user_id", "title", "description", "completed", "created_at", "updated_at").
		Values(task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error creating task", "error", err)
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		return domain.Task{}, err
	}

	task.ID = int(id)

	return task, nil
}

// Search returns one page of tasks matching the filter, in store-default
// (insertion) order.
func (tr *TaskRepository) Search(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(taskPredicate(filter)).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

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

// Count runs under the same predicate set as Search, without the window.
func (tr *TaskRepository) Count(ctx context.Context, filter domain.TaskFilter) (int64, error) {
	query := tr.db.QueryBuilder.Select("COUNT(*)").
		From("tasks").
		Where(taskPredicate(filter))

	stmt, args, err := query.ToSql()

	if err != nil {
		return 0, err
	}

	var count int64

	if err := tr.db.QueryRowContext(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// taskPredicate builds the conjunctive predicate set: the user scope always,
// the optional filters only when set. Both Search and Count go through here
// so a page and its total can never disagree.
func taskPredicate(filter domain.TaskFilter) sq.And {
	pred := sq.And{sq.Eq{"user_id": filter.UserID}}

	if filter.Title != "" {
		pred = append(pred, sq.Like{"title": "%" + filter.Title + "%"})
	}

	if filter.Description != "" {
		pred = append(pred, sq.Like{"description": "%" + filter.Description + "%"})
	}

	if filter.Completed != nil {
		pred = append(pred, sq.Eq{"completed": *filter.Completed})
	}

	return pred
}
