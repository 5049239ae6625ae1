package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"taskboard/internal/adapter/database/postgres"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/port"
)

// uniqueViolation is the postgres error code raised by the unique index on
// username when two registrations race past the count check.
const uniqueViolation = "23505"

var userColumns = []string{"id", "username", "name", "password", "token", "created_at", "updated_at"}

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	query := ur.db.QueryBuilder.Insert("users").
		Columns("username", "name", "password", "token", "created_at", "updated_at").
		Values(user.Username, user.Name, user.Password, user.Token, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	if err := ur.db.QueryRow(ctx, stmt, args...).Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, domain.ErrUsernameTaken
		}

		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	query := ur.db.QueryBuilder.Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"username": username})

	stmt, args, err := query.ToSql()

	if err != nil {
		return 0, err
	}

	var count int64

	if err := ur.db.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) GetByToken(ctx context.Context, token string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"token": token})
}

func (ur *UserRepository) getOne(ctx context.Context, pred sq.Eq) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(pred).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Password,
		&user.Token,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}

		slog.Error("Error getting user", "error", err)
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) UpdateByUsername(ctx context.Context, username string, patch domain.UserPatch) (domain.User, error) {
	if patch.Empty() {
		return ur.GetByUsername(ctx, username)
	}

	query := ur.db.QueryBuilder.Update("users").
		Set("updated_at", time.Now()).
		Where(sq.Eq{"username": username})

	if patch.Name != nil {
		query = query.Set("name", *patch.Name)
	}

	if patch.Password != nil {
		query = query.Set("password", *patch.Password)
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, err
	}

	result, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating user", "error", err)
		return domain.User{}, err
	}

	if result.RowsAffected() == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	return ur.GetByUsername(ctx, username)
}

func (ur *UserRepository) UpdateToken(ctx context.Context, username string, token *string) error {
	query := ur.db.QueryBuilder.Update("users").
		Set("token", token).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"username": username})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating token", "error", err)
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}
