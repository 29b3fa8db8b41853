package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/adanyl0v/go-todo-app/internal/dbx"
	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByUserID(ctx context.Context, userID string) ([]*models.Task, error)
	ListIDsByUserID(ctx context.Context, userID string) ([]string, error)
	GetOwned(ctx context.Context, id, userID string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	SetCompleted(ctx context.Context, id, userID string, isCompleted bool, updatedAt time.Time) (*models.Task, error)
	Delete(ctx context.Context, id, userID string) error
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   user_id,
                   title,
                   description,
                   is_completed,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.db.ExecContext(
		ctx,
		insertTaskQuery,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.IsCompleted,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return repositories.ErrMissingReference
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByUserIDQuery = `
SELECT id,
       user_id,
       title,
       description,
       is_completed,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1
ORDER BY created_at, id
`
	rows, err := r.db.QueryContext(ctx, selectTasksByUserIDQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		err = rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&task.IsCompleted,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return tasks, nil
}

func (r *PostgresRepository) ListIDsByUserID(ctx context.Context, userID string) ([]string, error) {
	const selectTaskIDsByUserIDQuery = `
SELECT id
FROM tasks
WHERE user_id = $1
ORDER BY created_at, id
`
	rows, err := r.db.QueryContext(ctx, selectTaskIDsByUserIDQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return ids, nil
}

func (r *PostgresRepository) GetOwned(ctx context.Context, id, userID string) (*models.Task, error) {
	const selectOwnedTaskQuery = `
SELECT title,
       description,
       is_completed,
       created_at,
       updated_at
FROM tasks
WHERE id = $1 AND
      user_id = $2
`
	task := &models.Task{ID: id, UserID: userID}
	err := r.db.QueryRowContext(ctx, selectOwnedTaskQuery, id, userID).Scan(
		&task.Title,
		&task.Description,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    is_completed = $3,
    updated_at = $4
WHERE id = $5 AND
      user_id = $6
`
	res, err := r.db.ExecContext(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.IsCompleted,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireAffected(res)
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, id, userID string, isCompleted bool, updatedAt time.Time) (*models.Task, error) {
	const updateTaskCompletedQuery = `
UPDATE tasks
SET is_completed = $1,
    updated_at = $2
WHERE id = $3 AND
      user_id = $4
RETURNING title,
          description,
          created_at
`
	task := &models.Task{
		ID:          id,
		UserID:      userID,
		IsCompleted: isCompleted,
		UpdatedAt:   updatedAt,
	}
	err := r.db.QueryRowContext(ctx, updateTaskCompletedQuery, isCompleted, updatedAt, id, userID).Scan(
		&task.Title,
		&task.Description,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND
      user_id = $2
`
	res, err := r.db.ExecContext(ctx, deleteTaskQuery, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
