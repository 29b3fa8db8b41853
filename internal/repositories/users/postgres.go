package users

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
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, patch Patch, updatedAt time.Time) (*models.User, error)
}

// Patch lists the profile fields that may be overwritten. Nil fields keep
// their stored value.
type Patch struct {
	Username *string
	Address  *string
	Phone    *string
	Avatar   *string
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   username,
                   email,
                   password,
                   phone,
                   address,
                   avatar,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.db.ExecContext(
		ctx,
		insertUserQuery,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		user.Phone,
		user.Address,
		user.Avatar,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if repositories.IsUniqueViolation(err) {
			return repositories.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

const selectUserColumns = `
SELECT id,
       username,
       email,
       password,
       phone,
       address,
       avatar,
       created_at,
       updated_at
FROM users
`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, selectUserColumns+`WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserColumns+`WHERE email = $1`, email)
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch Patch, updatedAt time.Time) (*models.User, error) {
	const updateUserQuery = `
UPDATE users
SET username = COALESCE($1, username),
    address = COALESCE($2, address),
    phone = COALESCE($3, phone),
    avatar = COALESCE($4, avatar),
    updated_at = $5
WHERE id = $6
RETURNING id,
          username,
          email,
          password,
          phone,
          address,
          avatar,
          created_at,
          updated_at
`
	return r.getOne(
		ctx,
		updateUserQuery,
		patch.Username,
		patch.Address,
		patch.Phone,
		patch.Avatar,
		updatedAt,
		id,
	)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.Phone,
		&user.Address,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
