package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories"
)

var userColumns = []string{
	"id", "username", "email", "password", "phone", "address", "avatar", "created_at", "updated_at",
}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func testUser() *models.User {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return &models.User{
		ID:        "0194a1c2-0000-7000-8000-000000000001",
		Username:  "alice",
		Email:     "a@x.com",
		Password:  "$argon2id$hash",
		Phone:     "1234567890",
		Address:   "",
		Avatar:    models.DefaultAvatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func userRow(u *models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).AddRow(
		u.ID, u.Username, u.Email, u.Password, u.Phone, u.Address, u.Avatar, u.CreatedAt, u.UpdatedAt,
	)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := testUser()
	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+users`).
		WithArgs(u.ID, u.Username, u.Email, u.Password, u.Phone, u.Address, u.Avatar, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	err := repo.Create(context.Background(), testUser())
	assert.ErrorIs(t, err, repositories.ErrAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), testUser())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := testUser()
	mock.ExpectQuery(`(?s)SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs(u.Email).
		WillReturnRows(userRow(u))

	got, err := repo.GetByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGetByID_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+users`).WillReturnError(errors.New("db err"))

	_, err := repo.GetByID(context.Background(), "u-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdate_PartialPatch(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	u := testUser()
	u.Username = "bob"
	username := "bob"
	updatedAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)UPDATE\s+users\s+SET\s+username\s*=\s*COALESCE\(\$1,\s*username\).*RETURNING`).
		WithArgs(username, nil, nil, nil, updatedAt, u.ID).
		WillReturnRows(userRow(u))

	got, err := repo.Update(context.Background(), u.ID, Patch{Username: &username}, updatedAt)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE\s+users`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "ghost", Patch{}, time.Now())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
