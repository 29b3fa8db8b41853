package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-todo-app/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("email already registered, please login")
	ErrUserPasswordMismatch = errors.New("email or password invalid")
	ErrTaskNotFound         = errors.New("todo not found or not yours")
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

var (
	ErrMissingRequiredFields = newValidationError("please fill all required fields")
	ErrMissingCredentials    = newValidationError("email and password should not be empty")
	ErrPasswordTooShort      = newValidationError("password length must be greater than 5")
	ErrEmptyTaskTitle        = newValidationError("title must not be empty")
	ErrEmptyProfileField     = newValidationError("username and phone must not be empty")
)

// ValidationError reports malformed or missing input. Its message is safe
// to show to clients.
type ValidationError struct {
	Message string
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MinPasswordLength is exclusive: a password must be longer than this.
const MinPasswordLength = 5

type AuthService interface {
	// Register stores a new user with a hashed password.
	//
	// It returns ErrMissingRequiredFields if username, email, phone or
	// password is empty, ErrUserAlreadyExists if the email is taken and
	// ErrPasswordTooShort if the password is not longer than
	// MinPasswordLength characters. No token is issued.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login verifies the email and password and issues a bearer token.
	//
	// It returns ErrMissingCredentials if either field is empty,
	// ErrUserNotFound if no user has the email and ErrUserPasswordMismatch
	// if the password doesn't match.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

type TaskService interface {
	// CreateTask returns ErrMissingRequiredFields if the title or the
	// description is empty.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTasksByUserID returns the owner's tasks in creation order or
	// ErrUserNotFound if the owner doesn't exist anymore.
	GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask applies a partial patch to a task owned by the user.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// SetTaskCompleted changes only the completion flag.
	SetTaskCompleted(ctx context.Context, params SetTaskCompletedParams) (*models.Task, error)

	// DeleteTask removes a task owned by the user.
	DeleteTask(ctx context.Context, params DeleteTaskParams) error
}

type ProfileService interface {
	// GetProfile returns the user without the password hash, with the ids
	// of the owned tasks.
	GetProfile(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile overwrites the given fields and returns the result.
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error)
}

// AuditService records unhandled failures. Record never fails; a write
// error is only logged.
type AuditService interface {
	Record(ctx context.Context, params RecordParams)
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type RegisterParams struct {
	Username string
	Email    string
	Phone    string
	Password string
	Address  string
	Avatar   string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.UserSummary
}

type CreateTaskParams struct {
	UserID      string
	Title       string
	Description string
}

// UpdateTaskParams holds a partial patch: nil fields are left unchanged.
type UpdateTaskParams struct {
	ID          string
	UserID      string
	Title       *string
	Description *string
	IsCompleted *bool
}

type SetTaskCompletedParams struct {
	ID          string
	UserID      string
	IsCompleted bool
}

type DeleteTaskParams struct {
	ID     string
	UserID string
}

type UpdateProfileParams struct {
	UserID   string
	Username *string
	Address  *string
	Phone    *string
	Avatar   *string
}

type RecordParams struct {
	Message string
	Stack   string
	Path    string
	Method  string
}
