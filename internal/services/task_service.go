package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories"
	"github.com/adanyl0v/go-todo-app/internal/repositories/tasks"
	"github.com/adanyl0v/go-todo-app/internal/repositories/users"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	users  users.Repository
	tasks  tasks.Repository
}

func NewTaskService(
	logger zerolog.Logger,
	userRepo users.Repository,
	taskRepo tasks.Repository,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		users:  userRepo,
		tasks:  taskRepo,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if params.Title == "" || params.Description == "" {
		s.logger.Error().
			Str("user_id", params.UserID).
			Msg("missing required task fields")
		return nil, ErrMissingRequiredFields
	}
	if !isValidID(params.UserID) {
		s.logger.Error().
			Str("user_id", params.UserID).
			Msg("malformed user id")
		return nil, ErrUserNotFound
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:          taskUUID.String(),
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.tasks.Create(ctx, task)
	if err != nil {
		if errors.Is(err, repositories.ErrMissingReference) {
			s.logger.Error().
				Str("user_id", task.UserID).
				Msg("task owner not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", task.UserID).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", task.UserID).
		Str("task_id", task.ID).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTasksByUserID(ctx context.Context, userID string) ([]*models.Task, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	list, err := s.tasks.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", userID).
		Int("count", len(list)).
		Msg("selected tasks")

	return list, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	if !isValidID(params.ID) {
		s.logger.Error().
			Str("task_id", params.ID).
			Msg("malformed task id")
		return nil, ErrTaskNotFound
	}

	task, err := s.tasks.GetOwned(ctx, params.ID, params.UserID)
	if err != nil {
		return nil, s.taskError(err, params.ID, params.UserID, "failed to select task")
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = *params.Description
	}
	if params.IsCompleted != nil {
		task.IsCompleted = *params.IsCompleted
	}
	if task.Title == "" {
		s.logger.Error().
			Str("task_id", task.ID).
			Msg("empty task title")
		return nil, ErrEmptyTaskTitle
	}
	task.UpdatedAt = time.Now()

	err = s.tasks.Update(ctx, task)
	if err != nil {
		return nil, s.taskError(err, params.ID, params.UserID, "failed to update task")
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) SetTaskCompleted(ctx context.Context, params SetTaskCompletedParams) (*models.Task, error) {
	if !isValidID(params.ID) {
		s.logger.Error().
			Str("task_id", params.ID).
			Msg("malformed task id")
		return nil, ErrTaskNotFound
	}

	task, err := s.tasks.SetCompleted(ctx, params.ID, params.UserID, params.IsCompleted, time.Now())
	if err != nil {
		return nil, s.taskError(err, params.ID, params.UserID, "failed to update task status")
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Bool("is_completed", task.IsCompleted).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, params DeleteTaskParams) error {
	if !isValidID(params.ID) {
		s.logger.Error().
			Str("task_id", params.ID).
			Msg("malformed task id")
		return ErrTaskNotFound
	}

	err := s.tasks.Delete(ctx, params.ID, params.UserID)
	if err != nil {
		return s.taskError(err, params.ID, params.UserID, "failed to delete task")
	}

	s.logger.Info().
		Str("task_id", params.ID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) requireUser(ctx context.Context, userID string) (*models.User, error) {
	if !isValidID(userID) {
		s.logger.Error().
			Str("user_id", userID).
			Msg("malformed user id")
		return nil, ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error().
				Str("user_id", userID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select user")
		return nil, err
	}

	return user, nil
}

// taskError maps a store error for a task operation and logs it.
func (s *taskServiceImpl) taskError(err error, taskID, userID, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error().
			Str("task_id", taskID).
			Str("user_id", userID).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Error().
		Err(err).
		Str("task_id", taskID).
		Str("user_id", userID).
		Msg(msg)
	return err
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
