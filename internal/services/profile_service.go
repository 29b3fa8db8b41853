package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories"
	"github.com/adanyl0v/go-todo-app/internal/repositories/tasks"
	"github.com/adanyl0v/go-todo-app/internal/repositories/users"
)

type profileServiceImpl struct {
	logger zerolog.Logger
	users  users.Repository
	tasks  tasks.Repository
}

func NewProfileService(
	logger zerolog.Logger,
	userRepo users.Repository,
	taskRepo tasks.Repository,
) ProfileService {
	return &profileServiceImpl{
		logger: logger,
		users:  userRepo,
		tasks:  taskRepo,
	}
}

func (s *profileServiceImpl) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if !isValidID(userID) {
		s.logger.Error().
			Str("user_id", userID).
			Msg("malformed user id")
		return nil, ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.userError(err, userID, "failed to select user")
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user")

	if err = s.attachTaskIDs(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (s *profileServiceImpl) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*models.User, error) {
	if (params.Username != nil && *params.Username == "") ||
		(params.Phone != nil && *params.Phone == "") {
		s.logger.Error().
			Str("user_id", params.UserID).
			Msg("empty profile field")
		return nil, ErrEmptyProfileField
	}

	if !isValidID(params.UserID) {
		s.logger.Error().
			Str("user_id", params.UserID).
			Msg("malformed user id")
		return nil, ErrUserNotFound
	}

	patch := users.Patch{
		Username: params.Username,
		Address:  params.Address,
		Phone:    params.Phone,
		Avatar:   params.Avatar,
	}
	user, err := s.users.Update(ctx, params.UserID, patch, time.Now())
	if err != nil {
		return nil, s.userError(err, params.UserID, "failed to update user")
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("updated user")

	if err = s.attachTaskIDs(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("updated profile")
	user.Password = ""
	return user, nil
}

func (s *profileServiceImpl) attachTaskIDs(ctx context.Context, user *models.User) error {
	ids, err := s.tasks.ListIDsByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to select task ids")
		return err
	}
	user.TaskIDs = ids
	return nil
}

func (s *profileServiceImpl) userError(err error, userID, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error().
			Str("user_id", userID).
			Msg("user not found")
		return ErrUserNotFound
	}

	s.logger.Error().
		Err(err).
		Str("user_id", userID).
		Msg(msg)
	return err
}
