package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories"
	"github.com/adanyl0v/go-todo-app/internal/repositories/users"
)

type authServiceImpl struct {
	logger     zerolog.Logger
	users      users.Repository
	tokens     TokenIssuer
	hashParams *argon2id.Params
}

func NewAuthService(
	logger zerolog.Logger,
	userRepo users.Repository,
	tokens TokenIssuer,
	hashParams *argon2id.Params,
) AuthService {
	if hashParams == nil {
		hashParams = argon2id.DefaultParams
	}
	return &authServiceImpl{
		logger:     logger,
		users:      userRepo,
		tokens:     tokens,
		hashParams: hashParams,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	if params.Username == "" ||
		params.Email == "" ||
		params.Phone == "" ||
		params.Password == "" {
		s.logger.Error().
			Str("email", params.Email).
			Msg("missing required fields")
		return nil, ErrMissingRequiredFields
	}

	_, err := s.users.GetByEmail(ctx, params.Email)
	if err == nil {
		s.logger.Error().
			Str("email", params.Email).
			Msg("user with this email already exists")
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, err
	}

	if utf8.RuneCountInString(params.Password) <= MinPasswordLength {
		s.logger.Error().
			Str("email", params.Email).
			Msg("password too short")
		return nil, ErrPasswordTooShort
	}

	now := time.Now()
	user := &models.User{
		Username:  params.Username,
		Email:     params.Email,
		Phone:     params.Phone,
		Address:   params.Address,
		Avatar:    params.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Avatar == "" {
		user.Avatar = models.DefaultAvatar
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, err
	}
	user.ID = userUUID.String()

	passwordHash, err := argon2id.CreateHash(params.Password, s.hashParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, err
	}
	user.Password = passwordHash

	err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")
	user.TaskIDs = []string{}
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if params.Email == "" || params.Password == "" {
		s.logger.Error().Msg("missing credentials")
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error().
				Str("email", params.Email).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Msg("selected user")

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().
			Str("user_id", user.ID).
			Msg("passwords do not match")
		return nil, ErrUserPasswordMismatch
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Time("expires_at", expiresAt).
		Msg("logged in")
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User: models.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
