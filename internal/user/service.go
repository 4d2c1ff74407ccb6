package user

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Directory defines the interface for the user directory backend.
type Directory interface {
	// FindByCredentials returns the accounts matching a username/password
	// pair. A successful login is exactly one match.
	FindByCredentials(ctx context.Context, username, password string) ([]User, error)

	// FindByUsername returns the accounts with the given username.
	FindByUsername(ctx context.Context, username string) ([]User, error)

	// Create registers a new account and returns it with its assigned ID.
	Create(ctx context.Context, username, password string) (User, error)
}

// ServiceConfig holds configuration for the user service.
type ServiceConfig struct {
	// Directory is the user directory backend.
	Directory Directory

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service provides login and registration on top of the directory.
type Service struct {
	directory Directory
	logger    zerolog.Logger
}

// NewService creates a new user service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		directory: cfg.Directory,
		logger:    cfg.Logger,
	}
}

// Login authenticates a username/password pair. The credentials are valid
// only when the directory returns exactly one matching account: zero means
// wrong credentials, more than one means a corrupt directory and is treated
// the same way.
func (s *Service) Login(ctx context.Context, username, password string) (User, error) {
	matches, err := s.directory.FindByCredentials(ctx, username, password)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("directory lookup failed")
		return User{}, ErrDirectoryUnavailable
	}

	if len(matches) != 1 {
		return User{}, ErrInvalidCredentials
	}
	return matches[0], nil
}

// Register creates a new account. Usernames must be unique in the
// directory.
func (s *Service) Register(ctx context.Context, username, password string) (User, error) {
	if len(username) < MinUsernameLength {
		return User{}, ErrInvalidUsername
	}
	if len(password) < MinPasswordLength {
		return User{}, ErrInvalidPassword
	}

	existing, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("uniqueness check failed")
		return User{}, ErrDirectoryUnavailable
	}
	if len(existing) > 0 {
		return User{}, ErrUsernameTaken
	}

	created, err := s.directory.Create(ctx, username, password)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("account creation failed")
		return User{}, fmt.Errorf("create account: %w", ErrDirectoryUnavailable)
	}

	s.logger.Info().Str("user_id", created.ID).Msg("account registered")
	return created, nil
}
