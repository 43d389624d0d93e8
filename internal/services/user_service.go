package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ecinar/stocksim/internal/auth"
	"github.com/ecinar/stocksim/internal/config"
	"github.com/ecinar/stocksim/internal/models"
	repo "github.com/ecinar/stocksim/internal/repository"
	"github.com/ecinar/stocksim/internal/worker"
)

type UserService struct {
	users repo.Users
	acts  repo.Activities
	wp    *worker.Pool
	cfg   config.Config
}

func NewUserService(users repo.Users, acts repo.Activities, wp *worker.Pool, cfg config.Config) *UserService {
	return &UserService{users: users, acts: acts, wp: wp, cfg: cfg}
}

// Register creates the account with the configured starting cash balance.
// The caller establishes the session on success.
func (s *UserService) Register(ctx context.Context, username, password, confirm string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, models.ValidationError("Missing username")
	}
	if password == "" || confirm == "" {
		return models.User{}, models.ValidationError("Missing password")
	}
	if password != confirm {
		return models.User{}, models.ValidationError("Password confirmation doesn't match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.Create(ctx, username, hash, s.cfg.StartingCash)
	if err != nil {
		return models.User{}, err
	}
	s.record(u.ID, "register", nil)
	return u, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (models.User, error) {
	if strings.TrimSpace(username) == "" {
		return models.User{}, models.ValidationError("must provide username")
	}
	if password == "" {
		return models.User{}, models.ValidationError("must provide password")
	}

	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return models.User{}, models.ErrInvalidCredentials
	}
	s.record(u.ID, "login", nil)
	return u, nil
}

// ChangePassword verifies the old password before replacing the hash. The
// caller must clear the session so the user re-authenticates.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirm string) error {
	if oldPassword == "" {
		return models.ValidationError("Missing password")
	}
	if newPassword == "" {
		return models.ValidationError("Missing new password")
	}
	if confirm == "" {
		return models.ValidationError("Missing password confirmation")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if auth.VerifyPassword(oldPassword, u.PasswordHash) != nil {
		return models.ErrInvalidCredentials
	}
	if newPassword != confirm {
		return models.ValidationError("Password confirmation doesn't match")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	s.record(userID, "password_change", nil)
	return nil
}

func (s *UserService) Get(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) record(userID, action string, details map[string]any) {
	uid := userID
	s.wp.Submit(func() {
		_ = s.acts.Record(context.Background(), models.Activity{
			UserID:  &uid,
			Action:  action,
			Details: details,
		})
	})
}
