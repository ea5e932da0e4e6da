package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alcyxob/exercise-tracker/internal/domain"
	"github.com/alcyxob/exercise-tracker/internal/metrics"
	"github.com/alcyxob/exercise-tracker/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUserNotFound     = errors.New("user not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidDate      = domain.ErrInvalidDate
)

type UserService interface {
	Register(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register creates a user. Uniqueness is enforced by the store, not by a
// prior lookup, so concurrent registrations of one name cannot both succeed.
func (s *userService) Register(ctx context.Context, username string) (*domain.User, error) {
	// Whitespace only counts as missing; the name is stored as given.
	if strings.TrimSpace(username) == "" {
		return nil, ErrValidationFailed
	}

	user := &domain.User{Username: username}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	user.ID = id

	metrics.UsersRegistered.Inc()
	return user, nil
}

// ListUsers returns every user in the store's natural order.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}
