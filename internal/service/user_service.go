package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/thewhitewolf2411/TaskManager/internal/domain"
	"github.com/thewhitewolf2411/TaskManager/internal/repository"
	apperrors "github.com/thewhitewolf2411/TaskManager/pkg/util"
)

// UserService serves profile lookups and the admin user listing.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID returns the user for the given ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
