package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dailysync/core/internal/domain/entities"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

// UserService exposes the user directory consumed by team views.
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns one user's public profile.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// List returns all users' public profiles, sorted by name. Lead/admin only.
func (s *UserService) List(ctx context.Context, identity entities.Identity) ([]*entities.Profile, error) {
	if !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	users, err := s.userRepo.List(ctx, ports.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return profiles(users), nil
}

// ListByTeam returns users on the given team (all users when team is
// empty), sorted by name. Lead/admin only.
func (s *UserService) ListByTeam(ctx context.Context, identity entities.Identity, team string) ([]*entities.Profile, error) {
	if !identity.IsLeadOrAdmin() {
		return nil, entities.ErrForbidden
	}

	users, err := s.userRepo.List(ctx, ports.UserFilter{Team: team})
	if err != nil {
		return nil, fmt.Errorf("list users by team: %w", err)
	}

	return profiles(users), nil
}

func profiles(users []*entities.User) []*entities.Profile {
	out := make([]*entities.Profile, len(users))
	for i, user := range users {
		out[i] = user.Profile()
	}
	return out
}
