package service

import (
	"context"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
	"github.com/fwedwicc/rebyuwer-app/internal/core/ports"
)

// UserService exposes read-only user lookups. The repository already
// excludes the password hash from its projections.
type UserService struct {
	repo ports.AuthRepository
}

func NewUserService(repo ports.AuthRepository) *UserService {
	return &UserService{repo: repo}
}

// Me returns the caller's own record.
func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListUsers returns every user. Role gating happens at the route level;
// the service itself has no notion of the caller.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}
