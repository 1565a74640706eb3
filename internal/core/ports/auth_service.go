package ports

import (
	"context"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Role            string
}

// AuthResult is returned on successful register/login: a freshly minted
// session token plus the user it identifies.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// UserService exposes read-only user lookups.
type UserService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// LoginThrottle limits repeated failed logins per username.
type LoginThrottle interface {
	// TooMany reports whether the username has exceeded the failure limit.
	TooMany(ctx context.Context, username string) (bool, error)
	// RecordFailure counts one failed attempt against the username.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
