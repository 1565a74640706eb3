package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
	"github.com/fwedwicc/rebyuwer-app/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.AuthRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
}

// NewAuthService wires the credential store, token minting and an optional
// login throttle (nil disables throttling).
func NewAuthService(repo ports.AuthRepository, tokens ports.TokenService, throttle ports.LoginThrottle) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, domain.ErrValidation
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := checkPasswordPolicy(input.Password); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, User: created}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrValidation
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, username)
		if err == nil && blocked {
			return nil, domain.ErrTooManyAttempts
		}
		// A throttle backend failure never locks users out.
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			_ = s.throttle.RecordFailure(ctx, username)
		}
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, username)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, User: user}, nil
}
