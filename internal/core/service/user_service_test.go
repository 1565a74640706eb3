package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fwedwicc/rebyuwer-app/internal/core/domain"
)

func TestUserService_Me_ExcludesPassword(t *testing.T) {
	repo := newStubAuthRepo()
	auth := newAuthService(repo, nil)
	svc := NewUserService(repo)

	registered, err := auth.Register(context.Background(), validRegister("alice"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Me(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected username: %s", user.Username)
	}
	if user.PasswordHash != "" {
		t.Fatalf("expected password hash to be excluded")
	}
}

func TestUserService_Me_NotFound(t *testing.T) {
	svc := NewUserService(newStubAuthRepo())

	if _, err := svc.Me(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	repo := newStubAuthRepo()
	auth := newAuthService(repo, nil)
	svc := NewUserService(repo)

	for _, name := range []string{"alice", "bob"} {
		if _, err := auth.Register(context.Background(), validRegister(name)); err != nil {
			t.Fatalf("register %s failed: %v", name, err)
		}
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Fatalf("expected password hashes to be excluded")
		}
	}
}
