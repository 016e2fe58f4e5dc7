package service

import (
	"context"
	"testing"

	"catalog-api-server/internal/domain"
	"catalog-api-server/internal/repository"
)

func TestUserService_Register(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "Password123!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Register() did not assign an id")
	}
	if user.IsAdmin {
		t.Error("Register() created an admin account")
	}
	if user.Password != "" {
		t.Error("Register() returned the password hash")
	}

	stored, err := repo.FindByUsername(ctx, "newuser")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if stored.Password == "" || stored.Password == "Password123!" {
		t.Error("stored password is not hashed")
	}
}

func TestUserService_RegisterDuplicateUsername(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	req := &domain.RegisterRequest{Username: "taken", Email: "a@example.com", Password: "Password123!"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "taken", Email: "b@example.com", Password: "Password456!",
	}); err == nil {
		t.Error("Register() expected error for duplicate username")
	}
}

func TestUserService_EnsureAdmin(t *testing.T) {
	repo := repository.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "AdminPass123!"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	admin, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if !admin.IsAdmin {
		t.Error("EnsureAdmin() did not set the admin role")
	}

	// Second run must leave the existing account untouched.
	if err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "DifferentPass456!"); err != nil {
		t.Fatalf("EnsureAdmin() second run error = %v", err)
	}

	again, err := repo.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if again.Password != admin.Password {
		t.Error("EnsureAdmin() replaced the existing admin account")
	}
}
