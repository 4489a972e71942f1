//go:build unit

package service

import (
	"context"
	"errors"
	"go-feedback-app/internal/data"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAccountService_Register_HashesPassword(t *testing.T) {
	var created *data.User
	users := &mockUserRepo{
		createUser: func(_ context.Context, u *data.User) error {
			u.ID = 1
			u.IsAdmin = true
			created = u
			return nil
		},
	}
	svc := NewAccountService(users)

	user, err := svc.Register(context.Background(), "First", "first@example.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsAdmin {
		t.Error("expected the repository's admin decision to pass through")
	}
	if created.PasswordHash == nil {
		t.Fatal("expected a password hash")
	}
	if *created.PasswordHash == "hunter22" {
		t.Error("expected the password to be hashed, not stored verbatim")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("expected hash to verify against the password: %v", err)
	}
}

func TestAccountService_Register_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		createUser: func(_ context.Context, u *data.User) error { return data.ErrEmailTaken },
	}
	svc := NewAccountService(users)

	if _, err := svc.Register(context.Background(), "Dupe", "taken@example.com", "hunter22"); !errors.Is(err, data.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	hashStr := string(hash)

	users := &mockUserRepo{
		getUserByEmail: func(_ context.Context, email string) (*data.User, error) {
			if email != "user@example.com" {
				return nil, data.ErrNotFound
			}
			return &data.User{ID: 1, Email: email, PasswordHash: &hashStr}, nil
		},
	}
	svc := NewAccountService(users)

	if _, err := svc.Authenticate(context.Background(), "user@example.com", "hunter22"); err != nil {
		t.Errorf("expected successful login: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "user@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for a bad password, got %v", err)
	}
	// An unknown email looks exactly like a bad password.
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for an unknown email, got %v", err)
	}
}

func TestAccountService_Authenticate_ProviderOnlyAccount(t *testing.T) {
	users := &mockUserRepo{
		getUserByEmail: func(_ context.Context, email string) (*data.User, error) {
			return &data.User{ID: 1, Email: email}, nil
		},
	}
	svc := NewAccountService(users)

	if _, err := svc.Authenticate(context.Background(), "external@example.com", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for a passwordless account, got %v", err)
	}
}

func TestAccountService_ProviderLogin_NewAccount(t *testing.T) {
	var created *data.User
	users := &mockUserRepo{
		getUserByProvider: func(_ context.Context, providerName, providerID string) (*data.User, error) {
			return nil, data.ErrNotFound
		},
		createUser: func(_ context.Context, u *data.User) error {
			u.ID = 1
			created = u
			return nil
		},
	}
	svc := NewAccountService(users)

	avatar := "https://example.com/a.png"
	user, err := svc.ProviderLogin(context.Background(), "oidc", "sub-1", "External", "external@example.com", &avatar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("expected created account, got id %d", user.ID)
	}
	if created.ProviderName == nil || *created.ProviderName != "oidc" {
		t.Errorf("expected provider linkage, got %v", created.ProviderName)
	}
	if created.PasswordHash != nil {
		t.Error("expected no password on a provider account")
	}
}

func TestAccountService_ProviderLogin_RefreshesExisting(t *testing.T) {
	var updated *data.User
	users := &mockUserRepo{
		getUserByProvider: func(_ context.Context, providerName, providerID string) (*data.User, error) {
			return &data.User{ID: 1, Name: "Old Name", Email: "old@example.com"}, nil
		},
		updateProfile: func(_ context.Context, u *data.User) error {
			updated = u
			return nil
		},
	}
	svc := NewAccountService(users)

	user, err := svc.ProviderLogin(context.Background(), "oidc", "sub-1", "New Name", "new@example.com", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "New Name" || user.Email != "new@example.com" {
		t.Errorf("expected refreshed profile, got %s/%s", user.Name, user.Email)
	}
	if updated == nil {
		t.Fatal("expected UpdateProfile to be called")
	}
}
