package service

import (
	"context"
	"errors"
	"go-feedback-app/internal/data"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when an email/password pair does not
// match an account.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AccountService provides registration and login. The first account created
// through either path becomes the administrator; the flag is assigned inside
// the account insert and never reassigned afterwards.
type AccountService struct {
	users UserRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(users UserRepository) *AccountService {
	return &AccountService{users: users}
}

// Register creates a password account. Returns data.ErrEmailTaken when the
// email is already registered.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*data.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &data.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hashStr,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks an email/password pair.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*data.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		// Provider-linked account with no password set.
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ProviderLogin upserts an account from an external identity provider. An
// existing linkage refreshes the profile; a new one creates the account (and
// may therefore mint the one-and-only admin if it is the first ever).
func (s *AccountService) ProviderLogin(ctx context.Context, providerName, providerID, name, email string, avatar *string) (*data.User, error) {
	user, err := s.users.GetUserByProvider(ctx, providerName, providerID)
	if err == nil {
		user.Name = name
		user.Email = email
		user.Avatar = avatar
		if err := s.users.UpdateProfile(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !errors.Is(err, data.ErrNotFound) {
		return nil, err
	}

	user = &data.User{
		Name:         name,
		Email:        email,
		Avatar:       avatar,
		ProviderName: &providerName,
		ProviderID:   &providerID,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser loads an account by id.
func (s *AccountService) GetUser(ctx context.Context, id int64) (*data.User, error) {
	return s.users.GetUserByID(ctx, id)
}
