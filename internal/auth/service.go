package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/storage"
)

var (
	// ErrEmailAlreadyInUse is returned by Signup when the email is taken.
	ErrEmailAlreadyInUse = errors.New("email already in use")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service signs users up and in, handing out access tokens.
type Service struct {
	users  storage.UserStore
	hasher PasswordHasher
	tokens *TokenManager
}

// NewService constructs the auth service.
func NewService(users storage.UserStore, hasher PasswordHasher, tokens *TokenManager) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens}
}

// Signup creates a user with a hashed password and returns an access token.
// A second signup with the same email fails with ErrEmailAlreadyInUse; the
// store's unique index decides which of two concurrent signups wins.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
	})
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrAlreadyExists):
		return "", ErrEmailAlreadyInUse
	default:
		return "", fmt.Errorf("create user: %w", err)
	}

	user.PasswordHash = ""
	return s.issue(user)
}

// Signin checks the password of the user registered under email and returns
// an access token.
func (s *Service) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindUserByEmail(ctx, strings.TrimSpace(email))
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return "", ErrInvalidCredentials
	default:
		return "", fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(user.PasswordHash, password)
	if err != nil {
		return "", fmt.Errorf("verify password for user %d: %w", user.ID, err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return s.issue(user)
}

func (s *Service) issue(user models.User) (string, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
