// Package users exposes the profile of the authenticated user.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/storage"
)

var (
	// ErrNotFound is returned when the caller's account no longer exists.
	ErrNotFound = errors.New("user not found")
	// ErrEmailAlreadyInUse is returned when changing to an email another user holds.
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

// Service reads and edits user profiles.
type Service struct {
	users storage.UserStore
}

// NewService constructs the users service.
func NewService(users storage.UserStore) *Service {
	return &Service{users: users}
}

// Me returns the profile of userID without its password hash.
func (s *Service) Me(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user %d: %w", userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}

// Update applies patch to userID's profile. An empty patch returns the
// profile unchanged.
func (s *Service) Update(ctx context.Context, userID int64, patch models.UserPatch) (models.User, error) {
	if patch.Empty() {
		return s.Me(ctx, userID)
	}

	user, err := s.users.UpdateUser(ctx, userID, patch)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		return models.User{}, ErrNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return models.User{}, ErrEmailAlreadyInUse
	default:
		return models.User{}, fmt.Errorf("update user %d: %w", userID, err)
	}
	user.PasswordHash = ""
	return user, nil
}
