// Package bookmarks manages the bookmarks owned by authenticated users.
package bookmarks

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/storage"
)

var (
	// ErrNotFound is returned by Get for a bookmark the caller cannot see.
	ErrNotFound = errors.New("bookmark not found")
	// ErrAccessDenied is returned by Edit and Delete when the bookmark is
	// missing or owned by someone else.
	ErrAccessDenied = errors.New("access to resource denied")
)

// Service implements bookmark CRUD scoped to a single owner.
type Service struct {
	store storage.BookmarkStore
}

// NewService constructs the bookmarks service.
func NewService(store storage.BookmarkStore) *Service {
	return &Service{store: store}
}

// List returns the bookmarks of userID, newest first. It never returns nil.
func (s *Service) List(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	list, err := s.store.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks of user %d: %w", userID, err)
	}
	if list == nil {
		list = []models.Bookmark{}
	}
	return list, nil
}

// Create stores b for userID, ignoring any owner already set on b.
func (s *Service) Create(ctx context.Context, userID int64, b models.Bookmark) (models.Bookmark, error) {
	b.ID = 0
	b.UserID = userID
	created, err := s.store.CreateBookmark(ctx, b)
	if err != nil {
		return models.Bookmark{}, fmt.Errorf("create bookmark: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (models.Bookmark, error) {
	b, err := s.store.FindBookmark(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Bookmark{}, ErrNotFound
		}
		return models.Bookmark{}, fmt.Errorf("find bookmark %d: %w", id, err)
	}
	return b, nil
}

// Edit applies patch to a bookmark of userID. An empty patch returns the
// bookmark unchanged.
func (s *Service) Edit(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error) {
	var (
		b   models.Bookmark
		err error
	)
	if patch.Empty() {
		b, err = s.store.FindBookmark(ctx, userID, id)
	} else {
		b, err = s.store.UpdateBookmark(ctx, userID, id, patch)
	}
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Bookmark{}, ErrAccessDenied
		}
		return models.Bookmark{}, fmt.Errorf("edit bookmark %d: %w", id, err)
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.store.DeleteBookmark(ctx, userID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("delete bookmark %d: %w", id, err)
	}
	return nil
}
