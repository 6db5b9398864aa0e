package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/bookmarks-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence operations.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
}

// BookmarkStore captures bookmark persistence. Every lookup is scoped to the
// owning user, so a bookmark of another user reports ErrNotFound.
type BookmarkStore interface {
	CreateBookmark(ctx context.Context, bookmark models.Bookmark) (models.Bookmark, error)
	ListBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error)
	FindBookmark(ctx context.Context, userID, id int64) (models.Bookmark, error)
	UpdateBookmark(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error)
	DeleteBookmark(ctx context.Context, userID, id int64) error
}

// Store is a complete backend used by the server.
type Store interface {
	UserStore
	BookmarkStore
	Ping(ctx context.Context) error
	Close() error
}
