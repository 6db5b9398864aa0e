// Package storagetest holds behavior tests shared by every storage.Store backend.
package storagetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/storage"
)

// Run exercises a backend. newStore must return an empty, migrated store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Run("users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("user update", func(t *testing.T) { testUserUpdate(t, newStore(t)) })
	t.Run("bookmarks", func(t *testing.T) { testBookmarks(t, newStore(t)) })
	t.Run("bookmark ownership", func(t *testing.T) { testBookmarkOwnership(t, newStore(t)) })
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func str(s string) *string { return &s }

func mustCreateUser(t *testing.T, s storage.Store, email string) models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), models.User{Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	return u
}

func testUsers(t *testing.T, s storage.Store) {
	ctx := context.Background()
	email := uniqueEmail("user")

	created, err := s.CreateUser(ctx, models.User{Email: email, PasswordHash: "$argon2id$stub"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, email, created.Email)
	assert.Equal(t, "$argon2id$stub", created.PasswordHash)
	assert.Nil(t, created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = s.CreateUser(ctx, models.User{Email: email, PasswordHash: "other"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	byEmail, err := s.FindUserByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "$argon2id$stub", byEmail.PasswordHash)

	byID, err := s.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, email, byID.Email)

	_, err = s.FindUserByEmail(ctx, uniqueEmail("ghost"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.FindUserByID(ctx, created.ID+1_000_000)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testUserUpdate(t *testing.T, s storage.Store) {
	ctx := context.Background()
	a := mustCreateUser(t, s, uniqueEmail("a"))
	b := mustCreateUser(t, s, uniqueEmail("b"))

	newEmail := uniqueEmail("renamed")
	updated, err := s.UpdateUser(ctx, a.ID, models.UserPatch{Email: str(newEmail), Name: str("New name")})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "New name", *updated.Name)
	assert.Equal(t, a.PasswordHash, updated.PasswordHash)

	onlyName, err := s.UpdateUser(ctx, a.ID, models.UserPatch{Name: str("Other")})
	require.NoError(t, err)
	assert.Equal(t, newEmail, onlyName.Email)

	_, err = s.UpdateUser(ctx, a.ID, models.UserPatch{Email: str(b.Email)})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = s.UpdateUser(ctx, b.ID+1_000_000, models.UserPatch{Name: str("x")})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testBookmarks(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustCreateUser(t, s, uniqueEmail("owner"))

	list, err := s.ListBookmarks(ctx, owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first, err := s.CreateBookmark(ctx, models.Bookmark{UserID: owner.ID, Title: "First", Link: "https://example.com"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, owner.ID, first.UserID)
	assert.Nil(t, first.Description)

	second, err := s.CreateBookmark(ctx, models.Bookmark{UserID: owner.ID, Title: "Second", Link: "https://example.org", Description: str("desc")})
	require.NoError(t, err)
	require.NotNil(t, second.Description)
	assert.Equal(t, "desc", *second.Description)

	list, err = s.ListBookmarks(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	got, err := s.FindBookmark(ctx, owner.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	edited, err := s.UpdateBookmark(ctx, owner.ID, first.ID, models.BookmarkPatch{Title: str("New title"), Link: str("https://newlink.com")})
	require.NoError(t, err)
	assert.Equal(t, "New title", edited.Title)
	assert.Equal(t, "https://newlink.com", edited.Link)
	assert.Nil(t, edited.Description)

	require.NoError(t, s.DeleteBookmark(ctx, owner.ID, first.ID))
	_, err = s.FindBookmark(ctx, owner.ID, first.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.DeleteBookmark(ctx, owner.ID, first.ID), storage.ErrNotFound)
}

func testBookmarkOwnership(t *testing.T, s storage.Store) {
	ctx := context.Background()
	owner := mustCreateUser(t, s, uniqueEmail("owner"))
	intruder := mustCreateUser(t, s, uniqueEmail("intruder"))

	b, err := s.CreateBookmark(ctx, models.Bookmark{UserID: owner.ID, Title: "Mine", Link: "https://example.com"})
	require.NoError(t, err)

	_, err = s.FindBookmark(ctx, intruder.ID, b.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.UpdateBookmark(ctx, intruder.ID, b.ID, models.BookmarkPatch{Title: str("Stolen")})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, s.DeleteBookmark(ctx, intruder.ID, b.ID), storage.ErrNotFound)

	list, err := s.ListBookmarks(ctx, intruder.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	still, err := s.FindBookmark(ctx, owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", still.Title)
}
