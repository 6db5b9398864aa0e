package bookmarks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/storage"
	"github.com/hongminglow/bookmarks-be/internal/storage/sqlite"
)

func str(s string) *string { return &s }

type fixture struct {
	svc        *Service
	alice, bob models.User
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	alice, err := store.CreateUser(ctx, models.User{Email: "alice@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	bob, err := store.CreateUser(ctx, models.User{Email: "bob@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	return fixture{svc: NewService(store), alice: alice, bob: bob}
}

func TestListStartsEmpty(t *testing.T) {
	f := setup(t)

	list, err := f.svc.List(context.Background(), f.alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCreateAndList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, f.alice.ID, models.Bookmark{Title: "one", Link: "https://one.example"})
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, f.alice.ID, models.Bookmark{UserID: f.bob.ID, Title: "two", Link: "https://two.example", Description: str("d")})
	require.NoError(t, err)

	assert.Equal(t, f.alice.ID, second.UserID, "owner comes from the caller")
	require.NotNil(t, second.Description)
	assert.Equal(t, "d", *second.Description)

	list, err := f.svc.List(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	others, err := f.svc.List(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestGet(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.alice.ID, models.Bookmark{Title: "t", Link: "l"})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, f.alice.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title)

	_, err = f.svc.Get(ctx, f.bob.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Get(ctx, f.alice.ID, b.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEdit(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.alice.ID, models.Bookmark{Title: "t", Link: "https://old.example"})
	require.NoError(t, err)

	edited, err := f.svc.Edit(ctx, f.alice.ID, b.ID, models.BookmarkPatch{Link: str("https://new.example")})
	require.NoError(t, err)
	assert.Equal(t, "https://new.example", edited.Link)
	assert.Equal(t, "t", edited.Title)

	unchanged, err := f.svc.Edit(ctx, f.alice.ID, b.ID, models.BookmarkPatch{})
	require.NoError(t, err)
	assert.Equal(t, edited.Link, unchanged.Link)

	_, err = f.svc.Edit(ctx, f.bob.ID, b.ID, models.BookmarkPatch{Title: str("stolen")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Edit(ctx, f.bob.ID, b.ID, models.BookmarkPatch{})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.Edit(ctx, f.alice.ID, b.ID+100, models.BookmarkPatch{Title: str("x")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	got, err := f.svc.Get(ctx, f.alice.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, f.alice.ID, models.Bookmark{Title: "t", Link: "l"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, f.bob.ID, b.ID), ErrAccessDenied)
	require.NoError(t, f.svc.Delete(ctx, f.alice.ID, b.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, f.alice.ID, b.ID), ErrAccessDenied)

	list, err := f.svc.List(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

type nilListStore struct{ storage.BookmarkStore }

func (nilListStore) ListBookmarks(context.Context, int64) ([]models.Bookmark, error) {
	return nil, nil
}

func (nilListStore) DeleteBookmark(context.Context, int64, int64) error {
	return errors.New("disk full")
}

func TestListNeverReturnsNil(t *testing.T) {
	list, err := NewService(nilListStore{}).List(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestDeleteWrapsStoreFailures(t *testing.T) {
	err := NewService(nilListStore{}).Delete(context.Background(), 1, 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAccessDenied)
}
