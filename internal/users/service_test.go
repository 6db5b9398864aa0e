package users

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

func setup(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewService(store), store
}

func TestMeStripsPasswordHash(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, models.User{Email: "a@x.com", PasswordHash: "$argon2id$secret"})
	require.NoError(t, err)

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
	assert.Equal(t, "a@x.com", me.Email)
	assert.Empty(t, me.PasswordHash)

	_, err = svc.Me(ctx, u.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, models.User{Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = store.CreateUser(ctx, models.User{Email: "taken@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, u.ID, models.UserPatch{Name: str("Ada")})
	require.NoError(t, err)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Ada", *updated.Name)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Empty(t, updated.PasswordHash)

	same, err := svc.Update(ctx, u.ID, models.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, updated.Name, same.Name)

	_, err = svc.Update(ctx, u.ID, models.UserPatch{Email: str("taken@x.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)

	_, err = svc.Update(ctx, u.ID+100, models.UserPatch{Name: str("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

type brokenStore struct{ storage.UserStore }

func (brokenStore) FindUserByID(context.Context, int64) (models.User, error) {
	return models.User{}, errors.New("db down")
}

func TestMeWrapsStoreFailures(t *testing.T) {
	_, err := NewService(brokenStore{}).Me(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "db down")
}
