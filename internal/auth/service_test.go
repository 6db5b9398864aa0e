package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/storage"
	"github.com/hongminglow/bookmarks-be/internal/storage/sqlite"
)

type fakeUserStore struct {
	storage.UserStore
	createErr error
	findOut   models.User
	findErr   error
}

func (f *fakeUserStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUserStore) FindUserByEmail(context.Context, string) (models.User, error) {
	return f.findOut, f.findErr
}

type failingHasher struct{ PasswordHasher }

func (failingHasher) Hash(string) (string, error) { return "", errors.New("entropy exhausted") }

func newTestService(t *testing.T) (*Service, *sqlite.Store, *TokenManager) {
	t.Helper()
	store, err := sqlite.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tokens := NewTokenManager("secret", "test")
	return NewService(store, NewArgon2Hasher(testParams), tokens), store, tokens
}

func TestSignupIssuesTokenForNewUser(t *testing.T) {
	svc, store, tokens := newTestService(t)
	ctx := context.Background()

	tok, err := svc.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	id, err := tokens.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", id.Email)

	stored, err := store.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, id.UserID)
	assert.NotEqual(t, "pw123456", stored.PasswordHash)
	assert.Contains(t, stored.PasswordHash, "$argon2id$")
}

func TestSignupTwiceFails(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "a@x.com", "different")
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)

	// the first password still works
	_, err = svc.Signin(ctx, "a@x.com", "pw123456")
	assert.NoError(t, err)

	u, err := store.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}

func TestConcurrentSignupsHaveOneWinner(t *testing.T) {
	svc, _, _ := newTestService(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Signup(context.Background(), "race@x.com", "pw")
		}()
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrEmailAlreadyInUse):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestSignupSurfacesStoreFailures(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&fakeUserStore{createErr: boom}, NewArgon2Hasher(testParams), NewTokenManager("k", "i"))

	tok, err := svc.Signup(context.Background(), "a@x.com", "pw")
	assert.Empty(t, tok)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestSignupSurfacesHashFailures(t *testing.T) {
	svc := NewService(&fakeUserStore{}, failingHasher{}, NewTokenManager("k", "i"))

	_, err := svc.Signup(context.Background(), "a@x.com", "pw")
	assert.ErrorContains(t, err, "hash password")
}

func TestSigninReturnsTokenForStoredUser(t *testing.T) {
	svc, store, tokens := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	tok, err := svc.Signin(ctx, " a@x.com ", "pw123456")
	require.NoError(t, err)

	id, err := tokens.Verify(tok)
	require.NoError(t, err)

	stored, err := store.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: stored.ID, Email: stored.Email}, id)
}

func TestSigninFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "pw123456")
	require.NoError(t, err)

	_, unknown := svc.Signin(ctx, "notauser@example.com", "pw123456")
	_, wrong := svc.Signin(ctx, "a@x.com", "incorrectpassword")

	require.ErrorIs(t, unknown, ErrInvalidCredentials)
	require.ErrorIs(t, wrong, ErrInvalidCredentials)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestSigninSurfacesInternalErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&fakeUserStore{findErr: boom}, NewArgon2Hasher(testParams), NewTokenManager("k", "i"))
	_, err := svc.Signin(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)

	corrupt := NewService(&fakeUserStore{findOut: models.User{ID: 3, Email: "a@x.com", PasswordHash: "corrupt"}}, NewArgon2Hasher(testParams), NewTokenManager("k", "i"))
	_, err = corrupt.Signin(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, ErrMalformedHash)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}
