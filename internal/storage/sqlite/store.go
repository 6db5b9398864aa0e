// Package sqlite implements storage.Store over an embedded SQLite database.
// It backs local development and the HTTP end-to-end tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/storage"
	"github.com/hongminglow/bookmarks-be/internal/storage/sqlite/migrations"
)

var _ storage.Store = (*Store)(nil)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store provides SQLite-backed persistence for users and bookmarks.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens the database at path (":memory:" for a private in-memory
// database) and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// An in-memory database lives and dies with its single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, migrations.FS)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type userRow struct {
	ID           int64          `db:"id"`
	Email        string         `db:"email"`
	Name         sql.NullString `db:"name"`
	PasswordHash string         `db:"password_hash"`
	CreatedAt    int64          `db:"created_at"`
	UpdatedAt    int64          `db:"updated_at"`
}

func (r userRow) model() models.User {
	return models.User{
		ID:           r.ID,
		Email:        r.Email,
		Name:         fromNull(r.Name),
		PasswordHash: r.PasswordHash,
		CreatedAt:    fromMillis(r.CreatedAt),
		UpdatedAt:    fromMillis(r.UpdatedAt),
	}
}

type bookmarkRow struct {
	ID          int64          `db:"id"`
	UserID      int64          `db:"user_id"`
	Title       string         `db:"title"`
	Link        string         `db:"link"`
	Description sql.NullString `db:"description"`
	CreatedAt   int64          `db:"created_at"`
	UpdatedAt   int64          `db:"updated_at"`
}

func (r bookmarkRow) model() models.Bookmark {
	return models.Bookmark{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Link:        r.Link,
		Description: fromNull(r.Description),
		CreatedAt:   fromMillis(r.CreatedAt),
		UpdatedAt:   fromMillis(r.UpdatedAt),
	}
}

const userColumns = `id, email, name, password_hash, created_at, updated_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	now := toMillis(s.now())
	var row userRow
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO users (email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		user.Email, nullable(user.Name), user.PasswordHash, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return row.model(), nil
}

// FindUserByID fetches a user by primary key.
func (s *Store) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// FindUserByEmail fetches a user by email address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// UpdateUser applies the non-nil fields of patch.
func (s *Store) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	var row userRow
	err := s.db.GetContext(ctx, &row, `
		UPDATE users
		SET email = COALESCE(?, email),
			name = COALESCE(?, name),
			updated_at = ?
		WHERE id = ?
		RETURNING `+userColumns,
		nullable(patch.Email), nullable(patch.Name), toMillis(s.now()), id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, notFound(err)
	}
	return row.model(), nil
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (models.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row, query, arg); err != nil {
		return models.User{}, notFound(err)
	}
	return row.model(), nil
}

const bookmarkColumns = `id, user_id, title, link, description, created_at, updated_at`

// CreateBookmark inserts a bookmark for its owner.
func (s *Store) CreateBookmark(ctx context.Context, b models.Bookmark) (models.Bookmark, error) {
	now := toMillis(s.now())
	var row bookmarkRow
	err := s.db.GetContext(ctx, &row, `
		INSERT INTO bookmarks (user_id, title, link, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+bookmarkColumns,
		b.UserID, b.Title, b.Link, nullable(b.Description), now, now)
	if err != nil {
		return models.Bookmark{}, err
	}
	return row.model(), nil
}

// ListBookmarks returns every bookmark of userID, newest first.
func (s *Store) ListBookmarks(ctx context.Context, userID int64) ([]models.Bookmark, error) {
	var rows []bookmarkRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = ? ORDER BY id DESC`, userID); err != nil {
		return nil, err
	}
	out := make([]models.Bookmark, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.model())
	}
	return out, nil
}

// FindBookmark fetches one bookmark owned by userID.
func (s *Store) FindBookmark(ctx context.Context, userID, id int64) (models.Bookmark, error) {
	var row bookmarkRow
	if err := s.db.GetContext(ctx, &row, `SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return models.Bookmark{}, notFound(err)
	}
	return row.model(), nil
}

// UpdateBookmark applies the non-nil fields of patch to a bookmark owned by userID.
func (s *Store) UpdateBookmark(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error) {
	var row bookmarkRow
	err := s.db.GetContext(ctx, &row, `
		UPDATE bookmarks
		SET title = COALESCE(?, title),
			link = COALESCE(?, link),
			description = COALESCE(?, description),
			updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING `+bookmarkColumns,
		nullable(patch.Title), nullable(patch.Link), nullable(patch.Description), toMillis(s.now()), id, userID)
	if err != nil {
		return models.Bookmark{}, notFound(err)
	}
	return row.model(), nil
}

// DeleteBookmark removes a bookmark owned by userID.
func (s *Store) DeleteBookmark(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
