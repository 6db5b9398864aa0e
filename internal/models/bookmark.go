package models

import "time"

// Bookmark is a saved link owned by exactly one user.
type Bookmark struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookmarkPatch lists bookmark fields to change. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	Link        *string
	Description *string
}

// Empty reports whether the patch changes nothing.
func (p BookmarkPatch) Empty() bool {
	return p.Title == nil && p.Link == nil && p.Description == nil
}
