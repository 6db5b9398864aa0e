package dto

import (
	"strings"

	"github.com/hongminglow/bookmarks-be/internal/models"
)

// CreateBookmarkRequest is the body of POST /bookmarks.
type CreateBookmarkRequest struct {
	Title       string  `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

// Validate requires a title and a link field.
func (r CreateBookmarkRequest) Validate() error {
	var v validator
	v.notEmpty("title", r.Title)
	if r.Link == nil {
		v.fail("link", "must be a string")
	}
	return v.err()
}

// Bookmark converts the request into a bookmark owned by userID.
func (r CreateBookmarkRequest) Bookmark(userID int64) models.Bookmark {
	b := models.Bookmark{
		UserID:      userID,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
	}
	if r.Link != nil {
		b.Link = strings.TrimSpace(*r.Link)
	}
	return b
}

// EditBookmarkRequest is the body of PATCH /bookmarks/{id}.
type EditBookmarkRequest struct {
	Title       *string `json:"title"`
	Link        *string `json:"link"`
	Description *string `json:"description"`
}

// Validate rejects an explicitly blank title.
func (r EditBookmarkRequest) Validate() error {
	var v validator
	if r.Title != nil {
		v.notEmpty("title", *r.Title)
	}
	return v.err()
}

// Patch converts the request into a store patch.
func (r EditBookmarkRequest) Patch() models.BookmarkPatch {
	return models.BookmarkPatch{
		Title:       trimmed(r.Title),
		Link:        trimmed(r.Link),
		Description: r.Description,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	out := strings.TrimSpace(*s)
	return &out
}
