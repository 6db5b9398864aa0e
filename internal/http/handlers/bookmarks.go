package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookmarks-be/internal/auth"
	"github.com/hongminglow/bookmarks-be/internal/http/respond"
	"github.com/hongminglow/bookmarks-be/internal/middleware"
	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/models/dto"
)

type bookmarkService interface {
	List(ctx context.Context, userID int64) ([]models.Bookmark, error)
	Create(ctx context.Context, userID int64, b models.Bookmark) (models.Bookmark, error)
	Get(ctx context.Context, userID, id int64) (models.Bookmark, error)
	Edit(ctx context.Context, userID, id int64, patch models.BookmarkPatch) (models.Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
}

// BookmarkHandler exposes CRUD over the caller's bookmarks.
type BookmarkHandler struct {
	bookmarks bookmarkService
}

func NewBookmarkHandler(bookmarks bookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

// Register attaches bookmark routes to the router behind authn.
func (h *BookmarkHandler) Register(r *mux.Router, authn *middleware.Authenticator) {
	r.Handle("/bookmarks", authn.Require(h.handleList)).Methods(http.MethodGet)
	r.Handle("/bookmarks", authn.Require(h.handleCreate)).Methods(http.MethodPost)
	r.Handle("/bookmarks/{id}", authn.Require(h.handleGet)).Methods(http.MethodGet)
	r.Handle("/bookmarks/{id}", authn.Require(h.handleEdit)).Methods(http.MethodPatch)
	r.Handle("/bookmarks/{id}", authn.Require(h.handleDelete)).Methods(http.MethodDelete)
}

func (h *BookmarkHandler) handleList(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	list, err := h.bookmarks.List(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *BookmarkHandler) handleCreate(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req dto.CreateBookmarkRequest
	if !decode(w, r, &req) {
		return
	}
	created, err := h.bookmarks.Create(r.Context(), id.UserID, req.Bookmark(id.UserID))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *BookmarkHandler) handleGet(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	bookmarkID, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.bookmarks.Get(r.Context(), id.UserID, bookmarkID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *BookmarkHandler) handleEdit(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	bookmarkID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.EditBookmarkRequest
	if !decode(w, r, &req) {
		return
	}
	b, err := h.bookmarks.Edit(r.Context(), id.UserID, bookmarkID, req.Patch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, b)
}

func (h *BookmarkHandler) handleDelete(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	bookmarkID, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.bookmarks.Delete(r.Context(), id.UserID, bookmarkID); err != nil {
		writeError(w, r, err)
		return
	}
	respond.NoContent(w, http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}
