package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookmarks-be/internal/auth"
	"github.com/hongminglow/bookmarks-be/internal/http/respond"
	"github.com/hongminglow/bookmarks-be/internal/middleware"
	"github.com/hongminglow/bookmarks-be/internal/models"
	"github.com/hongminglow/bookmarks-be/internal/models/dto"
)

type userService interface {
	Me(ctx context.Context, userID int64) (models.User, error)
	Update(ctx context.Context, userID int64, patch models.UserPatch) (models.User, error)
}

// UserHandler serves the profile of the authenticated user.
type UserHandler struct {
	users userService
}

func NewUserHandler(users userService) *UserHandler {
	return &UserHandler{users: users}
}

// Register attaches user routes to the router behind authn.
func (h *UserHandler) Register(r *mux.Router, authn *middleware.Authenticator) {
	r.Handle("/users/me", authn.Require(h.handleMe)).Methods(http.MethodGet)
	r.Handle("/users", authn.Require(h.handleEdit)).Methods(http.MethodPatch)
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	user, err := h.users.Me(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleEdit(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req dto.EditUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.users.Update(r.Context(), id.UserID, req.Patch())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}
