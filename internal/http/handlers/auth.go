package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookmarks-be/internal/http/respond"
	"github.com/hongminglow/bookmarks-be/internal/models/dto"
)

type authService interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Signin(ctx context.Context, email, password string) (string, error)
}

// AuthHandler owns the signup and signin endpoints.
type AuthHandler struct {
	auth authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth authService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/auth/signup", h.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/signin", h.handleSignin).Methods(http.MethodPost)
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthRequest
	if !decode(w, r, &req) {
		return
	}
	token, err := h.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.TokenResponse{AccessToken: token})
}

func (h *AuthHandler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthRequest
	if !decode(w, r, &req) {
		return
	}
	token, err := h.auth.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}
