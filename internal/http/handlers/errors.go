package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/bookmarks-be/internal/auth"
	"github.com/hongminglow/bookmarks-be/internal/bookmarks"
	"github.com/hongminglow/bookmarks-be/internal/http/respond"
	"github.com/hongminglow/bookmarks-be/internal/logging"
	"github.com/hongminglow/bookmarks-be/internal/models/dto"
	"github.com/hongminglow/bookmarks-be/internal/users"
)

const maxBodyBytes = 1 << 20

type validatable interface {
	Validate() error
}

// decode reads a JSON body into dst and validates it. On failure the
// response has already been written.
func decode(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respond.Error(w, http.StatusBadRequest, "request body is required")
			return false
		}
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	if err := dst.Validate(); err != nil {
		var verr *dto.ValidationError
		if errors.As(err, &verr) {
			respond.Validation(w, verr)
			return false
		}
		respond.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// writeError maps service errors to responses. Anything unrecognised is
// logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailAlreadyInUse), errors.Is(err, users.ErrEmailAlreadyInUse):
		respond.Error(w, http.StatusForbidden, "email already in use")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respond.Error(w, http.StatusForbidden, "invalid credentials")
	case errors.Is(err, bookmarks.ErrAccessDenied):
		respond.Error(w, http.StatusForbidden, "access to resource denied")
	case errors.Is(err, bookmarks.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "bookmark not found")
	case errors.Is(err, users.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "user not found")
	default:
		logging.FromContext(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
