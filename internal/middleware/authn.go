package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/hongminglow/bookmarks-be/internal/auth"
	"github.com/hongminglow/bookmarks-be/internal/http/respond"
	"github.com/hongminglow/bookmarks-be/internal/logging"
)

// IdentityHandlerFunc is a handler that runs only for authenticated callers.
type IdentityHandlerFunc func(w http.ResponseWriter, r *http.Request, id auth.Identity)

type tokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticator resolves bearer tokens into identities.
type Authenticator struct {
	tokens tokenVerifier
}

// NewAuthenticator creates an Authenticator backed by tokens.
func NewAuthenticator(tokens tokenVerifier) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Require rejects requests without a valid bearer token with 401 and hands
// the verified identity to next otherwise.
func (a *Authenticator) Require(next IdentityHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := a.tokens.Verify(token)
		if err != nil {
			logging.FromContext(r.Context()).Debug("rejected bearer token", zap.Error(err))
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next(w, r, id)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
