package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hongminglow/bookmarks-be/internal/auth"
	"github.com/hongminglow/bookmarks-be/internal/bookmarks"
	"github.com/hongminglow/bookmarks-be/internal/config"
	"github.com/hongminglow/bookmarks-be/internal/http/handlers"
	"github.com/hongminglow/bookmarks-be/internal/http/respond"
	"github.com/hongminglow/bookmarks-be/internal/middleware"
	"github.com/hongminglow/bookmarks-be/internal/storage"
	"github.com/hongminglow/bookmarks-be/internal/users"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

type options struct {
	hasher auth.PasswordHasher
	clock  func() time.Time
}

// Option customizes the server wiring.
type Option func(*options)

// WithHasher replaces the default argon2id hasher.
func WithHasher(h auth.PasswordHasher) Option {
	return func(o *options) { o.hasher = h }
}

// WithClock replaces time.Now for token issuance and verification.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *zap.Logger, opts ...Option) *Server {
	o := options{
		hasher: auth.NewArgon2Hasher(auth.DefaultArgon2Params),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, auth.WithClock(o.clock))
	authn := middleware.NewAuthenticator(tokens)

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	handlers.NewHealthHandler(time.Now(), store).Register(router)
	handlers.NewAuthHandler(auth.NewService(store, o.hasher, tokens)).Register(router)
	handlers.NewUserHandler(users.NewService(store)).Register(router, authn)
	handlers.NewBookmarkHandler(bookmarks.NewService(store)).Register(router, authn)

	handler := middleware.Logging(logger)(middleware.CORS(cfg.CORSOrigins, router))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	return &Server{inner: httpServer}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
