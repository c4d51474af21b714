// Package httpapi exposes the promise tracker HTTP/JSON API.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/m-ovsyannikov/promisetrack/internal/errs"
	"github.com/m-ovsyannikov/promisetrack/internal/service"
)

var errUnauthorizedHeader = fmt.Errorf("%w: authorization required", errs.ErrUnauthorized)

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	promises service.PromiseService
	feed     service.FeedService
}

// New constructs an HTTP server with injected services.
func New(auth service.AuthService, promises service.PromiseService, feed service.FeedService) *Server {
	return &Server{auth: auth, promises: promises, feed: feed}
}

// Router builds the chi router with middleware and all routes.
func (s *Server) Router(log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(Recover(log))
	r.Use(Logging(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})

	r.Get("/health", s.handleHealth)
	r.Post("/api/auth", s.handleLogin)
	r.Get("/api/feed", s.handleFeed)

	r.Route("/api/promises", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleListPromises)
		r.Post("/", s.handleCreatePromise)
		r.Put("/", s.handleUpdatePromise)
	})

	return r
}
