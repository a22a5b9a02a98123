package stub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/plannery/plannery-go/internal/platform/config"
	"github.com/plannery/plannery-go/internal/platform/httpclient"
)

const defaultShutdownTimeout = 10 * time.Second

// NewRouter builds the stub's HTTP handler. When sessionToken is non-empty
// every /api request must carry it in X-Session-Token or gets a 401; an
// empty token disables the check. /healthz stays open either way.
func NewRouter(st *state, sessionToken string, logger *slog.Logger) http.Handler {
	h := &handlers{state: st, logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.healthz)

	r.Route("/api", func(r chi.Router) {
		if sessionToken != "" {
			r.Use(requireSession(sessionToken))
		}

		r.Get("/projects", h.listProjects)
		r.Post("/projects", h.createProject)
		r.Get("/projects/{id}", h.getProject)
		r.Put("/projects/{id}", h.updateProject)
		r.Delete("/projects/{id}", h.deleteProject)

		r.Get("/venues", h.listVenues)

		r.Get("/mission-templates", h.listTemplates)
		r.Post("/mission-templates", h.createTemplate)
		r.Put("/mission-templates/{id}", h.updateTemplate)
		r.Delete("/mission-templates/{id}", h.deleteTemplate)

		r.Get("/mission-tags", h.listTags)
	})

	return r
}

// requireSession rejects requests whose X-Session-Token header does not
// match the configured token, in the contract's error shape.
func requireSession(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(httpclient.SessionTokenHeader) != token {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "invalid session"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Server wraps http.Server with graceful shutdown for the stub backend.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// NewServer creates the stub server from config. State is seeded fresh; it
// lives for the life of the process.
func NewServer(cfg config.StubConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	st := newState(time.Now)
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      NewRouter(st, cfg.SessionToken, logger),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Start begins listening and serving. It blocks until the server stops and
// returns nil on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting stub backend", slog.String("addr", s.srv.Addr))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("stub server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline, applying
// a default timeout when ctx has none.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("shutting down stub backend")
	return s.srv.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}
