// Package web serves repositories over a read-only JSON API.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/masmgr/gecko-go/config"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server configuration and dependencies.
type Server struct {
	addr      string
	reposRoot string
	cfg       *config.Config
	pool      *Pool
	log       logrus.FieldLogger
	now       func() time.Time
	handler   http.Handler
}

// NewServer creates an HTTP server with routes and middleware.
func NewServer(cfg *config.Config, log logrus.FieldLogger) *Server {
	s := &Server{
		addr:      cfg.Server.Addr,
		reposRoot: cfg.Server.ReposRoot,
		cfg:       cfg,
		pool:      NewPool(cfg.Server.Workers),
		log:       log,
		now:       time.Now,
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/{repo}", func(r chi.Router) {
		r.Get("/", s.handleIndex)
		r.Get("/branches", s.handleBranches)
		r.Get("/tree/{ref}", s.handleTree)
		r.Get("/tree/{ref}/*", s.handleTree)
		r.Get("/blob/{ref}/*", s.handleBlob)
		r.Get("/commits", s.handleCommits)
		r.Get("/commits/{ref}", s.handleCommits)
		r.Get("/commit/{id}", s.handleCommit)
	})

	return r
}

// Run starts the HTTP server and blocks until ctx ends or the server fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(logrus.Fields{"addr": s.addr, "repos": s.reposRoot}).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
