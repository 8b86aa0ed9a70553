package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inboxassist/internal/domain/task"
	"inboxassist/internal/infrastructure/logger"
)

const shutdownTimeout = 5 * time.Second

// TaskLister is implemented by the task use case.
type TaskLister interface {
	ListOpen(ctx context.Context) ([]*task.Task, error)
}

// Briefer is implemented by the report service.
type Briefer interface {
	MorningBriefing(ctx context.Context) (string, error)
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin             *gin.Engine
	l               logger.Logger
	port            int
	mode            string
	rateLimitPerMin int

	tasks   TaskLister
	reports Briefer
}

// Config is the dependency bag passed to New(). Tasks and Reports are
// optional; their routes are skipped when nil.
type Config struct {
	Port            int
	Mode            string
	RateLimitPerMin int

	Tasks   TaskLister
	Reports Briefer
}

// New creates a new HTTPServer instance with all routes mapped.
func New(l logger.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               l,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		rateLimitPerMin: cfg.RateLimitPerMin,
		tasks:           cfg.Tasks,
		reports:         cfg.Reports,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}

// Run serves until ctx is done, then shuts down gracefully.
func (srv *HTTPServer) Run(ctx context.Context) error {
	hs := &http.Server{
		Addr:              fmt.Sprintf(":%d", srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "HTTP server listening on %s", hs.Addr)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	srv.l.Info(ctx, "HTTP server stopped")
	return nil
}
