package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anpep/rzchroma/internal/logging"
)

// shutdownTimeout bounds graceful shutdown before in-flight requests are
// dropped.
const shutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Addr     string
	LogLevel string
}

// Server serves the device control API over HTTP.
type Server struct {
	config   *Config
	registry *Registry
	httpSrv  *http.Server
}

// New creates a new Server instance serving the given registry.
func New(config *Config, registry *Registry) (*Server, error) {
	if err := logging.Initialize(config.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return &Server{
		config:   config,
		registry: registry,
		httpSrv: &http.Server{
			Addr:    config.Addr,
			Handler: NewHandler(registry),
		},
	}, nil
}

// Registry returns the registry the server routes writes through.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Run starts the server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {
	logging.Info("Starting device control server",
		zap.String("addr", s.config.Addr),
		zap.String("log_level", s.config.LogLevel),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listener failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		s.announce(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logging.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
			_ = s.httpSrv.Close()
		}
		logging.Sync()
		return nil
	})

	return g.Wait()
}
