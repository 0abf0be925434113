package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/meokisama/toolkit-core/internal/audit"
	"github.com/meokisama/toolkit-core/internal/infrastructure/config"
	"github.com/meokisama/toolkit-core/internal/infrastructure/logging"
	"github.com/meokisama/toolkit-core/internal/recon"
	"github.com/meokisama/toolkit-core/internal/store"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// ProjectSource provides the database side of a comparison. Implemented
// by store.Provider; abstracted for handler tests.
type ProjectSource interface {
	Units(ctx context.Context) ([]store.Unit, error)
	DomainTrees(ctx context.Context, unitID int64) (recon.DomainTrees, error)
}

// EventPublisher publishes completed comparison runs. Implemented by
// mqtt.Client; nil disables publishing.
type EventPublisher interface {
	PublishJSON(topic string, v any) error
	IsConnected() bool
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	Logger    *logging.Logger
	Project   ProjectSource
	Runs      audit.Repository
	Engine    *recon.Engine
	Publisher EventPublisher // optional
	Version   string
}

// Server is the toolkit's HTTP API server.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg       config.APIConfig
	logger    *logging.Logger
	project   ProjectSource
	runs      audit.Repository
	engine    *recon.Engine
	publisher EventPublisher
	version   string
	server    *http.Server
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Project == nil {
		return nil, fmt.Errorf("project source is required")
	}
	if deps.Runs == nil {
		return nil, fmt.Errorf("run repository is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("comparison engine is required")
	}
	// Publisher is optional — comparisons persist without a broker.

	return &Server{
		cfg:       deps.Config,
		logger:    deps.Logger,
		project:   deps.Project,
		runs:      deps.Runs,
		engine:    deps.Engine,
		publisher: deps.Publisher,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// The listener runs in a background goroutine; stop it with Close().
func (s *Server) Start(_ context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete, then
// forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
