package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saviladev/PhishingDetector/internal/logger"
)

// Server represents an HTTP server with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logger.Logger
	config *Config
}

// NewServer creates a new HTTP server. The setupRoutes function is called
// to configure service-specific routes after standard middleware has been
// applied.
func NewServer(cfg *Config, log logger.Logger, setupRoutes func(*gin.Engine)) *Server {
	cfg.SetDefaults()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Recovery first to catch panics from everything below.
	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.CORS))

	if setupRoutes != nil {
		setupRoutes(router)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		router: router,
		server: httpServer,
		logger: log,
		config: cfg,
	}
}

// Router returns the underlying Gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown or error.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		logger.String("address", s.server.Addr),
		logger.String("service", s.config.ServiceName),
		logger.String("version", s.config.ServiceVersion),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// StartAsync starts the HTTP server in a goroutine and returns a channel
// that will receive any server error.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

// Shutdown gracefully shuts down the server with the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server",
		logger.Duration("timeout", s.config.ShutdownTimeout),
	)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// ShutdownWithTimeout gracefully shuts down the server with a custom timeout.
func (s *Server) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}

// RunWithGracefulShutdown starts the server and shuts down gracefully on
// SIGINT, SIGTERM, or context cancellation.
func (s *Server) RunWithGracefulShutdown(ctx context.Context) error {
	errCh := s.StartAsync()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Info("Shutdown signal received",
			logger.String("signal", sig.String()),
		)
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	}

	// Fresh context: the original may already be cancelled.
	return s.Shutdown(context.Background())
}

// Run starts the server with graceful shutdown handling.
func (s *Server) Run() error {
	return s.RunWithGracefulShutdown(context.Background())
}
