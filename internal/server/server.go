// Package server exposes the assistant over HTTP: a /chat endpoint that runs
// one conversation turn per request, plus a health probe.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cyclone1070/compassgenie/internal/agent/models"
)

// TurnRunner runs one conversation turn. Satisfied by *agent.Agent.
type TurnRunner interface {
	RunTurn(ctx context.Context, req models.TurnRequest) (models.TurnResult, error)
}

// Config holds server configuration.
type Config struct {
	Addr string // listen address, e.g. ":8000"
}

// Server is the HTTP front end for the assistant.
type Server struct {
	config  Config
	runner  TurnRunner
	httpSrv *http.Server
	logger  *slog.Logger
}

// New creates a new Server with the given config.
func New(cfg Config, runner TurnRunner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config: cfg,
		runner: runner,
		logger: logger,
	}

	mux := http.NewServeMux()

	// Go 1.22+ method+pattern routing.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /chat", s.handleChat)

	s.httpSrv = &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // turns can take several tool round-trips
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler exposes the routing mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// ListenAndServe starts the server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		s.logger.Info("shutting down", "signal", sig.String())
		s.Shutdown()
	}()

	s.logger.Info("listening", "addr", s.config.Addr)
	s.httpSrv.Addr = s.config.Addr
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, draining in-flight turns.
func (s *Server) Shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = s.httpSrv.Shutdown(shutdownCtx)
}
