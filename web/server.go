package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// ReadHeaderTimeout is the default timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server runs a Dispatcher behind one HTTP listener.
type Server struct {
	name       string
	config     Config
	dispatcher *Dispatcher
	server     *http.Server
	listener   net.Listener
	onServeErr func()
}

// NewServer sets config defaults, validates the config and builds the Dispatcher
// over the primary and fallback handlers.
// The onServeErr callback, if non-nil, is called when the background Serve goroutine fails.
func NewServer(name string, primary, fallback http.Handler, cfg Config, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	dispatcher, err := NewDispatcher(primary, fallback, cfg.URLMappings, cfg.ServletRelative)
	if err != nil {
		return nil, err
	}

	return &Server{
		name:       name,
		config:     cfg,
		dispatcher: dispatcher,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           dispatcher,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		listener:   nil,
		onServeErr: onServeErr,
	}, nil
}

// Dispatcher returns the front controller serving requests.
func (s *Server) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Start listens on TCP and serves requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		slog.Error("failed to listen", "name", s.name, "address", s.server.Addr, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener

	slog.Info("starting front controller",
		"name", s.name,
		"address", listener.Addr().String(),
		"url_mappings", s.config.URLMappings,
		"servlet_relative", s.config.ServletRelative,
	)

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("front controller error", "name", s.name, "error", serveErr)

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping front controller", "name", s.name)

	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutdown failed", "name", s.name, "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
