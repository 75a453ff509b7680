// Package http owns the HTTP server lifecycle: startup, and graceful
// shutdown when the process receives a termination signal.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// Server wraps an echo instance with graceful lifecycle management.
type Server struct {
	echo *echo.Echo
	addr string
	log  zerolog.Logger
}

// NewServer prepares a server listening on addr.
func NewServer(e *echo.Echo, addr string, log zerolog.Logger) *Server {
	return &Server{echo: e, addr: addr, log: log}
}

// Run starts the server and blocks until ctx is cancelled, then drains
// in-flight requests for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("http server listening")
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
