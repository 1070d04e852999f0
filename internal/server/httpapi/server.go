// Package httpapi exposes the service layer over JSON/HTTP: the two
// credential endpoints, the verification probe, and the comment routes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/commently/commently/internal/logging"
	"github.com/commently/commently/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	httpServer *http.Server
	router     chi.Router
	logger     logging.Logger
	users      *services.UserService
	comments   *services.CommentService
	jwtSecret  []byte
	corsOrigin string
}

func NewServer(addr string, l logging.Logger, us *services.UserService, cs *services.CommentService, secretKey, corsOrigin string) *Server {
	s := &Server{
		logger:     l.With("module", "httpapi"),
		users:      us,
		comments:   cs,
		jwtSecret:  []byte(secretKey),
		corsOrigin: corsOrigin,
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. On cancellation the server is drained gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
