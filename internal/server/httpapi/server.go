// Package httpapi exposes the account operations over HTTP: registration,
// login, and a health probe.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/authd/internal/logging"
	"github.com/dmitrijs2005/authd/internal/server/models"
	"github.com/dmitrijs2005/authd/internal/server/services"
)

// AccountService is the part of the user service the transport needs.
type AccountService interface {
	Register(ctx context.Context, email, password, name, userName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   AccountService
}

func NewHTTPServer(a string, l logging.Logger, us AccountService) *HTTPServer {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
	}
}

// Router builds the route table. Separated from Run so handler tests can
// exercise it with httptest.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)

	r.Post("/register", s.registerHandler)
	r.Post("/login", s.loginHandler)
	r.Get("/ping", s.pingHandler)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
