// Package rest exposes the portal services as a JSON HTTP API under /api.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/legalchicks/lcen-portal/internal/logging"
	"github.com/legalchicks/lcen-portal/internal/server/services"
)

// Options configure the HTTP listener.
type Options struct {
	Address           string
	CORSOrigins       []string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Services bundles the use cases the API serves. All of them share one
// user store.
type Services struct {
	Auth      *services.AuthService
	Profiles  *services.ProfileService
	Business  *services.BusinessService
	Analytics *services.AnalyticsService
	Codec     services.TokenCodec
}

type Server struct {
	opts   Options
	svc    Services
	logger logging.Logger
}

func NewServer(opts Options, svc Services, l logging.Logger) *Server {
	return &Server{
		opts:   opts,
		svc:    svc,
		logger: l.With("module", "http_server"),
	}
}

// Router builds the full handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestContext)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/verify", s.handleVerify)

		r.Group(func(r chi.Router) {
			r.Use(gate(s.svc.Codec))

			r.Get("/users/members", s.handleMembers)
			r.Get("/users/profile/{id}", s.handleGetProfile)
			r.Put("/users/profile/{id}", s.handleUpdateProfile)

			r.Get("/business/invoices", s.handleInvoices)
			r.Get("/business/expenses", s.handleExpenses)
			r.Post("/business/expenses", s.handleAddExpense)
			r.Get("/business/profitability", s.handleProfitability)

			r.Get("/analytics", s.handleAnalytics)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down within
// ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
