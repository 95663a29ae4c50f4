package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"max.ks1230/expense-tracker/internal/http/handlers"
	"max.ks1230/expense-tracker/internal/middleware"
	"max.ks1230/expense-tracker/internal/model/expenses"
	"max.ks1230/expense-tracker/internal/model/users"
)

type config interface {
	Addr() string
	Origins() []string
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires handlers, middleware and routes into a ready server.
func New(config config, userService *users.Service, expenseService *expenses.Service) *Server {
	mux := http.NewServeMux()

	handlers.NewUserHandler(userService).Register(mux)
	handlers.NewExpenseHandler(expenseService).Register(mux)
	handlers.NewHealthHandler(time.Now()).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.CORS(config.Origins(),
		middleware.Logging(middleware.Metrics(middleware.Tracing(mux))))

	return &Server{
		inner: &http.Server{
			Addr:              config.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
