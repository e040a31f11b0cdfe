package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog/log"

	"github.com/yieldward/yield-ward-service/internal/api/handlers"
	"github.com/yieldward/yield-ward-service/internal/api/middlewares"
	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/services"
)

type Server struct {
	httpServer *http.Server
	handlers   *handlers.Handler
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Server, error) {
	r := chi.NewRouter()

	r.Use(middlewares.CorsMiddleware(cfg))
	r.Use(middlewares.SecurityHeadersMiddleware())
	r.Use(middlewares.TracingMiddleware)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.ContentLengthMiddleware(cfg))

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddress(),
		WriteTimeout: cfg.Server.WriteTimeout,
		ReadTimeout:  cfg.Server.ReadTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      r,
	}

	h, err := handlers.New(ctx, cfg, services)
	if err != nil {
		return nil, fmt.Errorf("error while setting up handlers: %w", err)
	}

	server := &Server{
		httpServer: srv,
		handlers:   h,
	}
	server.SetupRoutes(r)
	return server, nil
}

// Handler exposes the routed handler chain, mainly for tests.
func (a *Server) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *Server) Start() error {
	log.Info().Msgf("Starting server on %s", a.httpServer.Addr)
	return a.httpServer.ListenAndServe()
}

func (a *Server) Shutdown(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}
