package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter - wires all routes onto a chi router.
func NewRouter(h *Handlers) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", h.Ping)

	router.Route("/frame", func(r chi.Router) {
		r.Get("/", h.GetFrame)
		r.Post("/", h.PostFrame)
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/session", h.CreateSession)
		r.Get("/stats/{fid}", h.GetStats)
		r.Get("/me/stats", h.GetOwnStats)
	})

	return router
}

// Start - runs the HTTP server until the context is canceled.
func Start(ctx context.Context, port string, h *Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}

		return nil
	}
}
