package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// NewRouter - registers the REST routes of the game API.
func NewRouter(handlers Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", handlers.PingHandler)

	mux.HandleFunc("POST /players", handlers.CreatePlayer)
	mux.HandleFunc("POST /games", handlers.CreateGame)
	mux.HandleFunc("GET /games/{id}", handlers.GetGame)
	mux.HandleFunc("POST /games/{id}/join", handlers.JoinGame)
	mux.HandleFunc("GET /games/{id}/actions", handlers.GetActions)
	mux.HandleFunc("POST /games/{id}/turn", handlers.MakeTurn)

	return mux
}

// Start - serves the REST API on port until ctx is canceled.
func Start(ctx context.Context, port string, handlers Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
