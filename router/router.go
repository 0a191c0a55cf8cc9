// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/pokedex/cliparse"
	"github.com/danielhkuo/pokedex/handlers"
	"github.com/danielhkuo/pokedex/middleware"
	"github.com/danielhkuo/pokedex/store"
)

// healthTimeout bounds the store ping behind GET /health.
const healthTimeout = 2 * time.Second

// NewRouter registers every endpoint. metrics is mounted at /metrics when
// non-nil.
func NewRouter(st store.Store, cfg cliparse.Config, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pokemonHandler := handlers.NewPokemonHandler(st, cfg)
	seedHandler := handlers.NewSeedHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			slog.Warn("health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Pokemon CRUD
	mux.HandleFunc("POST /pokemon", middleware.WithLogging(pokemonHandler.Create))
	mux.HandleFunc("GET /pokemon", middleware.WithLogging(pokemonHandler.List))
	mux.HandleFunc("GET /pokemon/{term}", middleware.WithLogging(pokemonHandler.Get))
	mux.HandleFunc("PATCH /pokemon/{term}", middleware.WithLogging(pokemonHandler.Update))
	mux.HandleFunc("DELETE /pokemon/{id}", middleware.WithLogging(pokemonHandler.Delete))

	// Seed (destructive, optionally guarded by X-Seed-Key)
	mux.HandleFunc("POST /seed", middleware.WithLogging(seedHandler.Execute))

	// Root endpoint
	if cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(cfg.StaticDir)))
	} else {
		mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pokedex API v1"))
		})
	}

	return mux
}
