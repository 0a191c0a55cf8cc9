// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pokedex/auth"
	"github.com/danielhkuo/pokedex/cliparse"
	"github.com/danielhkuo/pokedex/middleware"
	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/pokemon"
	"github.com/danielhkuo/pokedex/seed"
	"github.com/danielhkuo/pokedex/store"
)

type SeedHandler struct {
	importer *seed.Importer
	cfg      cliparse.Config
}

func NewSeedHandler(st store.Store, cfg cliparse.Config) *SeedHandler {
	client := &http.Client{Timeout: cfg.CatalogTimeout}
	return NewSeedHandlerWithClient(st, cfg, client)
}

// NewSeedHandlerWithClient uses client for catalog requests.
func NewSeedHandlerWithClient(st store.Store, cfg cliparse.Config, client seed.HTTPClient) *SeedHandler {
	catalog := seed.NewCatalog(cfg.PokeAPIURL, client)
	return &SeedHandler{
		importer: seed.NewImporter(st, catalog, cfg.SeedLimit),
		cfg:      cfg,
	}
}

// Execute handles POST /seed
func (h *SeedHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateSeedRequest(r, h.cfg.SeedKey); err != nil {
		slog.Warn("seed rejected", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid seed key")
		return
	}

	inserted, err := h.importer.Execute(r.Context())
	if err != nil {
		// Conflicts from duplicate catalog entries are logged here; internal
		// causes were logged by the importer
		if pokemon.KindOf(err) != pokemon.KindInternal {
			slog.Error("seed failed", "error", err)
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to seed pokemon - check server logs")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SeedResponse{
		Message:  "seed executed",
		Inserted: inserted,
	})
}
