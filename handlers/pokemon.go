// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pokedex/cliparse"
	"github.com/danielhkuo/pokedex/middleware"
	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/pokemon"
	"github.com/danielhkuo/pokedex/store"
)

type PokemonHandler struct {
	svc *pokemon.Service
	cfg cliparse.Config
}

func NewPokemonHandler(st store.Store, cfg cliparse.Config) *PokemonHandler {
	return &PokemonHandler{
		svc: pokemon.NewService(st, cfg.DefaultLimit),
		cfg: cfg,
	}
}

// Create handles POST /pokemon
func (h *PokemonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePokemonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, pokemon.ValidationError(errs))
		return
	}

	p, err := h.svc.Create(r.Context(), *req.Name, *req.No)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, p)
}

// List handles GET /pokemon?limit=&offset=
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	q := models.PaginationQuery{
		Limit:  r.URL.Query().Get("limit"),
		Offset: r.URL.Query().Get("offset"),
	}

	limit, offset, errs := q.Parse()
	if len(errs) > 0 {
		writeError(w, pokemon.ValidationError(errs))
		return
	}

	list, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// Get handles GET /pokemon/{term}
func (h *PokemonHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.FindByTerm(r.Context(), r.PathValue("term"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// Update handles PATCH /pokemon/{term}
func (h *PokemonHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePokemonRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, pokemon.ValidationError(errs))
		return
	}

	p, err := h.svc.Update(r.Context(), r.PathValue("term"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}

// Delete handles DELETE /pokemon/{id}
func (h *PokemonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeBody parses the JSON body into v and writes a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "Invalid JSON", middleware.DecodeFieldErrors(err))
		return false
	}
	return true
}

// writeError maps service errors to responses. Validation, not found and
// conflict are client errors; everything else is a 500 whose cause was
// already logged by the service.
func writeError(w http.ResponseWriter, err error) {
	var e *pokemon.Error
	if !errors.As(err, &e) {
		slog.Error("unexpected handler error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch e.Kind {
	case pokemon.KindValidation, pokemon.KindNotFound, pokemon.KindConflict:
		middleware.FieldErrorResponse(w, http.StatusBadRequest, e.Message, e.Fields)
	default:
		middleware.ErrorResponse(w, http.StatusInternalServerError, e.Message)
	}
}
