// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /pokemon", middleware.WithLogging(handler))

Logs request start (method, path, client ip) and completion (status,
duration_ms), and records the request duration histogram labelled with the
matched route pattern.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Seed-Key.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.FieldErrorResponse(w, http.StatusBadRequest, "message", fields)

ParseJSONBody rejects unknown fields and trailing data. DecodeFieldErrors
maps type mismatches and unknown fields to per-field errors:

	var req models.CreatePokemonRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "invalid JSON body", middleware.DecodeFieldErrors(err))
		return
	}
*/
package middleware
