// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pokedex API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg, provider.Handler())

# Endpoints

Operations:

	GET  /health   - Store ping (200 OK or 503)
	GET  /metrics  - Prometheus metrics
	GET  /         - Banner, or files from STATIC_DIR

Pokemon:

	POST   /pokemon         - Create
	GET    /pokemon         - List (?limit=&offset=, ordered by no)
	GET    /pokemon/{term}  - Find by number, id or name
	PATCH  /pokemon/{term}  - Partial update
	DELETE /pokemon/{id}    - Delete by id

Seed:

	POST /seed  - Replace all pokemon with the PokeAPI catalog

All /pokemon and /seed routes are wrapped with middleware.WithLogging.
*/
package router
