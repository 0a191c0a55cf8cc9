// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the pokedex API.

# Handler Types

Each handler is a struct built from a store and the config:

  - PokemonHandler: create, list, find, update and delete
  - SeedHandler: PokeAPI import

	pokemonHandler := handlers.NewPokemonHandler(st, cfg)

# Error Mapping

Handlers validate request bodies and query strings before calling the
pokemon service, then map its errors:

	validation, not found, conflict  → 400
	internal                          → 500 (cause logged, never returned)

Error bodies carry per-field detail when available:

	{"error":"Bad Request","message":"no is required","fields":[{"field":"no","message":"no is required"}]}

# Seed

POST /seed requires the X-Seed-Key header when SEED_KEY is configured and
answers 401 otherwise. Catalog requests use CATALOG_TIMEOUT.
*/
package handlers
