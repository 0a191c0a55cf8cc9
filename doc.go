// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pokedex API server.

The pokedex is a REST service for a small pokemon collection. Pokemon are
looked up by catalog number, store id or name, and the collection can be
seeded from PokeAPI.

# Starting the Server

The server requires a database URL from the environment or a flag:

	MONGODB_URI=mongodb://localhost:27017 go run .

Or with flags, on a local SQLite file:

	go run . -t sqlite -d ./pokedex.db -p 3000

# Configuration

Required settings:

  - MONGODB_URI or DATABASE_URL (-d): database connection string

Optional settings:

  - DATABASE_TYPE (-t): mongo (default), postgres or sqlite
  - PORT (-p): server port (default: 3000)
  - DEFAULT_LIMIT (-limit): page size for GET /pokemon (default: 6)
  - SEED_KEY (-seed-key): required X-Seed-Key for POST /seed

See package cliparse for the full list, including the YAML config file.

# Architecture

  - handlers: HTTP request handlers (pokemon CRUD, seed)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - pokemon: lookup rules, pagination and error taxonomy
  - seed: PokeAPI catalog client and importer
  - store: storage interface with mongostore and sqlstore backends
  - observe: OpenTelemetry metrics exported to Prometheus
  - models: Request/response types and validation
  - auth: seed key check
  - cliparse: Configuration parsing

The server logs text to a terminal and JSON otherwise, and shuts down
gracefully on SIGINT or SIGTERM.
*/
package main
