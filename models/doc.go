// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON and query strings:

  - CreatePokemonRequest: no, name (both required)
  - UpdatePokemonRequest: no, name (both optional)
  - PaginationQuery: limit, offset (raw query values)

Each request type has a Validate method returning []FieldError. Handlers
run it before touching the store:

	if errs := req.Validate(); len(errs) > 0 {
		// 400 with field-level detail
	}

# Response Types

  - SeedResponse: message, inserted
  - ErrorResponse: error, message, fields

# Domain Types

  - Pokemon: id, name (lowercase, unique), no (positive, unique), createdAt

# Constants

Database backends:

	DatabaseMongo    = "mongo"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
*/
package models
