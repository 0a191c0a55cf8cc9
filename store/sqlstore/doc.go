// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sqlstore implements store.Store on PostgreSQL (lib/pq) and SQLite
(modernc.org/sqlite).

# Opening

	s, err := sqlstore.Open(ctx, "postgres", "postgres://...")
	s, err := sqlstore.Open(ctx, "sqlite", "pokedex.db")

Open pings the database and runs CreateSchema, which is safe to call
multiple times.

# Table

	pokemon (
	    id         TEXT PRIMARY KEY,      -- UUID
	    name       TEXT UNIQUE,
	    "no"       INTEGER UNIQUE > 0,
	    created_at TIMESTAMP
	)

# Unique Violations

PostgreSQL reports SQLSTATE 23505 with a detail like
"Key (name)=(pikachu) already exists."; SQLite reports
SQLITE_CONSTRAINT_UNIQUE with the column list. Both become
*store.DuplicateKeyError.
*/
package sqlstore
