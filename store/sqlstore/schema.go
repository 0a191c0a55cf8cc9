// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the pokemon table and its unique indexes.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Valid for both PostgreSQL and SQLite. "no" is quoted because SQLite
// treats NO as a keyword.
const schema = `
CREATE TABLE IF NOT EXISTS pokemon (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    "no" INTEGER NOT NULL UNIQUE CHECK ("no" > 0),
    created_at TIMESTAMP NOT NULL
);
`
