// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sqlstore

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/pokedex/store"
)

// PostgreSQL unique_violation
const pgUniqueViolation = "23505"

var (
	// Key (name)=(pikachu) already exists.
	pgDetailPattern = regexp.MustCompile(`Key \((.+)\)=\((.*)\) already exists`)
	// UNIQUE constraint failed: pokemon.name, pokemon.no
	sqliteUniquePattern = regexp.MustCompile(`UNIQUE constraint failed: ([^()]+)`)
)

// translateError maps driver unique violations to *store.DuplicateKeyError.
// attempted supplies values for backends that only report column names.
func translateError(err error, attempted map[string]any) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		kv := parsePostgresDetail(pqErr.Detail)
		if len(kv) == 0 {
			if field := constraintField(pqErr.Constraint); field != "" {
				kv = map[string]any{field: attempted[field]}
			}
		}
		return &store.DuplicateKeyError{KeyValue: kv, Err: err}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		unique := code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE constraint failed"))
		if unique {
			kv := make(map[string]any)
			for _, field := range parseSQLiteColumns(liteErr.Error()) {
				kv[field] = attempted[field]
			}
			return &store.DuplicateKeyError{KeyValue: kv, Err: err}
		}
	}

	return err
}

func parsePostgresDetail(detail string) map[string]any {
	m := pgDetailPattern.FindStringSubmatch(detail)
	if m == nil {
		return nil
	}

	cols := strings.Split(m[1], ", ")
	vals := strings.Split(m[2], ", ")
	if len(cols) != len(vals) {
		return nil
	}

	kv := make(map[string]any, len(cols))
	for i, col := range cols {
		col = strings.Trim(col, `"`)
		kv[col] = columnValue(col, vals[i])
	}
	return kv
}

func parseSQLiteColumns(msg string) []string {
	m := sqliteUniquePattern.FindStringSubmatch(msg)
	if m == nil {
		return nil
	}

	var fields []string
	for _, col := range strings.Split(m[1], ",") {
		col = strings.TrimSpace(col)
		if i := strings.LastIndex(col, "."); i >= 0 {
			col = col[i+1:]
		}
		if col != "" {
			fields = append(fields, col)
		}
	}
	return fields
}

// pokemon_name_key -> name
func constraintField(constraint string) string {
	field := strings.TrimPrefix(constraint, "pokemon_")
	field = strings.TrimSuffix(field, "_key")
	if field == constraint {
		return ""
	}
	return field
}

func columnValue(col, raw string) any {
	if col == "no" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return raw
}
