// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/pokedex/cliparse"
	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/store/sqlstore"
)

// PostgresURLEnv switches SetupTestStore to PostgreSQL when set.
const PostgresURLEnv = "POKEDEX_POSTGRES_TEST_URL"

// SetupTestStore creates a fresh store with the full schema. It uses a
// SQLite file in the test's temp dir unless PostgresURLEnv is set.
func SetupTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()

	driver, dsn := models.DatabaseSQLite, filepath.Join(t.TempDir(), "pokedex.db")
	if url := os.Getenv(PostgresURLEnv); url != "" {
		driver, dsn = models.DatabasePostgres, url
	}

	st, err := sqlstore.Open(ctx, driver, dsn)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}

	// Clean up rows left by earlier tests on a shared database
	if _, err := st.DeleteAll(ctx); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}

	t.Cleanup(func() { st.Close() })
	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		DatabaseURL:    "file:test.db",
		DatabaseType:   models.DatabaseSQLite,
		DatabaseName:   "pokedex",
		DefaultLimit:   6,
		PokeAPIURL:     "http://127.0.0.1:0",
		SeedLimit:      60,
		CatalogTimeout: cliparse.DefaultCatalogTimeout,
		LogLevel:       "info",
	}
}

// CreateTestPokemon inserts a pokemon directly through the store and
// returns it with its assigned id
func CreateTestPokemon(t *testing.T, st *sqlstore.Store, name string, no int) models.Pokemon {
	t.Helper()

	p, err := st.Insert(context.Background(), models.Pokemon{Name: name, No: no})
	if err != nil {
		t.Fatalf("Failed to create test pokemon: %v", err)
	}
	return p
}

// CountPokemon returns the number of stored pokemon
func CountPokemon(t *testing.T, st *sqlstore.Store) int {
	t.Helper()

	var n int
	if err := st.DB().QueryRow("SELECT COUNT(*) FROM pokemon").Scan(&n); err != nil {
		t.Fatalf("Failed to count pokemon: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if raw, ok := body.(string); ok {
			jsonBody = []byte(raw)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
