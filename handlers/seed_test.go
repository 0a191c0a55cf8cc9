// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pokedex/auth"
	"github.com/danielhkuo/pokedex/cliparse"
	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/testutil"
)

// newCatalog serves a PokeAPI-shaped resource list of count entries
func newCatalog(t *testing.T, count int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := count
		fmt.Sscan(r.URL.Query().Get("limit"), &limit)
		limit = min(limit, count)

		type entry struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		}
		results := make([]entry, 0, limit)
		for i := 1; i <= limit; i++ {
			results = append(results, entry{
				Name: fmt.Sprintf("pokemon-%d", i),
				URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", i),
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func seedConfig(url string) cliparse.Config {
	cfg := testutil.GetTestConfig()
	cfg.PokeAPIURL = url
	return cfg
}

func TestSeedExecute(t *testing.T) {
	st := testutil.SetupTestStore(t)
	srv := newCatalog(t, 151)
	h := NewSeedHandlerWithClient(st, seedConfig(srv.URL), srv.Client())

	testutil.CreateTestPokemon(t, st, "custom", 500)

	req := testutil.MakeRequest("POST", "/seed", nil, nil)
	w := httptest.NewRecorder()

	h.Execute(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SeedResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "seed executed" || resp.Inserted != 60 {
		t.Errorf("Unexpected seed response %+v", resp)
	}
	if n := testutil.CountPokemon(t, st); n != 60 {
		t.Errorf("Expected 60 stored pokemon, got %d", n)
	}
}

func TestSeedKey(t *testing.T) {
	st := testutil.SetupTestStore(t)
	srv := newCatalog(t, 10)
	cfg := seedConfig(srv.URL)
	cfg.SeedKey = "s3cret"
	h := NewSeedHandlerWithClient(st, cfg, srv.Client())

	testCases := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{"missing key", nil, http.StatusUnauthorized},
		{"wrong key", map[string]string{auth.SeedKeyHeader: "guess"}, http.StatusUnauthorized},
		{"correct key", map[string]string{auth.SeedKeyHeader: "s3cret"}, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/seed", nil, tc.headers)
			w := httptest.NewRecorder()

			h.Execute(w, req)

			testutil.AssertStatus(t, w, tc.wantStatus)
		})
	}
}

func TestSeedCatalogDown(t *testing.T) {
	st := testutil.SetupTestStore(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	h := NewSeedHandlerWithClient(st, seedConfig(srv.URL), srv.Client())

	req := testutil.MakeRequest("POST", "/seed", nil, nil)
	w := httptest.NewRecorder()

	h.Execute(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "failed to seed pokemon - check server logs" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}
