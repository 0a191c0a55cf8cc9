// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newCatalogServer serves count entries at /pokemon, honoring ?limit=
func newCatalogServer(t *testing.T, count int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon" {
			http.NotFound(w, r)
			return
		}

		limit := count
		fmt.Sscan(r.URL.Query().Get("limit"), &limit)
		if limit > count {
			limit = count
		}

		results := make([]Entry, 0, limit)
		for i := 1; i <= limit; i++ {
			results = append(results, Entry{
				Name: fmt.Sprintf("Mon-%d", i),
				URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", i),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"count": count, "results": results})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCatalogList(t *testing.T) {
	srv := newCatalogServer(t, 151)

	entries, err := NewCatalog(srv.URL+"/", srv.Client()).List(context.Background(), 60)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 60 {
		t.Fatalf("expected 60 entries, got %d", len(entries))
	}
	if entries[24].Name != "Mon-25" || !strings.HasSuffix(entries[24].URL, "/25/") {
		t.Errorf("unexpected entry %+v", entries[24])
	}
}

func TestCatalogListErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			wantErr: "502",
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>"))
			},
			wantErr: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewCatalog(srv.URL, nil).List(context.Background(), 10)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCatalogHonorsContext(t *testing.T) {
	srv := newCatalogServer(t, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewCatalog(srv.URL, nil).List(ctx, 10); err == nil {
		t.Error("expected canceled context to fail the request")
	}
}

func TestParseNo(t *testing.T) {
	tests := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{"https://pokeapi.co/api/v2/pokemon/25/", 25, false},
		{"https://pokeapi.co/api/v2/pokemon/25", 25, false},
		{"https://pokeapi.co/api/v2/pokemon/10001/", 10001, false},
		{"https://pokeapi.co/api/v2/pokemon/pikachu/", 0, true},
		{"https://pokeapi.co/api/v2/pokemon/0/", 0, true},
		{"https://pokeapi.co/api/v2/pokemon/2147483647/", 2147483647, false},
		{"https://pokeapi.co/api/v2/pokemon/2147483648/", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := ParseNo(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNo(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseNo(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}
