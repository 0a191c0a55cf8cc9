// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pokedex/models"
)

// DefaultTimeout bounds a catalog request when no client is supplied.
const DefaultTimeout = 30 * time.Second

// maxCatalogBody caps how much of a catalog response is read.
const maxCatalogBody = 8 << 20

// HTTPClient is the subset of *http.Client the catalog needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Entry is one item of the PokeAPI resource list.
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listResponse struct {
	Results []Entry `json:"results"`
}

// Catalog fetches the pokemon resource list from a PokeAPI-compatible
// server.
type Catalog struct {
	baseURL string
	client  HTTPClient
}

// NewCatalog returns a catalog rooted at baseURL, e.g.
// https://pokeapi.co/api/v2. A nil client gets an *http.Client with
// DefaultTimeout.
func NewCatalog(baseURL string, client HTTPClient) *Catalog {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Catalog{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// List returns the first limit entries of GET {base}/pokemon.
func (c *Catalog) List(ctx context.Context, limit int) ([]Entry, error) {
	endpoint := c.baseURL + "/pokemon?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "pokedex-seed")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog returned %s", resp.Status)
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	slog.Info("catalog fetched",
		"url", endpoint,
		"entries", len(list.Results),
		"size", humanize.Bytes(uint64(len(body))),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return list.Results, nil
}

// ParseNo extracts the catalog number from a resource url such as
// https://pokeapi.co/api/v2/pokemon/25/ (trailing slash optional).
func ParseNo(rawURL string) (int, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("invalid catalog url %q: %w", rawURL, err)
	}

	path := strings.TrimRight(u.Path, "/")
	segment := path[strings.LastIndex(path, "/")+1:]

	no, err := strconv.Atoi(segment)
	if err != nil || no < 1 || no > models.MaxNo {
		return 0, fmt.Errorf("catalog url %q does not end in a pokemon number", rawURL)
	}
	return no, nil
}
