// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/observe"
	"github.com/danielhkuo/pokedex/pokemon"
	"github.com/danielhkuo/pokedex/store"
)

// DefaultLimit is how many catalog entries a seed imports.
const DefaultLimit = 60

// Lister lists catalog entries. *Catalog implements it.
type Lister interface {
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Importer replaces the stored pokemon with the first entries of the
// catalog.
type Importer struct {
	store   store.Store
	catalog Lister
	limit   int
	now     func() time.Time
}

func NewImporter(st store.Store, catalog Lister, limit int) *Importer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Importer{
		store:   st,
		catalog: catalog,
		limit:   limit,
		now:     time.Now,
	}
}

// Execute deletes every stored pokemon, fetches the catalog and bulk
// inserts it. It is not atomic: a failure after the delete leaves the
// collection empty or partially filled. Errors are *pokemon.Error.
func (im *Importer) Execute(ctx context.Context) (int, error) {
	start := time.Now()

	deleted, err := im.store.DeleteAll(ctx)
	if err != nil {
		return 0, pokemon.NormalizeStoreError(err, "seed")
	}

	entries, err := im.catalog.List(ctx, im.limit)
	if err != nil {
		return 0, catalogError(err)
	}

	createdAt := im.now()
	batch := make([]models.Pokemon, 0, len(entries))
	for _, e := range entries {
		no, err := ParseNo(e.URL)
		if err != nil {
			return 0, catalogError(err)
		}
		batch = append(batch, models.Pokemon{
			Name:      pokemon.NormalizeName(e.Name),
			No:        no,
			CreatedAt: createdAt,
		})
	}

	inserted, err := im.store.InsertMany(ctx, batch)
	if err != nil {
		return 0, pokemon.NormalizeStoreError(err, "seed")
	}

	observe.DefaultMetrics().RecordSeed(ctx, inserted)
	slog.Info("seed executed",
		"deleted", humanize.Comma(deleted),
		"inserted", humanize.Comma(int64(inserted)),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return inserted, nil
}

func catalogError(err error) error {
	slog.Error("catalog fetch failed", "error", err)
	return &pokemon.Error{
		Kind:    pokemon.KindInternal,
		Message: "failed to seed pokemon - check server logs",
		Err:     err,
	}
}
