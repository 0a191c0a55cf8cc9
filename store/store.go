// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/danielhkuo/pokedex/models"
)

// ErrNotFound is returned by single-entity lookups that match nothing.
var ErrNotFound = errors.New("pokemon not found")

// Store is the storage handle used by the pokemon service and the seed
// importer. Implementations translate driver errors: missing rows become
// ErrNotFound, unique index collisions become *DuplicateKeyError, anything
// else is wrapped and returned as is.
type Store interface {
	// ValidID reports whether id is syntactically a native identifier
	// for this backend.
	ValidID(id string) bool

	FindByNo(ctx context.Context, no int) (models.Pokemon, error)
	FindByID(ctx context.Context, id string) (models.Pokemon, error)
	FindByName(ctx context.Context, name string) (models.Pokemon, error)

	// List returns pokemon ordered by no ascending.
	List(ctx context.Context, limit, offset int) ([]models.Pokemon, error)

	// Insert assigns ID and stores p. CreatedAt is kept if already set.
	Insert(ctx context.Context, p models.Pokemon) (models.Pokemon, error)
	// InsertMany stores all of ps in a single batch and returns how many
	// were written.
	InsertMany(ctx context.Context, ps []models.Pokemon) (int, error)

	// UpdatePartial applies the non-nil fields of patch to the pokemon
	// with the given id and returns the stored result.
	UpdatePartial(ctx context.Context, id string, patch models.UpdatePokemonRequest) (models.Pokemon, error)

	// DeleteByID removes at most one pokemon and returns the deleted count.
	DeleteByID(ctx context.Context, id string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// DuplicateKeyError reports a unique index violation. KeyValue holds the
// colliding field/value pairs as reported by the backend.
type DuplicateKeyError struct {
	KeyValue map[string]any
	Err      error
}

func (e *DuplicateKeyError) Error() string {
	if len(e.KeyValue) == 0 {
		return "duplicate key"
	}
	return "duplicate key " + e.KeyValueJSON()
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

// Fields returns the colliding field names in sorted order.
func (e *DuplicateKeyError) Fields() []string {
	fields := make([]string, 0, len(e.KeyValue))
	for k := range e.KeyValue {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// KeyValueJSON renders KeyValue as a JSON object with sorted keys.
func (e *DuplicateKeyError) KeyValueJSON() string {
	b, err := json.Marshal(e.KeyValue)
	if err != nil {
		return "{" + strings.Join(e.Fields(), ",") + "}"
	}
	return string(b)
}

// IsDuplicateKey reports whether err wraps a *DuplicateKeyError.
func IsDuplicateKey(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}
