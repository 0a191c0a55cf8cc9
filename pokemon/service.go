// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pokemon

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/observe"
	"github.com/danielhkuo/pokedex/store"
)

// Service implements pokemon CRUD on top of a store.Store. Create and
// Update re-check field rules so callers outside HTTP cannot store a
// number that lookups reject. Every error it returns is an *Error.
type Service struct {
	store      store.Store
	pagination Pagination
	now        func() time.Time
}

func NewService(st store.Store, defaultLimit int) *Service {
	return &Service{
		store:      st,
		pagination: Pagination{DefaultLimit: defaultLimit},
		now:        time.Now,
	}
}

// Create stores a new pokemon with its name normalized to lowercase.
func (s *Service) Create(ctx context.Context, name string, no int) (models.Pokemon, error) {
	if errs := (models.CreatePokemonRequest{Name: &name, No: &no}).Validate(); len(errs) > 0 {
		verr := ValidationError(errs)
		record(ctx, "create", verr)
		return models.Pokemon{}, verr
	}

	p, err := s.store.Insert(ctx, models.Pokemon{
		Name:      NormalizeName(name),
		No:        no,
		CreatedAt: s.now(),
	})
	if err != nil {
		record(ctx, "create", err)
		return models.Pokemon{}, normalizeStoreError(err, "create")
	}

	slog.Info("pokemon created", "id", p.ID, "name", p.Name, "no", p.No)
	record(ctx, "create", nil)
	return p, nil
}

// List returns one page of pokemon ordered by no. limit and offset of zero
// mean absent.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Pokemon, error) {
	limit, offset = s.pagination.Normalize(limit, offset)

	pokemon, err := s.store.List(ctx, limit, offset)
	if err != nil {
		record(ctx, "list", err)
		return nil, normalizeStoreError(err, "list")
	}

	record(ctx, "list", nil)
	return pokemon, nil
}

// FindByTerm resolves term as a catalog number, a native id, or a name, in
// that order, and returns the first match.
func (s *Service) FindByTerm(ctx context.Context, term string) (models.Pokemon, error) {
	for _, key := range Candidates(term, s.store.ValidID) {
		p, err := s.lookup(ctx, key)
		if err == nil {
			record(ctx, "find", nil)
			return p, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			record(ctx, "find", err)
			return models.Pokemon{}, normalizeStoreError(err, "find")
		}
	}

	nf := notFound("pokemon with id, name or no %q not found", term)
	record(ctx, "find", nf)
	return models.Pokemon{}, nf
}

func (s *Service) lookup(ctx context.Context, key Key) (models.Pokemon, error) {
	switch key.Kind {
	case KeyNumeric:
		return s.store.FindByNo(ctx, key.No)
	case KeyNativeID:
		return s.store.FindByID(ctx, key.ID)
	default:
		return s.store.FindByName(ctx, key.Name)
	}
}

// Update resolves term like FindByTerm, then applies the non-nil fields of
// patch. The returned pokemon is the stored state after the update.
func (s *Service) Update(ctx context.Context, term string, patch models.UpdatePokemonRequest) (models.Pokemon, error) {
	if errs := patch.Validate(); len(errs) > 0 {
		verr := ValidationError(errs)
		record(ctx, "update", verr)
		return models.Pokemon{}, verr
	}

	current, err := s.FindByTerm(ctx, term)
	if err != nil {
		return models.Pokemon{}, err
	}

	if patch.Name != nil {
		name := NormalizeName(*patch.Name)
		patch.Name = &name
	}

	updated, err := s.store.UpdatePartial(ctx, current.ID, patch)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between lookup and update
		nf := notFound("pokemon with id, name or no %q not found", term)
		record(ctx, "update", nf)
		return models.Pokemon{}, nf
	}
	if err != nil {
		record(ctx, "update", err)
		return models.Pokemon{}, normalizeStoreError(err, "update")
	}

	slog.Info("pokemon updated", "id", updated.ID, "name", updated.Name, "no", updated.No)
	record(ctx, "update", nil)
	return updated, nil
}

// Delete removes the pokemon with the given native id in one round trip.
// Malformed ids are rejected before reaching the store.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !s.store.ValidID(id) {
		verr := ValidationError([]models.FieldError{{Field: "id", Message: id + " is not a valid id"}})
		record(ctx, "delete", verr)
		return verr
	}

	deleted, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		record(ctx, "delete", err)
		return normalizeStoreError(err, "delete")
	}
	if deleted == 0 {
		nf := notFound("pokemon with id %q not found", id)
		record(ctx, "delete", nf)
		return nf
	}

	slog.Info("pokemon deleted", "id", id)
	record(ctx, "delete", nil)
	return nil
}

func record(ctx context.Context, op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		if store.IsDuplicateKey(err) {
			outcome = KindConflict.String()
		}
	}
	observe.DefaultMetrics().RecordOperation(ctx, op, outcome)
}
