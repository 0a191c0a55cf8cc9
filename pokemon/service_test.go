// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pokemon

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/store"
	"github.com/danielhkuo/pokedex/testutil"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	st := testutil.SetupTestStore(t)
	return NewService(st, 6), st
}

func mustCreate(t *testing.T, svc *Service, name string, no int) models.Pokemon {
	t.Helper()
	p, err := svc.Create(context.Background(), name, no)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	return p
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("Expected %s error, got %s (%v)", want, got, err)
	}
}

func TestCreateLowercasesName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := mustCreate(t, svc, "PIKACHU", 25)
	if p.Name != "pikachu" {
		t.Errorf("Expected stored name pikachu, got %q", p.Name)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Errorf("Expected id and createdAt to be set, got %+v", p)
	}

	found, err := svc.FindByTerm(ctx, "pikachu")
	if err != nil || found.ID != p.ID {
		t.Fatalf("FindByTerm(pikachu): %+v, %v", found, err)
	}

	_, err = svc.Create(ctx, "pikachu", 26)
	assertKind(t, err, KindConflict)
	if !strings.Contains(err.Error(), `"name":"pikachu"`) {
		t.Errorf("Expected conflict message to name the field, got %q", err.Error())
	}
}

func TestCreateConflictOnNo(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc, "bulbasaur", 1)

	_, err := svc.Create(context.Background(), "ivysaur", 1)
	assertKind(t, err, KindConflict)

	var e *Error
	if !errors.As(err, &e) || !strings.Contains(e.Message, `"no":1`) {
		t.Errorf("Expected conflict naming no, got %v", err)
	}
}

func TestFindByTerm(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pikachu := mustCreate(t, svc, "Pikachu", 25)
	mustCreate(t, svc, "Bulbasaur", 1)

	tests := []struct {
		name   string
		term   string
		wantNo int
	}{
		{"by number", "25", 25},
		{"by number with spaces", " 25 ", 25},
		{"by id", pikachu.ID, 25},
		{"by name", "pikachu", 25},
		{"by name any casing", "  BULBASAUR ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.FindByTerm(ctx, tt.term)
			if err != nil {
				t.Fatalf("FindByTerm(%q): %v", tt.term, err)
			}
			if p.No != tt.wantNo {
				t.Errorf("Expected no %d, got %d", tt.wantNo, p.No)
			}
		})
	}

	_, err := svc.FindByTerm(ctx, "mewtwo")
	assertKind(t, err, KindNotFound)
	if !strings.Contains(err.Error(), "mewtwo") {
		t.Errorf("Expected not found message to name the term, got %q", err.Error())
	}
}

func TestCatalogNumberBounds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Every number Create accepts must be found again by number
	p := mustCreate(t, svc, "maxmon", models.MaxNo)
	found, err := svc.FindByTerm(ctx, strconv.Itoa(models.MaxNo))
	if err != nil || found.ID != p.ID {
		t.Fatalf("Expected lookup by max no, got %+v, %v", found, err)
	}

	tooBig := int(int64(models.MaxNo) + 1)
	_, err = svc.Create(ctx, "bigmon", tooBig)
	assertKind(t, err, KindValidation)

	_, err = svc.Update(ctx, "maxmon", models.UpdatePokemonRequest{No: &tooBig})
	assertKind(t, err, KindValidation)

	if _, err := svc.FindByTerm(ctx, "bigmon"); KindOf(err) != KindNotFound {
		t.Errorf("Expected rejected pokemon to be absent, got %v", err)
	}
}

func TestFindByTermNumericNameFallback(t *testing.T) {
	svc, _ := newTestService(t)

	// A name that looks like a number is still found when no pokemon has
	// that catalog number
	mustCreate(t, svc, "404", 7)

	p, err := svc.FindByTerm(context.Background(), "404")
	if err != nil || p.No != 7 {
		t.Errorf("Expected fallback to name lookup, got %+v, %v", p, err)
	}
}

// fixedIDStore marks every term as a valid id and resolves ids to a fixed
// pokemon, to exercise the number-before-id precedence.
type fixedIDStore struct {
	store.Store
	byID models.Pokemon
}

func (s fixedIDStore) ValidID(string) bool { return true }

func (s fixedIDStore) FindByID(context.Context, string) (models.Pokemon, error) {
	return s.byID, nil
}

func TestFindByTermNumericPrecedence(t *testing.T) {
	st := testutil.SetupTestStore(t)
	a := testutil.CreateTestPokemon(t, st, "alpha", 42)
	b := testutil.CreateTestPokemon(t, st, "beta", 43)

	svc := NewService(fixedIDStore{Store: st, byID: b}, 6)

	got, err := svc.FindByTerm(context.Background(), "42")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != a.ID {
		t.Errorf("Expected numeric match %s, got %s", a.Name, got.Name)
	}

	// No numeric match: the id strategy wins over the name
	got, err = svc.FindByTerm(context.Background(), "9999")
	if err != nil || got.ID != b.ID {
		t.Errorf("Expected id fallback to %s, got %+v, %v", b.Name, got, err)
	}
}

func TestList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i, name := range []string{"d", "c", "b", "a"} {
		mustCreate(t, svc, name, 4-i)
	}

	page, err := svc.List(ctx, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].No != 2 || page[1].No != 3 {
		t.Errorf("Expected nos [2 3], got %+v", page)
	}

	for i := 5; i <= 10; i++ {
		mustCreate(t, svc, "extra"+string(rune('a'+i)), i)
	}
	page, err = svc.List(ctx, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 6 {
		t.Errorf("Expected default limit of 6, got %d", len(page))
	}
	if page[0].No != 1 {
		t.Errorf("Expected first page to start at no 1, got %d", page[0].No)
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := mustCreate(t, svc, "charmander", 4)
	mustCreate(t, svc, "charmeleon", 5)

	name := "  CHARIZARD "
	updated, err := svc.Update(ctx, "4", models.UpdatePokemonRequest{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "charizard" || updated.No != 4 || updated.ID != p.ID {
		t.Errorf("Unexpected update result %+v", updated)
	}
	if !updated.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("Expected createdAt to be preserved")
	}

	if _, err := svc.FindByTerm(ctx, "charizard"); err != nil {
		t.Errorf("Expected renamed pokemon to be findable: %v", err)
	}

	no := 5
	_, err = svc.Update(ctx, "charizard", models.UpdatePokemonRequest{No: &no})
	assertKind(t, err, KindConflict)

	_, err = svc.Update(ctx, "missingno", models.UpdatePokemonRequest{Name: &name})
	assertKind(t, err, KindNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p := mustCreate(t, svc, "eevee", 133)

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}

	_, err := svc.FindByTerm(ctx, "133")
	assertKind(t, err, KindNotFound)

	err = svc.Delete(ctx, p.ID)
	assertKind(t, err, KindNotFound)
	if !strings.Contains(err.Error(), p.ID) {
		t.Errorf("Expected message to name the id, got %q", err.Error())
	}

	err = svc.Delete(ctx, "not-an-id")
	assertKind(t, err, KindValidation)
}

func TestConcurrentCreateSameNo(t *testing.T) {
	svc, _ := newTestService(t)

	const callers = 8
	var ok, conflict atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), "racer"+string(rune('a'+i)), 150)
			switch {
			case err == nil:
				ok.Add(1)
			case KindOf(err) == KindConflict:
				conflict.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if ok.Load() != 1 {
		t.Errorf("Expected exactly one success, got %d", ok.Load())
	}
	if conflict.Load() != callers-1 {
		t.Errorf("Expected %d conflicts, got %d", callers-1, conflict.Load())
	}
}

// failingStore fails every call with a driver-level error.
type failingStore struct {
	store.Store
}

var errBoom = errors.New("connection refused")

func (failingStore) Insert(context.Context, models.Pokemon) (models.Pokemon, error) {
	return models.Pokemon{}, errBoom
}

func TestInternalErrorHidesCause(t *testing.T) {
	svc := NewService(failingStore{}, 6)

	_, err := svc.Create(context.Background(), "pikachu", 25)
	assertKind(t, err, KindInternal)

	var e *Error
	errors.As(err, &e)
	if strings.Contains(e.Message, "connection refused") {
		t.Errorf("Internal message must not leak the cause: %q", e.Message)
	}
	if !errors.Is(err, errBoom) {
		t.Error("Expected cause to remain available via errors.Is")
	}
}
