// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/store"
)

func TestTranslateErrorFromMessage(t *testing.T) {
	err := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: pokedex.pokemons index: name_1 dup key: { name: "pikachu" }`,
		}},
	}

	var dup *store.DuplicateKeyError
	if !errors.As(translateError(err), &dup) {
		t.Fatal("Expected DuplicateKeyError")
	}
	if dup.KeyValue["name"] != "pikachu" {
		t.Errorf("Unexpected key value: %v", dup.KeyValue)
	}
}

func TestTranslateErrorFromKeyValueDocument(t *testing.T) {
	raw, err := bson.Marshal(bson.D{
		{Key: "code", Value: int32(11000)},
		{Key: "keyValue", Value: bson.D{{Key: "no", Value: int32(25)}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	werr := mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{{
			WriteError: mongo.WriteError{Code: 11000, Message: "E11000 duplicate key error", Raw: bson.Raw(raw)},
		}},
	}

	var dup *store.DuplicateKeyError
	if !errors.As(translateError(werr), &dup) {
		t.Fatal("Expected DuplicateKeyError")
	}
	if dup.KeyValue["no"] != 25 {
		t.Errorf("Expected no=25, got %v", dup.KeyValue)
	}
}

func TestTranslateErrorPassThrough(t *testing.T) {
	other := errors.New("connection reset")
	if got := translateError(other); got != other {
		t.Errorf("Expected error to pass through, got %v", got)
	}
	if translateError(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestParseDupKeyMessage(t *testing.T) {
	kv := parseDupKeyMessage(`E11000 duplicate key error collection: pokedex.pokemons index: no_1 dup key: { no: 25 }`)
	if kv["no"] != 25 {
		t.Errorf("Expected no=25, got %v", kv)
	}
	if kv := parseDupKeyMessage("some other failure"); kv != nil {
		t.Errorf("Expected nil, got %v", kv)
	}
}

// setupTestStore connects to POKEDEX_MONGO_TEST_URI and uses a throwaway
// database per test.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("POKEDEX_MONGO_TEST_URI")
	if uri == "" {
		t.Skip("POKEDEX_MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	dbName := "pokedex_test_" + primitive.NewObjectID().Hex()
	s, err := Open(ctx, uri, dbName)
	if err != nil {
		t.Fatalf("Failed to open mongo store: %v", err)
	}
	t.Cleanup(func() {
		s.coll.Database().Drop(context.Background())
		s.Close()
	})
	return s
}

func TestMongoCRUD(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	p, err := s.Insert(ctx, models.Pokemon{Name: "pikachu", No: 25})
	if err != nil {
		t.Fatal(err)
	}
	if !s.ValidID(p.ID) {
		t.Errorf("Expected ObjectID, got %q", p.ID)
	}

	if _, err := s.Insert(ctx, models.Pokemon{Name: "pikachu", No: 26}); !store.IsDuplicateKey(err) {
		t.Errorf("Expected duplicate key error, got %v", err)
	}

	got, err := s.FindByNo(ctx, 25)
	if err != nil || got.ID != p.ID {
		t.Errorf("FindByNo: %+v, %v", got, err)
	}

	name := "raichu"
	updated, err := s.UpdatePartial(ctx, p.ID, models.UpdatePokemonRequest{Name: &name})
	if err != nil || updated.Name != "raichu" || updated.No != 25 {
		t.Errorf("UpdatePartial: %+v, %v", updated, err)
	}

	n, err := s.DeleteByID(ctx, p.ID)
	if err != nil || n != 1 {
		t.Errorf("DeleteByID: %d, %v", n, err)
	}
	if _, err := s.FindByID(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMongoListAndBatch(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	batch := []models.Pokemon{
		{Name: "venusaur", No: 3},
		{Name: "bulbasaur", No: 1},
		{Name: "charmander", No: 4},
		{Name: "ivysaur", No: 2},
	}
	if n, err := s.InsertMany(ctx, batch); err != nil || n != 4 {
		t.Fatalf("InsertMany: %d, %v", n, err)
	}

	page, err := s.List(ctx, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 || page[0].No != 2 || page[1].No != 3 {
		t.Errorf("Expected nos [2 3], got %+v", page)
	}

	removed, err := s.DeleteAll(ctx)
	if err != nil || removed != 4 {
		t.Errorf("DeleteAll: %d, %v", removed, err)
	}
}
