// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/danielhkuo/pokedex/models"
	"github.com/danielhkuo/pokedex/store"
)

// CollectionName is the collection holding pokemon documents.
const CollectionName = "pokemons"

type document struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	No        int                `bson:"no"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d document) model() models.Pokemon {
	return models.Pokemon{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		No:        d.No,
		CreatedAt: d.CreatedAt,
	}
}

// Store implements store.Store on a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Open connects to uri, pings the primary and ensures the unique indexes
// on name and no exist.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	s := &Store{
		client: client,
		coll:   client.Database(dbName).Collection(CollectionName),
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

// EnsureIndexes creates the unique indexes. Safe to call multiple times.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "no", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Collection exposes the underlying collection for tests and maintenance.
func (s *Store) Collection() *mongo.Collection {
	return s.coll
}

func (s *Store) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (s *Store) FindByNo(ctx context.Context, no int) (models.Pokemon, error) {
	return s.findOne(ctx, bson.D{{Key: "no", Value: no}})
}

func (s *Store) FindByID(ctx context.Context, id string) (models.Pokemon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Pokemon{}, store.ErrNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *Store) FindByName(ctx context.Context, name string) (models.Pokemon, error) {
	return s.findOne(ctx, bson.D{{Key: "name", Value: name}})
}

func (s *Store) findOne(ctx context.Context, filter bson.D) (models.Pokemon, error) {
	var d document
	err := s.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Pokemon{}, store.ErrNotFound
	}
	if err != nil {
		return models.Pokemon{}, fmt.Errorf("failed to find pokemon: %w", err)
	}
	return d.model(), nil
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]models.Pokemon, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "no", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.D{{Key: "__v", Value: 0}})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query pokemon: %w", err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode pokemon: %w", err)
	}

	pokemon := make([]models.Pokemon, 0, len(docs))
	for _, d := range docs {
		pokemon = append(pokemon, d.model())
	}
	return pokemon, nil
}

func (s *Store) Insert(ctx context.Context, p models.Pokemon) (models.Pokemon, error) {
	d := newDocument(p, time.Now())
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return models.Pokemon{}, fmt.Errorf("failed to insert pokemon: %w", translateError(err))
	}
	return d.model(), nil
}

func (s *Store) InsertMany(ctx context.Context, ps []models.Pokemon) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}

	now := time.Now()
	docs := make([]any, 0, len(ps))
	for _, p := range ps {
		docs = append(docs, newDocument(p, now))
	}

	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert pokemon batch: %w", translateError(err))
	}
	return len(res.InsertedIDs), nil
}

func (s *Store) UpdatePartial(ctx context.Context, id string, patch models.UpdatePokemonRequest) (models.Pokemon, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Pokemon{}, store.ErrNotFound
	}

	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.No != nil {
		set = append(set, bson.E{Key: "no", Value: *patch.No})
	}
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d document
	err = s.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Pokemon{}, store.ErrNotFound
	}
	if err != nil {
		return models.Pokemon{}, fmt.Errorf("failed to update pokemon: %w", translateError(err))
	}
	return d.model(), nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete pokemon: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete pokemon: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

func newDocument(p models.Pokemon, now time.Time) document {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	// BSON datetimes carry millisecond precision
	createdAt = createdAt.UTC().Truncate(time.Millisecond)

	return document{
		ID:        primitive.NewObjectID(),
		Name:      p.Name,
		No:        p.No,
		CreatedAt: createdAt,
	}
}
