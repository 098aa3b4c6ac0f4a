package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/observability"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI      string
	Database string

	// Collection holding layout documents; defaults to "layouts".
	Collection string
}

// layoutDoc is the document schema: one document per tab.
type layoutDoc struct {
	Tab        string           `bson:"_id"`
	Placements []grid.Placement `bson:"placements"`
	UpdatedAt  time.Time        `bson:"updated_at"`
}

// MongoStore persists layouts in MongoDB, one document per tab.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := cfg.Collection
	if coll == "" {
		coll = "layouts"
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(coll),
	}, nil
}

// Save upserts the document for a tab.
func (s *MongoStore) Save(ctx context.Context, tab string, snap grid.Snapshot) error {
	start := time.Now()
	doc := layoutDoc{
		Tab:        tab,
		Placements: snap,
		UpdatedAt:  time.Now().UTC(),
	}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": tab}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		observability.Store().OnError(ctx, "mongo", "save", tab, err)
		return fmt.Errorf("mongo replace %s: %w", tab, err)
	}

	observability.Store().OnSave(ctx, "mongo", tab, len(snap), time.Since(start))
	return nil
}

// Load reads the document for a tab, returning fallback when no document
// exists or the stored placements fail to decode.
func (s *MongoStore) Load(ctx context.Context, tab string, fallback grid.Snapshot) (grid.Snapshot, error) {
	start := time.Now()

	var doc layoutDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": tab}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		observability.Store().OnLoad(ctx, "mongo", tab, true, time.Since(start))
		return fallback, nil
	}
	if err != nil {
		// Decode failures mean a malformed document: fall back. Anything
		// else is a backend failure and is surfaced.
		if _, ok := err.(*mongo.CommandError); !ok && !mongo.IsNetworkError(err) && !mongo.IsTimeout(err) {
			observability.Store().OnLoad(ctx, "mongo", tab, true, time.Since(start))
			return fallback, nil
		}
		observability.Store().OnError(ctx, "mongo", "load", tab, err)
		return fallback, fmt.Errorf("mongo find %s: %w", tab, err)
	}

	observability.Store().OnLoad(ctx, "mongo", tab, false, time.Since(start))
	return grid.Snapshot(doc.Placements), nil
}

// Delete removes the document for a tab.
func (s *MongoStore) Delete(ctx context.Context, tab string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": tab}); err != nil {
		observability.Store().OnError(ctx, "mongo", "delete", tab, err)
		return fmt.Errorf("mongo delete %s: %w", tab, err)
	}
	return nil
}

// Tabs lists all stored tab ids.
func (s *MongoStore) Tabs(ctx context.Context) ([]string, error) {
	ids, err := s.coll.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo distinct: %w", err)
	}

	tabs := make([]string, 0, len(ids))
	for _, id := range ids {
		if tab, ok := id.(string); ok {
			tabs = append(tabs, tab)
		}
	}
	return tabs, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
