package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const mongoCollection = "provider_snapshots"

// Mongo stores snapshots in the provider_snapshots collection, one document
// per provider name keyed by _id.
type Mongo struct {
	coll *mongodriver.Collection
}

// NewMongo creates a MongoDB-backed store on the given database.
func NewMongo(db *mongodriver.Database) *Mongo {
	return &Mongo{coll: db.Collection(mongoCollection)}
}

type snapshotDoc struct {
	Name      string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Load returns the snapshot stored under name.
func (s *Mongo) Load(ctx context.Context, name string) ([]byte, error) {
	var doc snapshotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return doc.Data, nil
}

// Save upserts the snapshot under name.
func (s *Mongo) Save(ctx context.Context, name string, data []byte) error {
	doc := snapshotDoc{Name: name, Data: data, UpdatedAt: time.Now().UTC()}

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}
	return nil
}

// Delete removes the snapshot under name.
func (s *Mongo) Delete(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": name}); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	return nil
}
