package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.ProgressRepo = &ProgressRepo{}

// ProgressRepo stores one progress document per player, keyed by player ID.
type ProgressRepo struct {
	collection *mongo.Collection
}

// NewProgressRepo creates a ProgressRepo on the given database and collection.
func NewProgressRepo(client *mongo.Client, dbName, collectionName string) *ProgressRepo {
	return &ProgressRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save replaces the progress document of the player, inserting it when missing.
func (r *ProgressRepo) Save(ctx context.Context, p *dmn.Progress) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.PlayerID}, p, opts); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// ByPlayer returns the stored progress, or nil when the player has none yet.
func (r *ProgressRepo) ByPlayer(ctx context.Context, playerID uuid.UUID) (*dmn.Progress, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var p dmn.Progress
	if err := r.collection.FindOne(ctx, bson.M{"_id": playerID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding progress: %w", err)
	}
	return &p, nil
}
