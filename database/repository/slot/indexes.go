// FILE: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary read pattern: every slot of an event, by kind.
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}, {Key: "kind", Value: 1}, {Key: "start", Value: 1}},
			Options: options.Index().SetName("event_kind_start_idx"),
		},
		// Replacement pattern: one owner's slots of a kind and source.
		{
			Keys:    bson.D{{Key: "eventId", Value: 1}, {Key: "ownerId", Value: 1}, {Key: "kind", Value: 1}, {Key: "source", Value: 1}},
			Options: options.Index().SetName("event_owner_kind_source_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
