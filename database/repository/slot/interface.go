// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"syncslot/database"
	"syncslot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotFilter narrows slot queries. Empty fields match everything.
type SlotFilter struct {
	EventID string
	OwnerID string
	Kind    string
	Source  string
}

type SlotRepository interface {
	CreateMany(ctx context.Context, slots []models.TimeSlot) ([]string, error)
	Find(ctx context.Context, filter SlotFilter) ([]models.TimeSlot, error)
	ReplaceForOwner(ctx context.Context, filter SlotFilter, slots []models.TimeSlot) ([]models.TimeSlot, error)
	DeleteMatching(ctx context.Context, filter SlotFilter) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.Database().Collection("slots"),
	}
}
