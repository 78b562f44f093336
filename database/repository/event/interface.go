// File: database/repository/event/interface.go
package eventRepo

import (
	"context"
	"errors"

	"syncslot/database"
	"syncslot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrVersionConflict = errors.New("event was modified concurrently")
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	ListByMember(ctx context.Context, userID string) ([]models.Event, error)
	// Update persists event if its stored version still equals event.Version,
	// then bumps event.Version.
	Update(ctx context.Context, event *models.Event) error
	AddParticipant(ctx context.Context, eventID, userID string) (*models.Event, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a new MongoDB EventRepository.
func NewMongoEventRepo() EventRepository {
	return &mongoEventRepo{
		coll: database.Database().Collection("events"),
	}
}
