// File: database/repository/event/crud.go
package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"syncslot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoEventRepo) Create(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Version == 0 {
		event.Version = 1
	}

	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event models.Event
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	return &event, nil
}

func (r *mongoEventRepo) Update(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expected := event.Version
	event.Version = expected + 1
	event.UpdatedAt = time.Now().UTC()

	filter := bson.M{"id": event.ID, "version": expected}
	res, err := r.coll.ReplaceOne(ctx, filter, event)
	if err != nil {
		event.Version = expected
		return fmt.Errorf("failed to update event %s: %w", event.ID, err)
	}
	if res.MatchedCount == 0 {
		event.Version = expected
		if _, getErr := r.GetByID(ctx, event.ID); errors.Is(getErr, ErrEventNotFound) {
			return ErrEventNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

// AddParticipant appends userID to an open event. Joining twice is a no-op.
func (r *mongoEventRepo) AddParticipant(ctx context.Context, eventID, userID string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": eventID, "status": models.EventStatusOpen}
	update := bson.M{
		"$addToSet": bson.M{"participantIds": userID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var event models.Event
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to add participant to event %s: %w", eventID, err)
	}
	return &event, nil
}
