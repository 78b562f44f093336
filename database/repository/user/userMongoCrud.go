// File: database/repository/user/userMongoCrud.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"syncslot/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update modifies the profile fields of an existing user document.
func (r *MongoUserRepo) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	return r.updateSetDocument(ctx, user.ID, bson.M{
		"name":      user.Name,
		"timezone":  user.Timezone,
		"updatedAt": user.UpdatedAt,
	})
}

func (r *MongoUserRepo) SetTokenHash(ctx context.Context, id, tokenHash string) error {
	return r.updateSetDocument(ctx, id, bson.M{
		"tokenHash": tokenHash,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *MongoUserRepo) SetGoogleToken(ctx context.Context, id string, token *models.GoogleToken, calendarID string) error {
	if calendarID == "" {
		calendarID = "primary"
	}
	return r.updateSetDocument(ctx, id, bson.M{
		"googleToken":      token,
		"googleCalendarId": calendarID,
		"updatedAt":        time.Now().UTC(),
	})
}

func (r *MongoUserRepo) updateSetDocument(ctx context.Context, id string, updateDoc bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Wrap in $set to comply with MongoDB update syntax
	update := bson.M{"$set": updateDoc}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
