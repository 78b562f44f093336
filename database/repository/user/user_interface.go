package userRepo

import (
	"context"
	"errors"

	"syncslot/models"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email. A missing user yields (nil, nil).
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByIDs retrieves every user whose ID is in ids.
	GetByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update modifies an existing user record.
	Update(ctx context.Context, user *models.User) error
	// SetTokenHash stores (or clears, with "") the hash of the active auth token.
	SetTokenHash(ctx context.Context, id, tokenHash string) error
	// SetGoogleToken stores the user's Google OAuth token.
	SetGoogleToken(ctx context.Context, id string, token *models.GoogleToken, calendarID string) error
	EnsureIndexes(ctx context.Context) error
}
