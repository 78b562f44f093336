package user

import (
	"context"

	userRepo "syncslot/database/repository/user"
	"syncslot/models"

	"github.com/go-redis/redis/v8"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error)
	RevokeToken(ctx context.Context, userID string) error

	// User Management
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, name, timezone string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// AuthCache mirrors token hashes for the auth middleware. Nil disables it.
	AuthCache *redis.Client
}

func NewUserService(repo userRepo.UserRepository, authCache *redis.Client) *DefaultUserService {
	return &DefaultUserService{Repo: repo, AuthCache: authCache}
}
