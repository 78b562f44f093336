package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"syncslot/config"
	"syncslot/models"
	"syncslot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// verifyPasswordComplexity requires 8+ characters with upper, lower and digit.
func verifyPasswordComplexity(pw string) error {
	if len(pw) < 8 {
		return utils.NewInvalidError("password must be at least 8 characters long")
	}
	if !upperPattern.MatchString(pw) {
		return utils.NewInvalidError("password must include at least one uppercase letter")
	}
	if !lowerPattern.MatchString(pw) {
		return utils.NewInvalidError("password must include at least one lowercase letter")
	}
	if !digitPattern.MatchString(pw) {
		return utils.NewInvalidError("password must include at least one number")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user and signs them in.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, utils.NewInvalidError("name is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, utils.NewInvalidError("a valid email is required")
	}
	if err := verifyPasswordComplexity(req.Password); err != nil {
		return nil, err
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, utils.NewInvalidError("unknown timezone %q", req.Timezone)
		}
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, utils.NewConflictError("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Timezone:     req.Timezone,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		utils.GetLogger().Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	utils.GetLogger().Info("User registered", zap.String("userID", user.ID))

	return s.issueToken(ctx, user)
}

// Authenticate checks the password and issues a fresh token, replacing any
// previously issued one.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		utils.GetLogger().Error("Authenticate: Failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	return s.issueToken(ctx, userRec)
}

func (s *DefaultUserService) issueToken(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, config.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, user.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	s.cacheTokenHash(ctx, user.ID, tokenHash)

	return &models.AuthResponse{
		ID:       user.ID,
		Token:    token,
		Name:     user.Name,
		Email:    user.Email,
		Timezone: user.Timezone,
	}, nil
}

func (s *DefaultUserService) cacheTokenHash(ctx context.Context, userID, tokenHash string) {
	if s.AuthCache == nil {
		return
	}
	key := utils.AuthCachePrefix + userID
	if err := s.AuthCache.Set(ctx, key, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache token hash", zap.String("userID", userID), zap.Error(err))
	}
}

// RevokeToken invalidates the user's current token.
func (s *DefaultUserService) RevokeToken(ctx context.Context, userID string) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Warn("Failed to clear auth cache", zap.String("userID", userID), zap.Error(err))
		}
	}
	utils.GetLogger().Info("Token revoked", zap.String("userID", userID))
	return nil
}
