package middleware

import (
	"net/http"
	"strings"

	userRepo "syncslot/database/repository/user"
	"syncslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: msg})
}

// JWTAuthUserMiddleware accepts a bearer token only if it is the latest one
// issued to its user. The token hash is checked against the auth cache first
// and the user document on a miss. A nil authCache skips the cache.
func JWTAuthUserMiddleware(repo userRepo.UserRepository, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Retrieve token from header.
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c, "Insufficient authorization")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			unauthorized(c, "Insufficient authorization")
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}
		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil && cachedHash == computedHash:
				c.Set("userID", userID)
				c.Next()
				return
			case err == nil:
				unauthorized(c, "Token mismatch")
				return
			case err != redis.Nil:
				utils.GetLogger().Warn("Auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		// Cache miss: Query the database.
		usr, err := repo.GetByIDWithProjection(ctx, userID, bson.M{"id": 1, "tokenHash": 1})
		if err != nil || usr == nil {
			unauthorized(c, "Authentication error")
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			unauthorized(c, "Token mismatch")
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user set by JWTAuthUserMiddleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString("userID")
}
