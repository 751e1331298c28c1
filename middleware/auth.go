package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	accountRepo "barberbook/database/repository/account"
	"barberbook/models"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware.
const (
	CtxUsername = "username"
	CtxRole     = "role"
	CtxBarberID = "barberID"
)

// JWTAuthMiddleware validates the bearer token, checks it against the auth
// cache (revocation), and loads the account into the request context.
func JWTAuthMiddleware(accounts accountRepo.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		username, _, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		// Revocation check against the auth cache; a miss is tolerated so the
		// server still works without Redis.
		if authCache := utils.GetAuthCacheClient(); authCache != nil {
			ctx := context.Background()
			cacheKey := utils.AuthCachePrefix + username
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			switch {
			case err == nil:
				if cachedHash != utils.HashToken(tokenString) {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
			case err != redis.Nil:
				zap.L().Warn("auth cache unavailable, falling back to token validation only", zap.Error(err))
			}
		}

		acct, err := accounts.GetByUsername(username)
		if err != nil || acct == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		c.Set(CtxUsername, acct.Username)
		c.Set(CtxRole, acct.Role)
		c.Set(CtxBarberID, acct.BarberID)
		c.Next()
	}
}

// RequireOwner aborts unless the authenticated account has the owner role.
// Must run after JWTAuthMiddleware.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != models.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
			return
		}
		c.Next()
	}
}
