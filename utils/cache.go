package utils

import (
	"context"
	"log"
	"time"

	"barberbook/config"

	"github.com/go-redis/redis/v8"
)

// AuthCachePrefix namespaces auth token hashes in Redis.
const AuthCachePrefix = "authToken:"

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching. An
// unreachable Redis leaves the client nil; callers treat a nil client as
// "caching disabled", so the server still runs, just without token revocation.
func InitAuthCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Redis (auth cache) unreachable, token revocation disabled: %v", err)
		return
	}
	AuthCacheClient = client
}

// GetAuthCacheClient returns the auth cache client.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// CacheAuthToken stores the hash of an issued token so the auth middleware can
// validate it without a database round trip.
func CacheAuthToken(client *redis.Client, username, tokenHash string, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	ctx := context.Background()
	return client.Set(ctx, AuthCachePrefix+username, tokenHash, ttl).Err()
}

// RevokeAuthToken removes a cached token hash, signing the account out.
func RevokeAuthToken(client *redis.Client, username string) error {
	if client == nil {
		return nil
	}
	ctx := context.Background()
	return client.Del(ctx, AuthCachePrefix+username).Err()
}
