package utils

import (
	"context"
	"log"
	"time"

	"showdan/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient holds cached exchange rates.
	CacheClient *redis.Client
	// LockClient is the dedicated client for distributed locks.
	LockClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the Redis client used for rate caching.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitLockCache initializes the Redis client used for locking.
func InitLockCache() {
	LockClient = newRedisClient(config.AppConfig.RedisLockDB, "Lock")
}

// GetLockClient returns the lock client.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockCache()
	}
	return LockClient
}
