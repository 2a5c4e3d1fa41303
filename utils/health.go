package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Storage   string    `json:"storage"`
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// CheckHealth pings every backing service once and stores the result.
// A nil mongo client and no redis clients mean the in-memory store is in use.
func CheckHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) HealthStatus {
	status := HealthStatus{Storage: "memory", Mongo: true, CheckedAt: time.Now()}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	for _, client := range redisClients {
		status.Redis = append(status.Redis, client.Ping(pingCtx).Err() == nil)
	}
	if mongoClient != nil {
		status.Storage = "mongo"
		status.Mongo = mongoClient.Ping(pingCtx, nil) == nil
	}

	healthMu.Lock()
	currentHealth = status
	healthMu.Unlock()
	return status
}

// Healthy reports whether every dependency answered the last check.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

// StartHealthMonitor performs periodic health checks until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, interval time.Duration, redisClients []*redis.Client, mongoClient *mongo.Client) {
	CheckHealth(ctx, redisClients, mongoClient)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, redisClients, mongoClient)
			}
		}
	}()
}
