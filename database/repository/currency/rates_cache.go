package currencyRepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"showdan/database"
	"showdan/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const missingRate = "none"

// CachedRateTable keeps lookups in Redis for TTL, including misses.
// Cache failures fall through to the backing table.
type CachedRateTable struct {
	Next   RateTable
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewCachedRateTable(next RateTable, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRateTable {
	return &CachedRateTable{Next: next, Client: client, TTL: ttl, Logger: logger}
}

func rateKey(from, to string) string {
	return fmt.Sprintf("rate:%s:%s", from, to)
}

func (c *CachedRateTable) Lookup(ctx context.Context, from, to string) (*models.ExchangeRate, error) {
	key := rateKey(from, to)

	cached, err := c.Client.Get(ctx, key).Result()
	switch {
	case err == nil && cached == missingRate:
		return nil, fmt.Errorf("rate %s->%s: %w", from, to, database.ErrNotFound)
	case err == nil:
		if v, perr := strconv.ParseFloat(cached, 64); perr == nil {
			return &models.ExchangeRate{From: from, To: to, Rate: v}, nil
		}
	case err != redis.Nil:
		c.Logger.Warn("rate cache read failed", zap.String("key", key), zap.Error(err))
	}

	rate, err := c.Next.Lookup(ctx, from, to)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.store(ctx, key, missingRate)
		}
		return nil, err
	}
	c.store(ctx, key, strconv.FormatFloat(rate.Rate, 'g', -1, 64))
	return rate, nil
}

func (c *CachedRateTable) store(ctx context.Context, key, value string) {
	if err := c.Client.Set(ctx, key, value, c.TTL).Err(); err != nil {
		c.Logger.Warn("rate cache write failed", zap.String("key", key), zap.Error(err))
	}
}
