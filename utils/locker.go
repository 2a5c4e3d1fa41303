package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLockTimeout is returned when a lock could not be acquired before the context ended.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// Locker serializes work on a key across goroutines (LocalLocker) or processes (RedisLocker).
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// releaseScript deletes the lock only if it is still held by the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX.
type RedisLocker struct {
	Client     *redis.Client
	TTL        time.Duration
	RetryDelay time.Duration
	Prefix     string
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{Client: client, TTL: ttl, RetryDelay: 25 * time.Millisecond, Prefix: "lock:"}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := l.Prefix + key
	token := uuid.NewString()

	for {
		ok, err := l.Client.SetNX(ctx, fullKey, token, l.TTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		case <-time.After(l.RetryDelay):
		}
	}

	release := func() {
		relCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(relCtx, l.Client, []string{fullKey}, token).Err(); err != nil && err != redis.Nil {
			GetLogger().Warn("failed to release lock", zap.String("key", fullKey), zap.Error(err))
		}
	}
	return release, nil
}

// LocalLocker implements Locker with one mutex per key. It only protects a single process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	return ch
}

func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
	}
	var once sync.Once
	return func() { once.Do(func() { <-ch }) }, nil
}
