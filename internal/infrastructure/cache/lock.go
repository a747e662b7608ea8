package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another holder owns the lock
var ErrLockHeld = errors.New("lock is held by another owner")

// UnlockFunc releases a lock previously acquired
type UnlockFunc func(ctx context.Context) error

// Locker grants short-lived exclusive ownership of a key
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

// releaseScript deletes the key only when the caller still owns it
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX
type RedisLocker struct {
	client redis.Cmdable
	prefix string
}

// NewRedisLocker creates a Redis-backed locker. Keys are namespaced by prefix.
func NewRedisLocker(client redis.Cmdable, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

// Lock acquires key for ttl
func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to release lock %s: %w", fullKey, err)
		}
		return nil
	}, nil
}

// MemoryLocker implements Locker on a MemoryStore for single-process deployments
type MemoryLocker struct {
	store  *MemoryStore
	prefix string
}

// NewMemoryLocker creates a process-local locker
func NewMemoryLocker(store *MemoryStore, prefix string) *MemoryLocker {
	return &MemoryLocker{store: store, prefix: prefix}
}

// Lock acquires key for ttl
func (l *MemoryLocker) Lock(_ context.Context, key string, ttl time.Duration) (UnlockFunc, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()
	if !l.store.SetNX(fullKey, token, ttl) {
		return nil, ErrLockHeld
	}
	return func(context.Context) error {
		l.store.CompareAndDelete(fullKey, token)
		return nil
	}, nil
}
