// Package lock provides named, expiring mutual-exclusion locks used to keep
// long-running per-company jobs from overlapping.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when the lock is held by someone else.
var ErrNotObtained = errors.New("lock not obtained")

// Lock is a held lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker obtains locks by key.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// Key builds the lock key for a job scoped to a company.
func Key(job, companyID string) string {
	return fmt.Sprintf("gl:%s:%s", job, companyID)
}

// RedisLocker is a Locker shared by every instance pointed at the same Redis.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker wraps an existing redis client.
func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

// Connect opens a redis client and checks it with a ping.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Obtain tries to take key for ttl, retrying briefly before giving up.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(200*time.Millisecond), 5),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return lk, nil
}

// LocalLocker is an in-process Locker for single-instance deployments.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

// NewLocalLocker creates an empty LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]time.Time)}
}

// Obtain takes key unless another holder has it and its ttl has not run out.
func (l *LocalLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Lock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expires, ok := l.held[key]; ok && now.Before(expires) {
		return nil, ErrNotObtained
	}
	expires := now.Add(ttl)
	l.held[key] = expires
	return &localLock{parent: l, key: key, expires: expires}, nil
}

type localLock struct {
	parent  *LocalLocker
	key     string
	expires time.Time
}

func (lk *localLock) Release(context.Context) error {
	lk.parent.mu.Lock()
	defer lk.parent.mu.Unlock()
	// A lock that expired and was taken over belongs to the new holder.
	if lk.parent.held[lk.key].Equal(lk.expires) {
		delete(lk.parent.held, lk.key)
	}
	return nil
}
