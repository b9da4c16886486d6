package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultLockPrefix = "cobranza:lock:"
	defaultLockTTL    = 30 * time.Second
	defaultLockRetry  = 50 * time.Millisecond
)

// releaseScript deletes the lock only if it still carries our token, so an
// expired holder cannot release a lock that was taken over by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a KeyedLocker shared by every instance of the service.
// Keys are taken with SET NX PX and a random token.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	retry     time.Duration
	logger    *zap.Logger
}

// RedisLockerOption configures a RedisLocker
type RedisLockerOption func(*RedisLocker)

// WithLockTTL sets how long a lock survives a crashed holder
func WithLockTTL(ttl time.Duration) RedisLockerOption {
	return func(l *RedisLocker) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithLockRetry sets the polling interval while a key is held
func WithLockRetry(d time.Duration) RedisLockerOption {
	return func(l *RedisLocker) {
		if d > 0 {
			l.retry = d
		}
	}
}

// NewRedisLocker creates a RedisLocker
func NewRedisLocker(client *redis.Client, logger *zap.Logger, opts ...RedisLockerOption) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &RedisLocker{
		client:    client,
		keyPrefix: defaultLockPrefix,
		ttl:       defaultLockTTL,
		retry:     defaultLockRetry,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock polls until key is acquired or ctx is done
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.keyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()
	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return l.releaser(redisKey, token), nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) releaser(redisKey, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() { l.release(redisKey, token) })
	}
}

func (l *RedisLocker) release(redisKey, token string) {
	// the caller's ctx may already be cancelled
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	n, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
	if err != nil {
		l.logger.Warn("Failed to release lock", zap.String("key", redisKey), zap.Error(err))
		return
	}
	if n == 0 {
		l.logger.Warn("Lock expired before release", zap.String("key", redisKey))
	}
}

var _ shared.KeyedLocker = (*RedisLocker)(nil)
