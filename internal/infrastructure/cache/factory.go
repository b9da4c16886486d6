package cache

import (
	"context"
	"fmt"

	"github.com/cobranza/backend/internal/domain/shared"
	"github.com/cobranza/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Backends are the coordination primitives handed to the services
type Backends struct {
	Locker      shared.KeyedLocker
	Idempotency shared.IdempotencyStore
	// Client is nil when the in-process fallback is used
	Client *redis.Client
}

// Distributed reports whether the backends are shared between instances
func (b *Backends) Distributed() bool {
	return b.Client != nil
}

// Close releases the idempotency store and the Redis connection
func (b *Backends) Close() error {
	if err := b.Idempotency.Close(); err != nil {
		return err
	}
	if b.Client != nil {
		return b.Client.Close()
	}
	return nil
}

// Factory chooses between Redis and in-process backends
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connect               func(context.Context, config.RedisConfig) (*redis.Client, error)
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// in-process backends instead of failing startup
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a Factory. Fallback defaults to cfg.AllowFallback.
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: cfg.AllowFallback,
		connect:               NewRedisClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build connects to Redis when it is enabled and falls back to in-process
// backends when it is disabled, or unreachable with fallback allowed
func (f *Factory) Build(ctx context.Context) (*Backends, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-process locks and idempotency store")
		return f.inMemory(), nil
	}

	client, err := f.connect(ctx, f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis required for collector locks but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-process locks. "+
			"Collector serialization is not shared between instances.",
			zap.Error(err),
		)
		return f.inMemory(), nil
	}

	f.logger.Info("Using Redis locks and idempotency store", zap.String("addr", f.redisConfig.Addr()))
	return &Backends{
		Locker:      NewRedisLocker(client, f.logger),
		Idempotency: NewRedisIdempotencyStore(client, ""),
		Client:      client,
	}, nil
}

func (f *Factory) inMemory() *Backends {
	return &Backends{
		Locker:      NewKeyedMutex(),
		Idempotency: NewInMemoryIdempotencyStore(),
	}
}
