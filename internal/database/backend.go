package database

import (
	"context"
	"fmt"

	"github.com/pageza/nutriai/backend/config"
	"github.com/pageza/nutriai/backend/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Connections holds the clients opened for the configured backend. Redis
// and DB may be nil.
type Connections struct {
	Backend storage.Backend
	Redis   *redis.Client
	DB      *gorm.DB
	close   []func() error
}

// Ping reports whether the storage backend is reachable.
func (c *Connections) Ping(ctx context.Context) error {
	switch {
	case c.DB != nil:
		return HealthCheck(ctx, c.DB)
	case c.Redis != nil:
		if _, ok := c.Backend.(*storage.RedisBackend); ok {
			return c.Redis.Ping(ctx).Err()
		}
	}
	return nil
}

// Close releases every connection.
func (c *Connections) Close() error {
	var first error
	for _, fn := range c.close {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open builds the storage backend selected by cfg. The redis client is also
// returned for the rate limiter when one can be reached, even if storage
// itself does not use redis.
func Open(cfg *config.Config, log *zap.Logger) (*Connections, error) {
	conns := &Connections{}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		conns.Backend = storage.NewMemoryBackend()
	case config.BackendRedis:
		client, err := NewRedisClient(cfg, log)
		if err != nil {
			return nil, err
		}
		conns.Redis = client
		conns.close = append(conns.close, client.Close)
		conns.Backend = storage.NewRedisBackend(client, cfg.RedisKeyPrefix)
	case config.BackendSQLite, config.BackendPostgres:
		db, err := New(cfg, log)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("error getting database handle: %w", err)
		}
		conns.close = append(conns.close, sqlDB.Close)
		conns.DB = db
		conns.Backend = storage.NewGormBackend(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if conns.Redis == nil && cfg.RedisURL != "" {
		client, err := NewRedisClient(cfg, log)
		if err != nil {
			// Continue without rate limiting if Redis is not available
			log.Warn("redis unavailable, generation will not be rate limited", zap.Error(err))
		} else {
			conns.Redis = client
			conns.close = append(conns.close, client.Close)
		}
	}

	return conns, nil
}
