package drivers

import (
	"context"
	"fmt"
	"time"

	"github.com/shirouto/dsprobe/types"

	"github.com/go-redis/redis/v8"
)

type redisProvider struct {
	name   string
	redis  *redis.Client
	Config types.IRedis
}

func (r *redisProvider) Name() string {
	return r.name
}

func (r *redisProvider) Dialect() types.Dialect {
	return types.DialectRedis
}

func (r *redisProvider) Open(ctx context.Context) error {
	r.redis = redis.NewClient(&redis.Options{
		Addr:        r.Config.GetDsn(),
		Username:    r.Config.GetUsername(),
		Password:    r.Config.GetPassword(),
		DB:          r.Config.GetDatabase(),
		DialTimeout: time.Duration(r.Config.GetConnectTimeout()) * time.Second,
		ReadTimeout: time.Duration(r.Config.GetReadTimeout()) * time.Second,
		MaxRetries:  r.Config.GetMaxRetries(),
	})
	return nil
}

// Validate sends PING; the dial happens lazily, so the connect timeout is
// exercised here rather than in Open.
func (r *redisProvider) Validate(ctx context.Context) error {
	if r.redis == nil {
		return fmt.Errorf("redis: validate before open")
	}
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

func (r *redisProvider) Close() error {
	if r.redis == nil {
		return nil
	}
	return r.redis.Close()
}
