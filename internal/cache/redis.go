package cache

import (
	"context"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog/log"
)

// Redis is the persisted cache tier backed by a redigo pool. All
// failures degrade to cache misses; Redis being down never fails a
// request.
type Redis struct {
	pool *redis.Pool
}

// NewRedis creates the Redis tier from a redis:// URL
func NewRedis(url string) *Redis {
	return &Redis{
		pool: &redis.Pool{
			MaxIdle:     3,
			IdleTimeout: 240 * time.Second,
			DialContext: func(ctx context.Context) (redis.Conn, error) {
				return redis.DialURLContext(ctx, url)
			},
			TestOnBorrow: func(c redis.Conn, t time.Time) error {
				if time.Since(t) < time.Minute {
					return nil
				}
				_, err := c.Do("PING")
				return err
			},
		},
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, treating as cache miss")
		return nil, false
	}
	defer conn.Close()

	value, err := redis.Bytes(conn.Do("GET", key))
	if err != nil {
		return nil, false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, skipping cache write")
		return
	}
	defer conn.Close()

	if _, err := conn.Do("SET", key, value, "PX", ttl.Milliseconds()); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis SET failed")
	}
}

func (r *Redis) Delete(ctx context.Context, key string) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return
	}
	defer conn.Close()

	if _, err := conn.Do("DEL", key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Redis DEL failed")
	}
}

// Close releases the connection pool
func (r *Redis) Close() error {
	return r.pool.Close()
}
