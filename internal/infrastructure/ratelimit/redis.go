package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ Limiter = (*RedisLimiter)(nil)

// RedisLimiter limitador de ventana fija sobre Redis (INCR + EXPIRE).
// El contador es compartido entre réplicas de la aplicación.
type RedisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	prefix string
}

// NewRedisLimiter construye un limitador que permite max peticiones por
// clave dentro de cada ventana.
func NewRedisLimiter(client *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		max:    max,
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow registra un intento y decide si pasa. El TTL se fija al crear la
// clave, de modo que la ventana arranca con el primer intento.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	if count > int64(l.max) {
		ttl, err := l.client.TTL(ctx, redisKey).Result()
		if err != nil {
			return false, 0, fmt.Errorf("ratelimit ttl: %w", err)
		}
		if ttl < 0 {
			ttl = l.window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}
