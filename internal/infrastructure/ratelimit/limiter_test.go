package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// MemoryLimiter
// ─────────────────────────────────────────────

func TestMemoryLimiter_AllowsUpToMax(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "intento %d debería pasar", i+1)
	}

	ok, retryAfter, err := l.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)

	ok, _, _ := l.Allow(context.Background(), "1.1.1.1")
	assert.True(t, ok)
	ok, _, _ = l.Allow(context.Background(), "1.1.1.1")
	assert.False(t, ok)

	ok, _, _ = l.Allow(context.Background(), "2.2.2.2")
	assert.True(t, ok, "otra clave no comparte contador")
}

func TestMemoryLimiter_WindowResets(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }

	ok, _, _ := l.Allow(context.Background(), "1.2.3.4")
	require.True(t, ok)
	ok, _, _ = l.Allow(context.Background(), "1.2.3.4")
	require.False(t, ok)

	now = now.Add(61 * time.Second)
	ok, _, _ = l.Allow(context.Background(), "1.2.3.4")
	assert.True(t, ok, "ventana vencida reinicia el contador")
}

func TestMemoryLimiter_SweepRemovesExpired(t *testing.T) {
	l := NewMemoryLimiter(5, time.Minute)
	now := time.Now()
	l.now = func() time.Time { return now }

	l.Allow(context.Background(), "viejo")
	now = now.Add(2 * time.Minute)
	l.Allow(context.Background(), "nuevo")

	l.Sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.entries, "viejo")
	assert.Contains(t, l.entries, "nuevo")
}

// ─────────────────────────────────────────────
// RedisLimiter
// ─────────────────────────────────────────────

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisLimiter_AllowsUpToMax(t *testing.T) {
	client := newTestRedis(t)
	l := NewRedisLimiter(client, 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "intento %d debería pasar", i+1)
	}

	ok, retryAfter, err := l.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRedisLimiter_WindowResets(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	l := NewRedisLimiter(client, 1, time.Minute)

	ok, _, err := l.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.True(t, ok)
	ok, _, _ = l.Allow(context.Background(), "1.2.3.4")
	require.False(t, ok)

	mr.FastForward(61 * time.Second)

	ok, _, err = l.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "tras expirar la clave el contador reinicia")
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	client := newTestRedis(t)
	l := NewRedisLimiter(client, 1, time.Minute)

	ok, _, _ := l.Allow(context.Background(), "login:1.1.1.1")
	assert.True(t, ok)
	ok, _, _ = l.Allow(context.Background(), "login:1.1.1.1")
	assert.False(t, ok)

	ok, _, _ = l.Allow(context.Background(), "login:2.2.2.2")
	assert.True(t, ok)
}
