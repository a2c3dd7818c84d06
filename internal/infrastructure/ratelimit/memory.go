package ratelimit

import (
	"context"
	"sync"
	"time"
)

var _ Limiter = (*MemoryLimiter)(nil)

type memoryEntry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter limitador de ventana fija en memoria. Sirve para un solo
// proceso; con varias réplicas usar RedisLimiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	max     int
	window  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter construye un limitador que permite max peticiones por
// clave dentro de cada ventana.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		max:     max,
		window:  window,
		now:     time.Now,
	}
}

// Allow registra un intento y decide si pasa.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, exists := l.entries[key]
	if !exists || now.After(e.resetAt) {
		l.entries[key] = &memoryEntry{count: 1, resetAt: now.Add(l.window)}
		return true, 0, nil
	}

	e.count++
	if e.count > l.max {
		return false, e.resetAt.Sub(now), nil
	}
	return true, 0, nil
}

// Sweep elimina las entradas cuya ventana ya venció. Pensado para correr
// periódicamente vía cron.
func (l *MemoryLimiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
