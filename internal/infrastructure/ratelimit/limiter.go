// Package ratelimit limita los intentos de login por clave (IP o IP+email)
// en ventanas fijas. Dos implementaciones: en memoria para proceso único y
// Redis para despliegues con varias réplicas.
package ratelimit

import (
	"context"
	"time"
)

// Limiter decide si una petición identificada por key puede pasar.
// retryAfter solo es significativo cuando ok es false.
type Limiter interface {
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration, err error)
}
