package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepEvery define a cada quantas verificações as chaves ociosas são removidas
const sweepEvery = 1024

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter mantém um token bucket por chave no processo
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	now     func() time.Time
	checks  int
}

// NewMemoryLimiter cria um limiter de limit requisições por window
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Check(_ context.Context, key string) (Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.checks++
	if m.checks%sweepEvery == 0 {
		m.sweep(now)
	}

	e, ok := m.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(rate.Every(m.window/time.Duration(m.limit)), m.limit)}
		m.entries[key] = e
	}
	e.lastSeen = now

	if !e.limiter.AllowN(now, 1) {
		return Decision{Allowed: false, RetryAfter: DefaultRetryAfter}, nil
	}
	return Decision{Allowed: true, Remaining: int(e.limiter.TokensAt(now))}, nil
}

// sweep remove chaves sem uso há mais de uma janela (bucket já estaria cheio)
func (m *MemoryLimiter) sweep(now time.Time) {
	for k, e := range m.entries {
		if now.Sub(e.lastSeen) > m.window {
			delete(m.entries, k)
		}
	}
}
