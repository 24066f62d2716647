package rate

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter replica el algoritmo fixed-window del RedisLimiter sin
// dependencias externas. El estado no se comparte entre réplicas.
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu        sync.Mutex
	windows   map[string]*memWindow
	lastSweep time.Time
}

type memWindow struct {
	start time.Time
	hits  int64
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:     int64(max),
		Window:  window,
		windows: make(map[string]*memWindow),
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(l.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	// Barrido perezoso, a lo sumo una vez por ventana, para que las claves
	// que dejaron de llegar no acumulen estado de por vida.
	if now.Sub(l.lastSweep) > l.Window {
		l.sweep(now)
		l.lastSweep = now
	}

	w, ok := l.windows[key]
	if !ok || w.start.Before(winStart) {
		w = &memWindow{start: winStart}
		l.windows[key] = w
	}
	w.hits++

	ttl := winStart.Add(l.Window).Sub(now)
	allowed := w.hits <= l.Max
	remaining := l.Max - w.hits
	if remaining < 0 {
		remaining = 0
	}

	res := Result{
		Allowed:     allowed,
		Remaining:   remaining,
		CurrentHits: w.hits,
		WindowTTL:   ttl,
	}
	if !allowed {
		res.RetryAfter = ttl
	}
	return res, nil
}

// Cleanup elimina ventanas vencidas de inmediato. Allow ya barre solo;
// esto existe para forzarlo.
func (l *MemoryLimiter) Cleanup() {
	now := time.Now().UTC()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)
	l.lastSweep = now
}

// sweep asume l.mu tomado.
func (l *MemoryLimiter) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.start) > l.Window {
			delete(l.windows, k)
		}
	}
}
