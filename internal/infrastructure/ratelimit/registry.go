// Package ratelimit keeps one token bucket per client key.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// entry is a limiter and the last time it was used
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Registry is a thread-safe set of per-key limiters. Idle limiters are
// evicted so the map does not grow with every client ever seen.
type Registry struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	data    map[string]*entry
	mutex   sync.Mutex
	now     func() time.Time
}

// NewRegistry creates a registry allowing perMinute requests per key with
// the given burst. Call Run to start evicting idle keys.
func NewRegistry(perMinute, burst int, idleTTL time.Duration) *Registry {
	if burst <= 0 {
		burst = 1
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &Registry{
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		idleTTL: idleTTL,
		data:    make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow reports whether one more request for key may proceed now
func (r *Registry) Allow(key string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	e, exists := r.data[key]
	if !exists {
		e = &entry{limiter: rate.NewLimiter(r.limit, r.burst)}
		r.data[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Evict removes limiters idle for longer than the TTL
func (r *Registry) Evict() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	removed := 0
	for key, e := range r.data {
		if now.Sub(e.lastSeen) > r.idleTTL {
			delete(r.data, key)
			removed++
		}
	}
	return removed
}

// Size returns the current number of tracked keys
func (r *Registry) Size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.data)
}

// Run evicts idle keys every interval until done is closed
func (r *Registry) Run(done <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			r.Evict()
		}
	}
}
