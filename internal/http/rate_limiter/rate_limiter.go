package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Visitors hands out one token bucket per client address.
type Visitors struct {
	rps   rate.Limit
	burst int
	idle  time.Duration

	mu       sync.Mutex
	visitors map[string]*clientLimiter
}

func NewVisitors(rps float64, burst int, idle time.Duration) *Visitors {
	return &Visitors{
		rps:      rate.Limit(rps),
		burst:    burst,
		idle:     idle,
		visitors: make(map[string]*clientLimiter),
	}
}

func (v *Visitors) GetVisitor(ip string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, exists := v.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(v.rps, v.burst)
		v.visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	c.lastSeen = time.Now()
	return c.limiter
}

// StartVisitorCleanupLoop forgets idle visitors every interval until ctx is done.
func (v *Visitors) StartVisitorCleanupLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.sweep(time.Now())
		}
	}
}

func (v *Visitors) sweep(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for ip, c := range v.visitors {
		if now.Sub(c.lastSeen) > v.idle {
			delete(v.visitors, ip)
		}
	}
}

func (v *Visitors) CleanupAllVisitors() {
	v.mu.Lock()
	v.visitors = make(map[string]*clientLimiter)
	v.mu.Unlock()
}

func (v *Visitors) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.visitors)
}
