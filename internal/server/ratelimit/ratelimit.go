// Package ratelimit throttles API clients with per-tier token buckets.
// Each client carries one bucket per cost tier rather than one global
// budget, so a burst of cheap validations cannot starve report builds and
// an exhausted generate budget still lets the client validate requests.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket with continuous refill. Levels are fractional
// so slow rates (a few tokens per hour) accumulate between calls.
type bucket struct {
	capacity float64
	rate     float64 // tokens per second
	level    float64
	updated  time.Time
}

func newBucket(q Quota, now time.Time) *bucket {
	c := float64(q.capacity())
	return &bucket{
		capacity: c,
		rate:     float64(q.Limit) / q.Window.Seconds(),
		level:    c,
		updated:  now,
	}
}

func (b *bucket) refill(now time.Time) {
	b.level += now.Sub(b.updated).Seconds() * b.rate
	if b.level > b.capacity {
		b.level = b.capacity
	}
	b.updated = now
}

// take consumes one token when available.
func (b *bucket) take(now time.Time) bool {
	b.refill(now)
	if b.level < 1 {
		return false
	}
	b.level--
	return true
}

// untilNextToken reports how long until one whole token is available.
func (b *bucket) untilNextToken() time.Duration {
	if b.level >= 1 {
		return 0
	}
	return time.Duration((1 - b.level) / b.rate * float64(time.Second))
}

// untilFull reports how long until the bucket is back at capacity.
func (b *bucket) untilFull() time.Duration {
	if b.level >= b.capacity {
		return 0
	}
	return time.Duration((b.capacity - b.level) / b.rate * float64(time.Second))
}

// Decision is the outcome of one Allow call; its fields feed the
// X-RateLimit response headers.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter tracks one token bucket per client and tier.
type Limiter struct {
	cfg *Config
	now func() time.Time

	mu         sync.Mutex
	buckets    map[string]*bucket
	lastCharge map[string]time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// idleEviction is how long an uncharged client bucket survives.
const idleEviction = time.Hour

// NewLimiter creates a limiter; a nil config means the default tiering.
func NewLimiter(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Limiter{
		cfg:        cfg,
		now:        time.Now,
		buckets:    make(map[string]*bucket),
		lastCharge: make(map[string]time.Time),
	}
	if cfg.Enabled && cfg.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(cfg.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanupLoop()
	}
	return l
}

// Allow charges one request against the client's bucket for the tier.
func (l *Limiter) Allow(clientID string, tier Tier) Decision {
	if !l.cfg.Enabled || tier == TierUnlimited || l.cfg.AllowList[clientID] {
		return Decision{Allowed: true}
	}
	if l.cfg.DenyList[clientID] {
		return Decision{Allowed: false}
	}

	quota, ok := l.cfg.Quotas[tier]
	if !ok {
		quota = l.cfg.Quotas[TierDefault]
	}
	if quota.Limit <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	key := clientID + ":" + string(tier)
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(quota, now)
		l.buckets[key] = b
	}
	l.lastCharge[key] = now

	d := Decision{
		Allowed:   b.take(now),
		Limit:     quota.Limit,
		Remaining: int(b.level),
	}
	d.ResetAt = now.Add(b.untilFull())
	if !d.Allowed {
		d.RetryAfter = b.untilNextToken()
	}
	return d
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictIdle(l.now().Add(-idleEviction))
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops buckets not charged since the cutoff.
func (l *Limiter) evictIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastCharge {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastCharge, key)
		}
	}
}

// Stop halts the background eviction.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
