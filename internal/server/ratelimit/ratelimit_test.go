package ratelimit

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock drives bucket refills without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.CleanupInterval = 0 // no background goroutine under test
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	clock := newFakeClock()
	l.now = clock.now
	return l, clock
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   Tier
	}{
		{http.MethodPost, "/reports", TierGenerate},
		{http.MethodPost, "/reports/", TierGenerate},
		{http.MethodPost, "/reports/validate", TierValidate},
		{http.MethodGet, "/health", TierUnlimited},
		{http.MethodGet, "/reports", TierDefault},
		{http.MethodPost, "/health", TierDefault},
		{http.MethodGet, "/anything", TierDefault},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.method, tt.path), "%s %s", tt.method, tt.path)
	}
}

func TestGenerateBurstThenDeny(t *testing.T) {
	l, clock := newTestLimiter(t, nil)

	// The default generate quota allows a burst of 2.
	first := l.Allow("10.0.0.1", TierGenerate)
	require.True(t, first.Allowed)
	assert.Equal(t, 10, first.Limit)
	assert.Equal(t, 1, first.Remaining)

	second := l.Allow("10.0.0.1", TierGenerate)
	require.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third := l.Allow("10.0.0.1", TierGenerate)
	require.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)
	assert.Greater(t, third.RetryAfter, time.Duration(0))
	assert.True(t, third.ResetAt.After(clock.now()), "reset must lie in the future")
}

func TestGenerateRefillsOverTime(t *testing.T) {
	l, clock := newTestLimiter(t, nil)

	l.Allow("10.0.0.1", TierGenerate)
	l.Allow("10.0.0.1", TierGenerate)
	require.False(t, l.Allow("10.0.0.1", TierGenerate).Allowed)

	// 10 per hour refills one token every 6 minutes.
	clock.advance(7 * time.Minute)
	assert.True(t, l.Allow("10.0.0.1", TierGenerate).Allowed)
	assert.False(t, l.Allow("10.0.0.1", TierGenerate).Allowed)
}

func TestTiersHaveSeparateBudgets(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	l.Allow("10.0.0.1", TierGenerate)
	l.Allow("10.0.0.1", TierGenerate)
	require.False(t, l.Allow("10.0.0.1", TierGenerate).Allowed)

	// An exhausted generate budget must not block validation.
	d := l.Allow("10.0.0.1", TierValidate)
	assert.True(t, d.Allowed)
	assert.Equal(t, 100, d.Limit)
}

func TestClientsHaveSeparateBudgets(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	l.Allow("10.0.0.1", TierGenerate)
	l.Allow("10.0.0.1", TierGenerate)
	require.False(t, l.Allow("10.0.0.1", TierGenerate).Allowed)

	assert.True(t, l.Allow("10.0.0.2", TierGenerate).Allowed)
}

func TestUnlimitedTierNeverThrottles(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	for i := 0; i < 500; i++ {
		d := l.Allow("10.0.0.1", TierFor(http.MethodGet, "/health"))
		require.True(t, d.Allowed)
		assert.Equal(t, 0, d.Limit)
	}
}

func TestUnknownTierFallsBackToDefaultQuota(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	d := l.Allow("10.0.0.1", Tier("mystery"))
	assert.True(t, d.Allowed)
	assert.Equal(t, 1000, d.Limit)
}

func TestAllowListBypassesQuotas(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowList["10.0.0.9"] = true
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 50; i++ {
		require.True(t, l.Allow("10.0.0.9", TierGenerate).Allowed)
	}
}

func TestDenyListAlwaysRefuses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DenyList["10.0.0.66"] = true
	l, _ := newTestLimiter(t, cfg)

	assert.False(t, l.Allow("10.0.0.66", TierValidate).Allowed)
	assert.False(t, l.Allow("10.0.0.66", TierGenerate).Allowed)
	assert.True(t, l.Allow("10.0.0.67", TierValidate).Allowed)
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 100; i++ {
		require.True(t, l.Allow("10.0.0.1", TierGenerate).Allowed)
	}
}

func TestConcurrentChargesNeverOverspend(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	// Frozen clock, so the validate burst of 10 is the hard ceiling.
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("10.0.0.1", TierValidate).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}

func TestEvictIdleForgetsStaleClients(t *testing.T) {
	l, clock := newTestLimiter(t, nil)

	l.Allow("10.0.0.1", TierGenerate)
	l.Allow("10.0.0.1", TierGenerate)
	require.False(t, l.Allow("10.0.0.1", TierGenerate).Allowed)

	clock.advance(2 * idleEviction)
	l.evictIdle(clock.now().Add(-idleEviction))

	// The evicted client starts over with a full burst.
	d := l.Allow("10.0.0.1", TierGenerate)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_GENERATE_PER_HOUR", "3")
	t.Setenv("RATE_LIMIT_VALIDATE_PER_MINUTE", "7")
	t.Setenv("RATE_LIMIT_ALLOWLIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_DENYLIST", "")

	cfg := LoadConfig()
	require.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.Quotas[TierGenerate].Limit)
	assert.Equal(t, 7, cfg.Quotas[TierValidate].Limit)
	assert.True(t, cfg.AllowList["10.0.0.1"])
	assert.True(t, cfg.AllowList["10.0.0.2"])
	assert.Empty(t, cfg.DenyList)
}

func TestLoadConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
