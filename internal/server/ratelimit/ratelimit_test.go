package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.now
	return l, clock
}

func TestTokenBucket_BurstAndRefill(t *testing.T) {
	start := time.Now()
	b := newTokenBucket(3, 1, start)

	for i := 0; i < 3; i++ {
		ok, _, _ := b.take(start)
		require.True(t, ok, "request %d", i+1)
	}
	ok, remaining, reset := b.take(start)
	assert.False(t, ok)
	assert.Zero(t, remaining)
	assert.Equal(t, start.Add(3*time.Second), reset)

	ok, _, _ = b.take(start.Add(1100 * time.Millisecond))
	assert.True(t, ok)
}

func TestLimiter_DefaultLimit(t *testing.T) {
	cfg := DefaultConfig(5)
	cfg.EndpointConfigs = nil
	l, clock := newTestLimiter(cfg)

	for i := 0; i < 5; i++ {
		ok, info := l.Allow("1.2.3.4", "/other", "GET")
		require.True(t, ok)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	ok, info := l.Allow("1.2.3.4", "/other", "GET")
	assert.False(t, ok)
	assert.Equal(t, 12*time.Second, info.RetryAfter)

	// Buckets are per client.
	ok, _ = l.Allow("5.6.7.8", "/other", "GET")
	assert.True(t, ok)

	clock.advance(13 * time.Second)
	ok, _ = l.Allow("1.2.3.4", "/other", "GET")
	assert.True(t, ok)
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(DefaultConfig(60))

	// /fill allows 15 per minute with a burst of 7.
	for i := 0; i < 7; i++ {
		ok, info := l.Allow("c", "/fill", "POST")
		require.True(t, ok)
		assert.Equal(t, 15, info.Limit)
	}
	ok, _ := l.Allow("c", "/fill", "POST")
	assert.False(t, ok)

	// Scanning is tracked separately.
	ok, _ = l.Allow("c", "/scan", "POST")
	assert.True(t, ok)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	cfg := DefaultConfig(1)
	l, _ := newTestLimiter(cfg)
	for i := 0; i < 10; i++ {
		ok, _ := l.Allow("c", "/health", "GET")
		require.True(t, ok)
	}
}

func TestLimiter_Lists(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.Whitelist = map[string]bool{"friend": true}
	cfg.Blacklist = map[string]bool{"foe": true}
	l, _ := newTestLimiter(cfg)

	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("friend", "/scan", "POST")
		require.True(t, ok)
	}
	ok, _ := l.Allow("foe", "/health", "GET")
	assert.False(t, ok)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: false})
	for i := 0; i < 100; i++ {
		ok, _ := l.Allow("c", "/fill", "POST")
		require.True(t, ok)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := DefaultConfig(600)
	cfg.EndpointConfigs = nil
	l, _ := newTestLimiter(cfg)

	var mu sync.Mutex
	allowed := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if ok, _ := l.Allow("c", "/x", "GET"); ok {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 600, allowed)
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(DefaultConfig(60))
	l.Allow("old", "/scan", "POST")
	clock.advance(2 * time.Hour)
	l.Allow("new", "/scan", "POST")

	l.cleanup()
	assert.Len(t, l.buckets, 1)
	assert.Contains(t, l.buckets, "new:/scan:POST")
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(nil)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs(60)

	assert.Equal(t, "/fill", MatchEndpoint("/fill", "POST", configs).Path)
	assert.Equal(t, "/fill/stream", MatchEndpoint("/fill/stream", "POST", configs).Path)
	assert.Equal(t, "/profile/", MatchEndpoint("/profile/validate", "POST", configs).Path)
	assert.Nil(t, MatchEndpoint("/fill", "GET", configs))
	assert.Zero(t, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "7")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
	cfg := LoadConfig(30)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 7, cfg.DefaultLimit)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig(30).Enabled)
}
