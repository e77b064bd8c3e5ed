package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 3})

	require.True(t, l.Allow("k"))
	require.True(t, l.Allow("k"))
	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"), "burst exhausted")
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 2, Burst: 1})

	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"))

	clock.advance(500 * time.Millisecond) // one token at rate 2/s
	require.True(t, l.Allow("k"))
	require.False(t, l.Allow("k"))
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 1})

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("b"))
	require.False(t, l.Allow("a"))
}

func TestTokenBucket_MaxBucketsDeniesNewKeys(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 1, MaxBuckets: 1})

	require.True(t, l.Allow("a"))
	require.False(t, l.Allow("b"), "bucket table full")
}

func TestTokenBucket_CleanupDropsIdleKeys(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewTokenBucketLimiter(clock, Config{Rate: 1, Burst: 1, TTL: time.Minute, MaxBuckets: 1})

	require.True(t, l.Allow("a"))

	// idle long enough for the cleanup pass to evict "a"
	clock.advance(3 * time.Minute)
	require.True(t, l.Allow("b"), "slot freed by TTL cleanup")
}

func TestNewTokenBucketPerWindow(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	l := NewTokenBucketPerWindow(clock, 10, time.Second, 0, 0)

	for i := 0; i < 10; i++ {
		require.True(t, l.Allow("k"), "request %d", i)
	}
	require.False(t, l.Allow("k"))
}
