package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	return NewWithClock[string](ttl, clock.now), clock
}

func TestGetOrComputeCachesWithinTTL(t *testing.T) {
	c, clock := newTestCache(10 * time.Minute)

	calls := 0
	compute := func(ctx context.Context) (string, error) {
		calls++
		return "결과", nil
	}

	v, cached, err := c.GetOrCompute(context.Background(), "analysis", compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "결과", v)

	clock.advance(9 * time.Minute)
	v, cached, err = c.GetOrCompute(context.Background(), "analysis", compute)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, "결과", v)
	assert.Equal(t, 1, calls)
}

func TestGetOrComputeRecomputesAfterExpiry(t *testing.T) {
	c, clock := newTestCache(10 * time.Minute)

	calls := 0
	compute := func(ctx context.Context) (string, error) {
		calls++
		return "결과", nil
	}

	_, _, err := c.GetOrCompute(context.Background(), "analysis", compute)
	require.NoError(t, err)

	clock.advance(10 * time.Minute)
	_, cached, err := c.GetOrCompute(context.Background(), "analysis", compute)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, calls)
}

func TestGetOrComputeErrorIsNotCached(t *testing.T) {
	c, _ := newTestCache(10 * time.Minute)

	_, _, err := c.GetOrCompute(context.Background(), "analysis", func(ctx context.Context) (string, error) {
		return "", errors.New("provider unavailable")
	})
	require.Error(t, err)

	_, ok := c.Lookup("analysis")
	assert.False(t, ok)
}

func TestGetOrComputeFirstStoredResultWins(t *testing.T) {
	c, _ := newTestCache(10 * time.Minute)

	// Simulate a concurrent computation landing while ours was in flight:
	// the compute callback stores a competing value before returning.
	v, cached, err := c.GetOrCompute(context.Background(), "analysis", func(ctx context.Context) (string, error) {
		_, ferr := c.ForceFresh(ctx, "analysis", func(context.Context) (string, error) {
			return "먼저 끝난 결과", nil
		})
		require.NoError(t, ferr)
		return "나중 결과", nil
	})
	require.NoError(t, err)

	// The stored value owns the freshness window; our own result is discarded.
	assert.Equal(t, "먼저 끝난 결과", v)
	assert.False(t, cached)

	stored, ok := c.Lookup("analysis")
	require.True(t, ok)
	assert.Equal(t, "먼저 끝난 결과", stored)
}

func TestForceFreshReplacesFreshEntry(t *testing.T) {
	c, _ := newTestCache(10 * time.Minute)

	_, _, err := c.GetOrCompute(context.Background(), "analysis", func(ctx context.Context) (string, error) {
		return "이전", nil
	})
	require.NoError(t, err)

	v, err := c.ForceFresh(context.Background(), "analysis", func(ctx context.Context) (string, error) {
		return "갱신", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "갱신", v)

	stored, ok := c.Lookup("analysis")
	require.True(t, ok)
	assert.Equal(t, "갱신", stored)
}

func TestForceFreshErrorKeepsOldEntry(t *testing.T) {
	c, _ := newTestCache(10 * time.Minute)

	_, _, err := c.GetOrCompute(context.Background(), "analysis", func(ctx context.Context) (string, error) {
		return "이전", nil
	})
	require.NoError(t, err)

	_, err = c.ForceFresh(context.Background(), "analysis", func(ctx context.Context) (string, error) {
		return "", errors.New("generation failed")
	})
	require.Error(t, err)

	stored, ok := c.Lookup("analysis")
	require.True(t, ok)
	assert.Equal(t, "이전", stored)
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(10 * time.Minute)

	assert.False(t, c.Invalidate("missing"))

	_, _, err := c.GetOrCompute(context.Background(), "analysis", func(ctx context.Context) (string, error) {
		return "결과", nil
	})
	require.NoError(t, err)

	assert.True(t, c.Invalidate("analysis"))
	_, ok := c.Lookup("analysis")
	assert.False(t, ok)
}

func TestInvalidateAll(t *testing.T) {
	c, _ := newTestCache(10 * time.Minute)

	for _, tag := range []string{"a", "b"} {
		_, _, err := c.GetOrCompute(context.Background(), tag, func(ctx context.Context) (string, error) {
			return "v", nil
		})
		require.NoError(t, err)
	}

	tags := c.InvalidateAll()
	assert.ElementsMatch(t, []string{"a", "b"}, tags)
	assert.Empty(t, c.InvalidateAll())
}
