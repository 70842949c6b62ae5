package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
	Days int    `json:"days"`
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "Paris", Days: 3}, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "Paris", Days: 3}, got)
}

func TestMemoryCache_MissOnUnknownKey(t *testing.T) {
	c := NewMemoryCache()

	var got payload
	hit, err := c.Get(context.Background(), "nope", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "Rome"}, time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCache_Del(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Name: "Rome"}, time.Minute))
	require.NoError(t, c.Del(ctx, "k"))

	var got payload
	hit, _ := c.Get(ctx, "k", &got)
	assert.False(t, hit)
}

func TestMemoryCache_SweepDropsExpiredEntries(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	for i := 0; i < sweepThreshold; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), i, time.Nanosecond))
	}
	time.Sleep(5 * time.Millisecond)
	// This Set crosses the threshold and triggers the sweep.
	require.NoError(t, c.Set(ctx, "fresh", 1, time.Minute))

	c.mu.RLock()
	n := len(c.data)
	c.mu.RUnlock()
	assert.LessOrEqual(t, n, 2)
}
