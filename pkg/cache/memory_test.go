package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "greeting", map[string]string{"text": "привет"}, time.Minute))

	var got map[string]string
	found, err := c.Get(ctx, "greeting", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "привет", got["text"])
}

func TestMemoryCache_Miss(t *testing.T) {
	var got string
	found, err := NewMemoryCache().Get(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got)
}

func TestMemoryCache_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache()
	c.Now = clock.Now

	require.NoError(t, c.Set(ctx, "page", "body", 20*time.Second))

	clock.Advance(19 * time.Second)
	var got string
	found, err := c.Get(ctx, "page", &got)
	require.NoError(t, err)
	assert.True(t, found)

	clock.Advance(time.Second)
	found, err = c.Get(ctx, "page", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry must expire exactly at the TTL boundary")
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Now()}
	c := NewMemoryCache()
	c.Now = clock.Now

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	clock.Advance(24 * 365 * time.Hour)

	var got int
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, got)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))

	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))

	var got int
	found, _ := c.Get(ctx, "a", &got)
	assert.False(t, found)
	found, _ = c.Get(ctx, "b", &got)
	assert.False(t, found)
}

func TestMemoryCache_SetSweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache()
	c.Now = clk.Now

	for i := 0; i < 10000; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("page:anon:/?page=%d", i), "x", 20*time.Second))
	}
	assert.Equal(t, 10000, c.Len())

	clk.Advance(24 * time.Hour)
	require.NoError(t, c.Set(ctx, "page:anon:/", "fresh", 20*time.Second))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_KeepsLiveEntriesOnSweep(t *testing.T) {
	ctx := context.Background()
	clk := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache()
	c.Now = clk.Now

	require.NoError(t, c.Set(ctx, "short", 1, time.Second))
	require.NoError(t, c.Set(ctx, "forever", 2, 0))

	clk.Advance(2 * time.Minute)
	require.NoError(t, c.Set(ctx, "new", 3, time.Hour))

	assert.Equal(t, 2, c.Len())
	var v int
	found, err := c.Get(ctx, "forever", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, v)
}

func TestMemoryCache_MaxEntries(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	c.MaxEntries = 3

	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Set(ctx, k, k, 0))
	}
	assert.Equal(t, 3, c.Len())

	var v string
	found, err := c.Get(ctx, "d", &v)
	require.NoError(t, err)
	assert.True(t, found, "newest key is kept")

	// overwriting an existing key never evicts
	require.NoError(t, c.Set(ctx, "d", "again", 0))
	assert.Equal(t, 3, c.Len())
}
