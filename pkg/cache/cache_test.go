package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New(Options{DefaultExpiration: time.Minute})

	c.Set("key", "value")
	v, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	c := New(Options{})

	c.SetWithExpiration("short", "value", 10*time.Millisecond)
	_, ok := c.Get("short")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("short")
	assert.False(t, ok)

	// Zero TTL means no expiration.
	c.SetWithExpiration("forever", "value", 0)
	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("forever")
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	c := New(Options{DefaultExpiration: time.Minute})

	c.Set("key", "value")
	c.Delete("key")
	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestMaxItemsEviction(t *testing.T) {
	c := New(Options{DefaultExpiration: time.Minute, MaxItems: 2})

	c.SetWithExpiration("a", 1, time.Minute)
	c.SetWithExpiration("b", 2, time.Hour)
	c.SetWithExpiration("c", 3, time.Hour)

	assert.Equal(t, 2, c.Len())
	// The entry closest to expiration was evicted.
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c := New(Options{DefaultExpiration: time.Minute, MaxItems: 2})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	assert.Equal(t, 2, c.Len())
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)
}
