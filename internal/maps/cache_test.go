package maps

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	c := newTTLCache(10*time.Millisecond, 100)

	c.set("a", cachedLocation{lat: 1, lng: 2})
	got, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, cachedLocation{lat: 1, lng: 2}, got)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.get("a")
	assert.False(t, ok)
}

func TestTTLCacheEviction(t *testing.T) {
	c := newTTLCache(time.Minute, 10)

	for i := 0; i < 25; i++ {
		c.set(fmt.Sprintf("key-%d", i), cachedLocation{lat: float64(i)})
	}

	// The cache must never hold more than its configured maximum.
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()
	assert.LessOrEqual(t, size, 10)
}
