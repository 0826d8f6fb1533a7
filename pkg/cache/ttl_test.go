package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	t.Parallel()

	t.Run("get before expiry", func(t *testing.T) {
		t.Parallel()
		c := NewTTL[string, int](time.Minute)
		c.Set("a", 1)

		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("get after expiry evicts", func(t *testing.T) {
		t.Parallel()
		c := NewTTL[string, int](time.Minute)

		now := time.Now()
		c.now = func() time.Time { return now }
		c.Set("a", 1)

		c.now = func() time.Time { return now.Add(time.Minute + time.Second) }
		_, ok := c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("set refreshes the window", func(t *testing.T) {
		t.Parallel()
		c := NewTTL[string, int](time.Minute)

		now := time.Now()
		c.now = func() time.Time { return now }
		c.Set("a", 1)

		c.now = func() time.Time { return now.Add(50 * time.Second) }
		c.Set("a", 2)

		c.now = func() time.Time { return now.Add(90 * time.Second) }
		v, ok := c.Get("a")
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("sweep removes only expired entries", func(t *testing.T) {
		t.Parallel()
		c := NewTTL[string, int](time.Minute)

		now := time.Now()
		c.now = func() time.Time { return now }
		c.Set("old", 1)

		c.now = func() time.Time { return now.Add(30 * time.Second) }
		c.Set("fresh", 2)

		c.now = func() time.Time { return now.Add(70 * time.Second) }
		assert.Equal(t, 1, c.Sweep())
		assert.Equal(t, 1, c.Len())

		_, ok := c.Get("fresh")
		assert.True(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		c := NewTTL[string, int](time.Minute)
		c.Set("a", 1)
		c.Delete("a")
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("invalid ttl panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { NewTTL[string, int](0) })
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()
		c := NewTTL[int, int](time.Minute)

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				c.Set(i%10, i)
			}()
			go func() {
				defer wg.Done()
				c.Get(i % 10)
			}()
		}
		wg.Wait()
	})
}

func TestStartSweeper(t *testing.T) {
	t.Parallel()

	c := NewTTL[string, int](time.Nanosecond)
	c.Set("a", 1)

	stop := make(chan struct{})
	c.StartSweeper(time.Millisecond, stop)

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
	close(stop)
}
