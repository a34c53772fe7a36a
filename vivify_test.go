package switchboard

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresher(t *testing.T) {
	newCounted := func() (*Container, *atomic.Int32) {
		c := New()
		var builds atomic.Int32
		c.Register("mod.session", func() int { return int(builds.Add(1)) })
		c.Set("session", map[string]any{":": "mod.session"})
		return c, &builds
	}

	t.Run("serves the cached instance inside the window", func(t *testing.T) {
		c, builds := newCounted()

		r := NewRefresher(c, "session", time.Hour)
		now := time.Unix(1000, 0)
		r.now = func() time.Time { return now }

		first, err := r.Get()
		require.NoError(t, err)
		second, err := r.Get()
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, int32(1), builds.Load())
	})

	t.Run("rebuilds once the window lapses", func(t *testing.T) {
		c, builds := newCounted()

		r := NewRefresher(c, "session", time.Hour)
		now := time.Unix(1000, 0)
		r.now = func() time.Time { return now }

		_, err := r.Get()
		require.NoError(t, err)

		now = now.Add(2 * time.Hour)
		v, err := r.Get()
		require.NoError(t, err)

		assert.Equal(t, 2, v)
		assert.Equal(t, int32(2), builds.Load())
	})

	t.Run("container callers are unaffected until they ask again", func(t *testing.T) {
		c, _ := newCounted()

		r := NewRefresher(c, "session", time.Hour)
		now := time.Unix(1000, 0)
		r.now = func() time.Time { return now }

		first, err := r.Get()
		require.NoError(t, err)

		now = now.Add(2 * time.Hour)
		refreshed, err := r.Get()
		require.NoError(t, err)
		assert.NotEqual(t, first, refreshed)

		direct, err := c.Get("session")
		require.NoError(t, err)
		assert.Equal(t, refreshed, direct)
	})
}
