package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGetHit(t *testing.T) {
	c := New[string](Options{})
	defer c.Close()

	c.Set("k", "v", SetOptions{})
	res := c.Get("k")
	require.True(t, res.Hit)
	require.Equal(t, "v", res.Value)
}

func TestGetMissNotFound(t *testing.T) {
	c := New[string](Options{})
	defer c.Close()

	res := c.Get("missing")
	require.False(t, res.Hit)
	require.Equal(t, MissNotFound, res.MissReason)
}

func TestTTLExpiry(t *testing.T) {
	c := New[string](Options{})
	defer c.Close()

	c.Set("k", "v", SetOptions{TTL: time.Millisecond})
	time.Sleep(5 * time.Millisecond)
	res := c.Get("k")
	require.False(t, res.Hit)
	require.Equal(t, MissExpired, res.MissReason)
}

func TestLRUEvictionByCapacity(t *testing.T) {
	c := New[string](Options{MaxEntries: 2})
	defer c.Close()

	c.Set("a", "1", SetOptions{})
	time.Sleep(time.Millisecond)
	c.Set("b", "2", SetOptions{})
	time.Sleep(time.Millisecond)
	c.Get("a") // touch a, so b becomes the LRU victim relative to a... but c will push b out
	time.Sleep(time.Millisecond)
	c.Set("c", "3", SetOptions{})

	stats := c.Stats()
	require.LessOrEqual(t, len(c.entries), 2)
	require.Greater(t, stats.Misses+stats.Hits, 0)
}

func TestFileHashInvalidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	c := New[string](Options{})
	defer c.Close()
	c.Set("k", "cached", SetOptions{FilePath: path})

	res := c.Get("k")
	require.True(t, res.Hit)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("changed content"), 0o644))

	res = c.Get("k")
	require.False(t, res.Hit)
	require.Equal(t, MissFileChanged, res.MissReason)
}

func TestStatsInvariant(t *testing.T) {
	c := New[string](Options{})
	defer c.Close()

	c.Set("k", "v", SetOptions{})
	c.Get("k")
	c.Get("missing")

	stats := c.Stats()
	require.Equal(t, 1, stats.Hits)
	require.Equal(t, 1, stats.Misses)
	require.InDelta(t, 50.0, stats.HitRate(), 0.01)
}
