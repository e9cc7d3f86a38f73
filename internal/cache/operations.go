package cache

import (
	"os"
	"time"
)

// Set inserts or replaces an entry, evicting by LRU if the capacity or
// memory bound would otherwise be exceeded.
func (c *Cache[T]) Set(key string, value T, opts SetOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = c.opts.TTL
	}

	size := estimateSize(value)
	now := time.Now()
	e := &entry[T]{
		value:          value,
		sizeBytes:      size,
		expiresAt:      now.Add(ttl),
		lastAccessedAt: now,
		filePath:       opts.FilePath,
		tokenCount:     opts.TokenCount,
	}
	if opts.FilePath != "" {
		if hash, ok := hashFile(opts.FilePath); ok {
			e.fileHash = hash
		}
	}

	c.removeLocked(key)
	delete(c.evicted, key)
	c.entries[key] = e
	c.stats.MemorySizeBytes += size

	c.evictIfNeededLocked()
	c.maybeSweepLocked()
}

// Get looks up key, validating TTL and any referenced file's hash.
func (c *Cache[T]) Get(key string) Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		c.maybeSweepLocked()
		if c.evicted[key] {
			return Result[T]{MissReason: MissEvicted}
		}
		return Result[T]{MissReason: MissNotFound}
	}

	now := time.Now()
	if now.After(e.expiresAt) {
		c.removeLocked(key)
		c.stats.Misses++
		c.maybeSweepLocked()
		return Result[T]{MissReason: MissExpired}
	}

	if e.filePath != "" {
		hash, ok := hashFile(e.filePath)
		if !ok || hash != e.fileHash {
			c.removeLocked(key)
			c.stats.Misses++
			c.maybeSweepLocked()
			return Result[T]{MissReason: MissFileChanged}
		}
	}

	e.lastAccessedAt = now
	c.stats.Hits++
	c.stats.TokensSaved += e.tokenCount
	c.maybeSweepLocked()
	return Result[T]{Hit: true, Value: e.value}
}

// Invalidate removes key unconditionally.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache[T]) maybeSweepLocked() {
	c.opsSince++
	if c.opsSince >= c.opts.CleanupInterval {
		c.opsSince = 0
		c.sweepExpiredLocked()
	}
}

// evictIfNeededLocked evicts entries with the smallest lastAccessedAt
// until both the entry-count and memory bounds hold.
func (c *Cache[T]) evictIfNeededLocked() {
	for len(c.entries) > c.opts.MaxEntries || c.stats.MemorySizeBytes > c.opts.MaxMemoryBytes {
		var oldestKey string
		var oldestTime time.Time
		first := true
		for k, e := range c.entries {
			if first || e.lastAccessedAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.lastAccessedAt
				first = false
			}
		}
		if oldestKey == "" {
			return
		}
		c.removeLocked(oldestKey)
		c.evicted[oldestKey] = true
	}
}

func hashFile(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	return fastFileHash(info.ModTime().UnixMilli(), info.Size()), true
}
