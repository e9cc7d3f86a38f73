// Package cache implements the smart cache: an in-memory, mutex-guarded
// store of entries bounded by count and estimated memory, with LRU
// eviction, per-entry TTL, file-hash invalidation, and a periodic
// expiration sweep.
package cache

import (
	"encoding/json"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// MissReason explains a cache miss.
type MissReason string

const (
	MissNotFound     MissReason = "not_found"
	MissExpired      MissReason = "expired"
	MissFileChanged  MissReason = "file_changed"
	MissEvicted      MissReason = "evicted"
)

const (
	DefaultMaxEntries      = 100
	DefaultMaxMemoryBytes  = 50 * 1024 * 1024
	DefaultTTL             = 30 * time.Minute
	DefaultCleanupInterval = 50
)

// Result is the uniform Get contract.
type Result[T any] struct {
	Hit        bool
	Value      T
	MissReason MissReason
}

// Stats satisfies the stats invariant: hits+misses = total ops,
// hitRate = round(1000*hits/total)/10.
type Stats struct {
	Hits            int
	Misses          int
	MemorySizeBytes int64
	TokensSaved     int
}

// HitRate returns the percentage of operations that hit, rounded to
// one decimal place.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return math.Round(1000*float64(s.Hits)/float64(total)) / 10
}

type entry[T any] struct {
	value          T
	sizeBytes      int64
	expiresAt      time.Time
	lastAccessedAt time.Time
	filePath       string
	fileHash       string
	tokenCount     int
}

// Options configures a Cache instance.
type Options struct {
	MaxEntries      int
	MaxMemoryBytes  int64
	TTL             time.Duration
	CleanupInterval int
}

func (o Options) withDefaults() Options {
	if o.MaxEntries <= 0 {
		o.MaxEntries = DefaultMaxEntries
	}
	if o.MaxMemoryBytes <= 0 {
		o.MaxMemoryBytes = DefaultMaxMemoryBytes
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.CleanupInterval <= 0 {
		o.CleanupInterval = DefaultCleanupInterval
	}
	return o
}

// SetOptions configures one Set call.
type SetOptions struct {
	TTL        time.Duration
	FilePath   string // when non-empty, enables file-hash invalidation on Get
	TokenCount int    // tokens the caller is claiming this entry saves on a hit
}

// Cache is a keyed, capacity- and memory-bounded LRU/TTL store with
// optional file-hash invalidation. At most one goroutine mutates it at
// a time; every mutating operation restores the capacity/memory
// invariants before returning.
type Cache[T any] struct {
	mu       sync.Mutex
	entries  map[string]*entry[T]
	evicted  map[string]bool // tombstones so a Get right after eviction reports MissEvicted, not MissNotFound
	opts     Options
	stats    Stats
	opsSince int
	stopChan chan struct{}
	stopped  bool
}

// New builds a Cache and starts its background cleanup goroutine.
func New[T any](opts Options) *Cache[T] {
	opts = opts.withDefaults()
	c := &Cache[T]{
		entries:  make(map[string]*entry[T]),
		evicted:  make(map[string]bool),
		opts:     opts,
		stopChan: make(chan struct{}),
	}
	go c.periodicCleanup()
	return c
}

// Close stops the background cleanup goroutine.
func (c *Cache[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.stopped = true
		close(c.stopChan)
	}
}

// estimateSize approximates an entry's in-memory footprint as
// 2*len(json), or 1024 when the value can't be serialized.
func estimateSize(value any) int64 {
	b, err := json.Marshal(value)
	if err != nil {
		return 1024
	}
	return int64(2 * len(b))
}

// fastFileHash is the mtime_ms-size fingerprint used for file-backed
// invalidation.
func fastFileHash(modTimeMs int64, size int64) string {
	return strconv.FormatInt(modTimeMs, 10) + "-" + strconv.FormatInt(size, 10)
}

// Fingerprint returns a stable xxhash-based fingerprint of a value, for
// callers that want a cheap identity check without comparing full
// payloads.
func Fingerprint(value string) uint64 {
	return xxhash.Sum64String(value)
}

func (c *Cache[T]) periodicCleanup() {
	// Expiration is also checked opportunistically on every Get/Set;
	// this ticker only guarantees a sweep runs even when the cache is
	// otherwise idle between bursts of operations.
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.mu.Lock()
			if !c.stopped {
				c.sweepExpiredLocked()
			}
			c.mu.Unlock()
		}
	}
}

func (c *Cache[T]) sweepExpiredLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			c.removeLocked(k)
		}
	}
}

func (c *Cache[T]) removeLocked(key string) {
	if e, ok := c.entries[key]; ok {
		c.stats.MemorySizeBytes -= e.sizeBytes
		delete(c.entries, key)
	}
}
