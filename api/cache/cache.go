// Package cache provides a generic file-backed cache for fetched
// documentation. Entries are gob-encoded under the user cache directory and
// expire after a TTL. Concurrent misses for the same key are deduplicated.
package cache

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is the default time-to-live for cached entries
var DefaultTTL = 24 * time.Hour

// DefaultDir is the root cache directory shared by all Cache instances
var DefaultDir string

func init() {
	cacheHome, err := os.UserCacheDir()
	if err != nil {
		DefaultDir = filepath.Join(os.TempDir(), "cratedocs")
	} else {
		DefaultDir = filepath.Join(cacheHome, "cratedocs")
	}
}

// Entry represents a cached item
type Entry[T any] struct {
	Value     T
	CreatedAt time.Time
}

// Cache provides a generic caching mechanism. Each Cache owns a namespace
// subdirectory under the root cache directory.
type Cache[T any] struct {
	dir   string
	ttl   time.Duration
	group singleflight.Group
}

// New creates a cache for the given namespace (e.g. "docs", "search")
func New[T any](namespace string) *Cache[T] {
	return &Cache[T]{
		dir: filepath.Join(DefaultDir, namespace),
		ttl: DefaultTTL,
	}
}

// normalizeKey converts a cache key into a filesystem-safe format
func normalizeKey(key string) string {
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, key)

	// Collapse runs of dots so a key can never traverse upward
	for strings.Contains(normalized, "..") {
		normalized = strings.ReplaceAll(normalized, "..", ".")
	}

	return normalized
}

// GetOrSet retrieves a value from cache or generates and stores it via fn.
// forceUpdate bypasses the cached value but still stores the fresh result.
// Concurrent calls for the same key share a single fn invocation.
func (c *Cache[T]) GetOrSet(key string, fn func() (T, error), forceUpdate bool) (T, error) {
	normalizedKey := normalizeKey(key)
	path := filepath.Join(c.dir, normalizedKey+".gob")

	if !forceUpdate {
		if entry, err := c.loadEntry(path); err == nil {
			if time.Since(entry.CreatedAt) < c.ttl {
				return entry.Value, nil
			}
		}
	}

	v, err, _ := c.group.Do(normalizedKey, func() (any, error) {
		value, err := fn()
		if err != nil {
			return value, err
		}

		entry := Entry[T]{
			Value:     value,
			CreatedAt: time.Now(),
		}

		// A failed store is not fatal, the value is still usable
		_ = c.saveEntry(path, entry)

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

func (c *Cache[T]) loadEntry(path string) (*Entry[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entry Entry[T]
	if err := gob.NewDecoder(f).Decode(&entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (c *Cache[T]) saveEntry(path string, entry Entry[T]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewEncoder(f).Encode(entry)
}

// Clear removes all entries in this cache's namespace
func (c *Cache[T]) Clear() error {
	return os.RemoveAll(c.dir)
}

// SetTTL updates the cache TTL
func (c *Cache[T]) SetTTL(d time.Duration) {
	c.ttl = d
}

// SetDir updates the cache directory
func (c *Cache[T]) SetDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	c.dir = dir
	return nil
}

// ClearAll removes every namespace under the root cache directory
func ClearAll() error {
	return os.RemoveAll(DefaultDir)
}
