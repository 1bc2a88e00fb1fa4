package module

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/asultop/alang/internal/object"
)

// FileUnit is one imported script file's resolved export table (spec §4.8:
// "an import-cache entry for a resolved absolute path, once populated, is
// immutable for the lifetime of the interpreter").
type FileUnit struct {
	Path    string
	Exports map[string]object.Value
	modTime int64
}

// FileCache caches loaded file imports by canonical absolute path and
// tracks in-flight loads so an import cycle terminates on the cache hit
// instead of recursing forever.
type FileCache struct {
	mu      sync.Mutex
	entries map[string]*FileUnit
	loading map[string]bool
}

// NewFileCache returns an empty cache.
func NewFileCache() *FileCache {
	return &FileCache{entries: make(map[string]*FileUnit), loading: make(map[string]bool)}
}

// Canonicalize resolves path to an absolute, symlink-free form so the same
// file reached via two different relative paths hits the same cache entry.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

// Get returns the cached unit for path if present and not modified on disk
// since it was cached.
func (c *FileCache) Get(path string) (*FileUnit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.entries[path]
	if !ok {
		return nil, false
	}
	if info, err := os.Stat(path); err == nil && info.ModTime().UnixNano() != u.modTime {
		delete(c.entries, path)
		return nil, false
	}
	return u, true
}

// Put stores unit under path, stamping its current mtime.
func (c *FileCache) Put(path string, unit *FileUnit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if info, err := os.Stat(path); err == nil {
		unit.modTime = info.ModTime().UnixNano()
	}
	c.entries[path] = unit
}

// BeginLoading marks path in-flight; a second BeginLoading for the same
// path (an import cycle) returns false so the caller can short-circuit
// rather than recurse.
func (c *FileCache) BeginLoading(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading[path] {
		return false
	}
	c.loading[path] = true
	return true
}

// EndLoading clears the in-flight marker once a load finishes (success or
// failure).
func (c *FileCache) EndLoading(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.loading, path)
}

// Size reports the number of cached file units, mainly for tests.
func (c *FileCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Invalidate drops path from the cache unconditionally.
func (c *FileCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear empties the cache.
func (c *FileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*FileUnit)
}
