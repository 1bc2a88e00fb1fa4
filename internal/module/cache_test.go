package module

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestFileCachePutGet(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.alang", "let x = 1;")

	c := NewFileCache()
	if _, ok := c.Get(path); ok {
		t.Fatalf("expected cache miss before Put")
	}

	c.Put(path, &FileUnit{Path: path})
	if _, ok := c.Get(path); !ok {
		t.Fatalf("expected cache hit after Put")
	}
	if c.Size() != 1 {
		t.Fatalf("expected size 1, got %d", c.Size())
	}
}

func TestFileCacheInvalidatesOnModTimeChange(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.alang", "let x = 1;")

	c := NewFileCache()
	c.Put(path, &FileUnit{Path: path})

	// Ensure the new mtime actually differs on filesystems with coarse
	// mtime resolution.
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(path, []byte("let x = 2;"), 0644); err != nil {
		t.Fatalf("failed to rewrite temp file: %v", err)
	}

	if _, ok := c.Get(path); ok {
		t.Fatalf("expected cache to invalidate after file was modified")
	}
}

func TestFileCacheBeginLoadingDetectsCycle(t *testing.T) {
	c := NewFileCache()
	if !c.BeginLoading("/a.alang") {
		t.Fatalf("expected first BeginLoading to succeed")
	}
	if c.BeginLoading("/a.alang") {
		t.Fatalf("expected second BeginLoading for the same path to report a cycle")
	}
	c.EndLoading("/a.alang")
	if !c.BeginLoading("/a.alang") {
		t.Fatalf("expected BeginLoading to succeed again after EndLoading")
	}
}

func TestFileCacheInvalidateAndClear(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "a.alang", "let x = 1;")

	c := NewFileCache()
	c.Put(path, &FileUnit{Path: path})
	c.Invalidate(path)
	if _, ok := c.Get(path); ok {
		t.Fatalf("expected Invalidate to drop the entry")
	}

	c.Put(path, &FileUnit{Path: path})
	c.Clear()
	if c.Size() != 0 {
		t.Fatalf("expected Clear to empty the cache, size is %d", c.Size())
	}
}
