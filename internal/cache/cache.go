// Package cache persists parse results so unchanged files skip tree-sitter
// entirely on later runs. A small in-memory tier fronts a SQLite store
// keyed on (path, content digest).
package cache

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/maypok86/otter"

	"github.com/kennyfrc/llmctx/internal/codemap"
)

// Cache is the two-tier parse cache. It satisfies the generation
// pipeline's ParseCache contract.
type Cache struct {
	memory otter.Cache[string, []codemap.Entry]
	store  *Store
}

// Open creates the cache rooted at location (default ~/.llmctx/cache) with
// the given in-memory capacity.
func Open(location string, capacity int) (*Cache, error) {
	if location == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		location = filepath.Join(home, ".llmctx", "cache")
	}
	if err := os.MkdirAll(location, 0o755); err != nil {
		return nil, err
	}

	store, err := OpenStore(filepath.Join(location, "parse.db"))
	if err != nil {
		return nil, err
	}

	if capacity <= 0 {
		capacity = 4096
	}
	memory, err := otter.MustBuilder[string, []codemap.Entry](capacity).Build()
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Cache{memory: memory, store: store}, nil
}

// Get returns the cached entries for path at the given content digest.
func (c *Cache) Get(path, sum string) ([]codemap.Entry, bool) {
	key := path + "\x00" + sum
	if entries, ok := c.memory.Get(key); ok {
		return entries, true
	}
	entries, ok, err := c.store.Get(path, sum)
	if err != nil {
		log.Printf("cache: reading %s: %v", path, err)
		return nil, false
	}
	if ok {
		c.memory.Set(key, entries)
	}
	return entries, ok
}

// Put stores the entries for path at the given content digest, replacing
// any stale digest for the same path. The entries are deep-copied first:
// callers hand in strings backed by a run arena, and the memory tier must
// neither pin that arena nor observe its reuse.
func (c *Cache) Put(path, sum string, entries []codemap.Entry) error {
	owned := detach(entries)
	c.memory.Set(path+"\x00"+sum, owned)
	return c.store.Put(path, sum, owned)
}

// detach copies entries into heap-owned memory, severing any aliasing of
// the caller's arena.
func detach(entries []codemap.Entry) []codemap.Entry {
	out := make([]codemap.Entry, len(entries))
	for i, e := range entries {
		e.Name = strings.Clone(e.Name)
		e.Signature = strings.Clone(e.Signature)
		e.ReturnType = strings.Clone(e.ReturnType)
		e.Container = strings.Clone(e.Container)
		out[i] = e
	}
	return out
}

// Close releases both tiers.
func (c *Cache) Close() error {
	c.memory.Close()
	return c.store.Close()
}
