package cache

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// Test Plan:
// - Put then Get round-trips entries for a matching digest
// - A changed digest misses, and a later Put replaces the stale row
// - Misses on unknown paths return false
// - Put copies arena-backed entries, so reusing the run arena afterwards
//   cannot corrupt or pin cached results
// - The persistent tier survives reopening

func openTestCache(t *testing.T, dir string) *Cache {
	t.Helper()
	c, err := Open(dir, 16)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_RoundTrip(t *testing.T) {
	c := openTestCache(t, t.TempDir())

	entries := []codemap.Entry{
		{Name: "fetch", Signature: "(url)", ReturnType: "Response", Kind: codemap.KindFunction},
		{Name: "Greeter", Kind: codemap.KindClass},
	}
	require.NoError(t, c.Put("src/app.py", "sum-1", entries))

	got, ok := c.Get("src/app.py", "sum-1")
	require.True(t, ok)
	assert.Equal(t, entries, got)

	_, ok = c.Get("src/app.py", "sum-2")
	assert.False(t, ok, "a changed digest must miss")

	_, ok = c.Get("src/other.py", "sum-1")
	assert.False(t, ok)
}

func TestCache_DigestChangeReplacesRow(t *testing.T) {
	c := openTestCache(t, t.TempDir())

	require.NoError(t, c.Put("a.py", "old", []codemap.Entry{{Name: "v1", Kind: codemap.KindFunction}}))
	require.NoError(t, c.Put("a.py", "new", []codemap.Entry{{Name: "v2", Kind: codemap.KindFunction}}))

	_, ok := c.Get("a.py", "old")
	assert.False(t, ok)

	got, ok := c.Get("a.py", "new")
	require.True(t, ok)
	assert.Equal(t, "v2", got[0].Name)
}

func TestCache_PutDetachesEntriesFromRunArena(t *testing.T) {
	c := openTestCache(t, t.TempDir())

	a := arena.New(1 << 12)
	defer a.Destroy()

	entries := []codemap.Entry{{
		Name:       a.MustPushString("fetch", codemap.MaxNameLen),
		Signature:  a.MustPushString("(url)", codemap.MaxSignatureLen),
		ReturnType: a.MustPushString("Response", codemap.MaxReturnTypeLen),
		Kind:       codemap.KindFunction,
	}}
	require.NoError(t, c.Put("src/app.py", "sum-1", entries))

	// The next run reuses the arena, overwriting the bytes the original
	// entry strings pointed at. The cached copy must not notice.
	a.Clear()
	a.MustPushString(strings.Repeat("#", 256), 0)

	got, ok := c.Get("src/app.py", "sum-1")
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "fetch", got[0].Name)
	assert.Equal(t, "(url)", got[0].Signature)
	assert.Equal(t, "Response", got[0].ReturnType)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "parse.db")

	s, err := OpenStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Put("a.py", "sum", []codemap.Entry{{Name: "keep", Kind: codemap.KindFunction}}))
	require.NoError(t, s.Close())

	s2, err := OpenStore(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	got, ok, err := s2.Get("a.py", "sum")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "keep", got[0].Name)
}
