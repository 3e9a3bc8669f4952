package packs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// Test Plan for codemap generation:
// - A run in which no file yields any entry fails with ErrEmptyCodemap
// - Unreadable, unclaimed, and oversized paths degrade to skips, never errors
// - Filter patterns restrict which paths reach the packs
// - Cache hits replay stored entries without calling the pack; misses store
// - Progress fires once per input path

type recordingCache struct {
	store map[string][]codemap.Entry
	gets  int
	puts  int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: map[string][]codemap.Entry{}}
}

func (c *recordingCache) Get(path, sum string) ([]codemap.Entry, bool) {
	c.gets++
	entries, ok := c.store[path+"\x00"+sum]
	return entries, ok
}

func (c *recordingCache) Put(path, sum string, entries []codemap.Entry) error {
	c.puts++
	c.store[path+"\x00"+sum] = entries
	return nil
}

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func loadedRegistry(t *testing.T, builtins ...Builtin) *Registry {
	t.Helper()
	r := NewRegistry(builtins, nil, false)
	require.Equal(t, len(builtins), r.Load())
	r.BuildExtensionMap()
	return r
}

func TestGenerate_EmptyRunFailsAndDiscardsCodemap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTemp(t, dir, "a.qq", "nothing here")
	b := writeTemp(t, dir, "b.qq", "nothing here either")

	barren := &stubPack{exts: []string{".qq"}, initOK: true, parseOK: true}
	r := loadedRegistry(t, Builtin{Name: "barren", Plugin: barren})

	ar := arena.New(1 << 16)
	defer ar.Destroy()

	cm, err := r.Generate(ar, []string{a, b}, GenerateOptions{})
	assert.Nil(t, cm)
	assert.ErrorIs(t, err, ErrEmptyCodemap)
}

func TestGenerate_PerFileFailuresDegradeToSkips(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeTemp(t, dir, "ok.qq", "x")
	writeTemp(t, dir, "plain.txt", "not code")
	missing := filepath.Join(dir, "gone.qq")

	pack := goodPack([]string{".qq"}, codemap.Entry{Name: "run", Kind: codemap.KindFunction})
	r := loadedRegistry(t, Builtin{Name: "qq", Plugin: pack})

	ar := arena.New(1 << 16)
	defer ar.Destroy()

	cm, err := r.Generate(ar, []string{good, filepath.Join(dir, "plain.txt"), missing}, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, cm.Files, 1, "only the parseable claimed file gets a record")
	assert.Equal(t, good, cm.Files[0].Path)
	assert.Equal(t, 1, cm.EntryCount())
}

func TestGenerate_FilterPatternsRestrictDispatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kept := writeTemp(t, dir, "service.qq", "x")
	writeTemp(t, dir, "other.qq", "x")

	pack := goodPack([]string{".qq"}, codemap.Entry{Name: "run", Kind: codemap.KindFunction})
	r := loadedRegistry(t, Builtin{Name: "qq", Plugin: pack})

	ar := arena.New(1 << 16)
	defer ar.Destroy()

	cm, err := r.Generate(ar, []string{kept, filepath.Join(dir, "other.qq")}, GenerateOptions{
		Patterns: []string{"service.*"},
	})
	require.NoError(t, err)
	require.Len(t, cm.Files, 1)
	assert.Equal(t, kept, cm.Files[0].Path)
	assert.Equal(t, []string{"service.*"}, cm.Patterns)
}

func TestGenerate_CacheReplaysAndStores(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTemp(t, dir, "mod.qq", "source text")

	pack := goodPack([]string{".qq"}, codemap.Entry{Name: "handler", Kind: codemap.KindFunction})
	r := loadedRegistry(t, Builtin{Name: "qq", Plugin: pack})

	cache := newRecordingCache()
	ar := arena.New(1 << 16)
	defer ar.Destroy()

	cm, err := r.Generate(ar, []string{path}, GenerateOptions{Cache: cache})
	require.NoError(t, err)
	assert.Equal(t, 1, cm.EntryCount())
	assert.Equal(t, 1, cache.puts, "first run stores the parse result")

	// Second run replays from the cache: no new Put, entries intact.
	cm2, err := r.Generate(ar, []string{path}, GenerateOptions{Cache: cache})
	require.NoError(t, err)
	assert.Equal(t, 1, cm2.EntryCount())
	assert.Equal(t, "handler", cm2.Files[0].Entries()[0].Name)
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, 2, cache.gets)
}

func TestGenerate_ProgressFiresPerPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeTemp(t, dir, "a.qq", "x")
	b := writeTemp(t, dir, "b.txt", "x")

	pack := goodPack([]string{".qq"}, codemap.Entry{Name: "run", Kind: codemap.KindFunction})
	r := loadedRegistry(t, Builtin{Name: "qq", Plugin: pack})

	ar := arena.New(1 << 16)
	defer ar.Destroy()

	var calls [][2]int
	_, err := r.Generate(ar, []string{a, b}, GenerateOptions{
		Progress: func(done, total int) { calls = append(calls, [2]int{done, total}) },
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
}

func TestMatchesFilters(t *testing.T) {
	t.Parallel()

	assert.True(t, matchesFilters("any/path.go", nil))

	filters := compileFilters([]string{"*.py", "internal"})
	assert.True(t, matchesFilters("scripts/tool.py", filters), "glob matches the base name")
	assert.True(t, matchesFilters("internal/app.zz", filters), "substring fallback")
	assert.False(t, matchesFilters("docs/readme.md", filters))
}

func TestGenerate_NoPathsIsEmpty(t *testing.T) {
	t.Parallel()

	r := loadedRegistry(t, Builtin{Name: "qq", Plugin: goodPack([]string{".qq"})})
	ar := arena.New(1 << 12)
	defer ar.Destroy()

	cm, err := r.Generate(ar, nil, GenerateOptions{})
	assert.Nil(t, cm)
	assert.True(t, errors.Is(err, ErrEmptyCodemap))
}
