package packs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// Test Plan for the registry:
// - Discover finds only subdirectories carrying the artifact
// - Load isolates failing packs: one bad pack never blocks the rest
// - Empty extension lists and failed Initialize disable a pack
// - Extension lookup resolves every advertised extension; misses return none
// - Duplicate extensions resolve first-registered-wins
// - Cleanup runs only for available packs and disables them
// - Parse suppresses whatever a pack writes to stdout outside debug mode

type stubPack struct {
	exts    []string
	initOK  bool
	cleaned bool
	entries []codemap.Entry
	parseOK bool
	noisy   bool
}

func (s *stubPack) Initialize() bool     { return s.initOK }
func (s *stubPack) Cleanup()             { s.cleaned = true }
func (s *stubPack) Extensions() []string { return s.exts }
func (s *stubPack) ParseFile(path string, source []byte, file *codemap.File, a *arena.Arena) bool {
	if s.noisy {
		fmt.Fprintln(os.Stdout, "pack diagnostics")
	}
	for _, e := range s.entries {
		file.AddEntry(a, e)
	}
	return s.parseOK
}

func goodPack(exts []string, entries ...codemap.Entry) *stubPack {
	return &stubPack{exts: exts, initOK: true, parseOK: true, entries: entries}
}

func TestDiscover_FindsOnlyArtifactDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lua"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lua", PackArtifactName), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0o644))

	found := Discover(dir)
	require.Len(t, found, 1)
	assert.Equal(t, "lua", found[0].Name)
	assert.Equal(t, filepath.Join(dir, "lua", PackArtifactName), found[0].Path)
}

func TestDiscover_MissingDirYieldsEmptyRegistry(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Discover(filepath.Join(t.TempDir(), "does-not-exist")))

	r := NewRegistry(nil, nil, false)
	assert.Zero(t, r.Load())
	r.BuildExtensionMap()
	_, ok := r.FindPackForExtension(".py")
	assert.False(t, ok)
}

func TestRegistry_LoadIsolatesFailingPacks(t *testing.T) {
	t.Parallel()

	builtins := []Builtin{
		{Name: "alpha", Plugin: goodPack([]string{".aa"})},
		{Name: "broken", Plugin: &stubPack{exts: []string{".bb"}, initOK: false}},
		{Name: "gamma", Plugin: goodPack([]string{".cc"})},
	}
	r := NewRegistry(builtins, nil, false)

	assert.Equal(t, 2, r.Load())

	r.BuildExtensionMap()
	_, ok := r.FindPackForExtension(".aa")
	assert.True(t, ok)
	_, ok = r.FindPackForExtension(".bb")
	assert.False(t, ok, "a pack that failed Initialize must not participate in dispatch")
	_, ok = r.FindPackForExtension(".cc")
	assert.True(t, ok)

	for _, p := range r.Packs() {
		if p.Name == "broken" {
			assert.False(t, p.Available)
			assert.Nil(t, p.handle, "failed pack must not retain its module handle")
		}
	}
}

func TestRegistry_EmptyExtensionListDisablesPack(t *testing.T) {
	t.Parallel()

	r := NewRegistry([]Builtin{
		{Name: "mute", Plugin: &stubPack{exts: nil, initOK: true}},
	}, nil, false)

	assert.Zero(t, r.Load())
	assert.False(t, r.Packs()[0].Available)
}

func TestRegistry_ExtensionLookupCoversAllAdvertised(t *testing.T) {
	t.Parallel()

	builtins := []Builtin{
		{Name: "web", Plugin: goodPack([]string{".ts", ".tsx", ".js"})},
		{Name: "py", Plugin: goodPack([]string{".py"})},
	}
	r := NewRegistry(builtins, nil, false)
	require.Equal(t, 2, r.Load())
	r.BuildExtensionMap()

	for _, p := range r.Packs() {
		for _, ext := range p.Extensions() {
			found, ok := r.FindPackForExtension(ext)
			require.True(t, ok, "extension %s", ext)
			assert.Contains(t, found.Extensions(), ext)
		}
	}

	_, ok := r.FindPackForExtension(".zig")
	assert.False(t, ok)
}

func TestRegistry_DuplicateExtensionFirstRegisteredWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry([]Builtin{
		{Name: "first", Plugin: goodPack([]string{".js"})},
		{Name: "second", Plugin: goodPack([]string{".js"})},
	}, nil, false)
	require.Equal(t, 2, r.Load())
	r.BuildExtensionMap()

	p, ok := r.FindPackForExtension(".js")
	require.True(t, ok)
	assert.Equal(t, "first", p.Name)
}

// Not parallel: swaps os.Stdout for the duration of the call.
func TestLanguagePack_ParseSuppressesPackOutput(t *testing.T) {
	r := NewRegistry([]Builtin{
		{Name: "loud", Plugin: &stubPack{exts: []string{".ll"}, initOK: true, parseOK: true, noisy: true}},
	}, nil, false)
	require.Equal(t, 1, r.Load())
	r.BuildExtensionMap()
	pack, ok := r.FindPackForExtension(".ll")
	require.True(t, ok)

	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	saved := os.Stdout
	os.Stdout = pw

	a := arena.New(1 << 12)
	defer a.Destroy()
	file := codemap.New(nil).AddFile(a, "x.ll")
	parsed := pack.Parse("x.ll", []byte("x"), file, a)

	os.Stdout = saved
	require.NoError(t, pw.Close())
	captured, err := io.ReadAll(pr)
	require.NoError(t, err)

	assert.True(t, parsed)
	assert.Empty(t, string(captured), "pack stdout must be discarded outside debug mode")
}

func TestRegistry_CleanupRunsForAvailablePacksOnly(t *testing.T) {
	t.Parallel()

	healthy := goodPack([]string{".rb"})
	broken := &stubPack{exts: []string{".xx"}, initOK: false}
	r := NewRegistry([]Builtin{
		{Name: "healthy", Plugin: healthy},
		{Name: "broken", Plugin: broken},
	}, nil, false)
	require.Equal(t, 1, r.Load())
	r.BuildExtensionMap()

	r.Cleanup()
	assert.True(t, healthy.cleaned)
	assert.False(t, broken.cleaned)
	_, ok := r.FindPackForExtension(".rb")
	assert.False(t, ok)
}
