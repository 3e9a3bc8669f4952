package codemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kennyfrc/llmctx/internal/arena"
)

// Test Plan for the data model:
// - AddEntry applies defaults for absent name/signature/return type
// - Over-long fields are truncated, never rejected
// - Entry arrays grow by copy and preserve insertion order
// - AddFile truncates over-long paths and preserves file order
// - EntryCount sums across files

func TestFile_AddEntryDefaults(t *testing.T) {
	t.Parallel()

	a := arena.New(1 << 16)
	cm := New(nil)
	f := cm.AddFile(a, "src/app.ts")

	f.AddEntry(a, Entry{Kind: KindFunction})

	require.Equal(t, 1, f.Len())
	e := f.Entries()[0]
	assert.Equal(t, DefaultName, e.Name)
	assert.Equal(t, DefaultSignature, e.Signature)
	assert.Equal(t, DefaultReturnType, e.ReturnType)
	assert.Empty(t, e.Container)
}

func TestFile_AddEntryTruncatesNotRejects(t *testing.T) {
	t.Parallel()

	a := arena.New(1 << 16)
	cm := New(nil)
	f := cm.AddFile(a, "big.py")

	long := strings.Repeat("x", MaxNameLen*3)
	f.AddEntry(a, Entry{Name: long, Kind: KindFunction})

	require.Equal(t, 1, f.Len())
	assert.Len(t, f.Entries()[0].Name, MaxNameLen)
	assert.Equal(t, long[:MaxNameLen], f.Entries()[0].Name)
}

func TestFile_AddEntryGrowsByCopy(t *testing.T) {
	t.Parallel()

	a := arena.New(1 << 20)
	cm := New(nil)
	f := cm.AddFile(a, "many.rs")

	for i := 0; i < 100; i++ {
		f.AddEntry(a, Entry{Name: "fn_" + string(rune('a'+i%26)), Kind: KindFunction})
	}

	require.Equal(t, 100, f.Len())
	assert.Equal(t, "fn_a", f.Entries()[0].Name)
	assert.Equal(t, "fn_"+string(rune('a'+99%26)), f.Entries()[99].Name)
}

func TestCodemap_AddFileOrderAndPathTruncation(t *testing.T) {
	t.Parallel()

	a := arena.New(1 << 16)
	cm := New([]string{"*.go"})

	cm.AddFile(a, "first.c")
	cm.AddFile(a, "second.c")
	long := strings.Repeat("d/", MaxPathLen)
	f := cm.AddFile(a, long)

	require.Len(t, cm.Files, 3)
	assert.Equal(t, "first.c", cm.Files[0].Path)
	assert.Equal(t, "second.c", cm.Files[1].Path)
	assert.Len(t, f.Path, MaxPathLen)
}

func TestCodemap_EntryCount(t *testing.T) {
	t.Parallel()

	a := arena.New(1 << 16)
	cm := New(nil)
	f1 := cm.AddFile(a, "a.py")
	f1.AddEntry(a, Entry{Name: "one", Kind: KindFunction})
	f1.AddEntry(a, Entry{Name: "two", Kind: KindFunction})
	cm.AddFile(a, "empty.py")

	assert.Equal(t, 2, cm.EntryCount())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "function", KindFunction.String())
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "store", KindStore.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
