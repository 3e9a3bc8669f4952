// Package codemap holds the structural summary of a codebase: per-file lists
// of extracted entities plus the renderer that turns them into the report
// consumed by the context bundle.
package codemap

import (
	"github.com/kennyfrc/llmctx/internal/arena"
)

// Kind classifies an extracted entity. The base set is Function, Class,
// Method and Type; language packs contribute domain-specific kinds (the
// reactive-store pack adds Store through Component). Code consuming Kind
// must not assume this list is closed.
type Kind int

const (
	KindFunction Kind = iota
	KindClass
	KindMethod
	KindType
	KindStore
	KindAction
	KindAsyncAction
	KindQuery
	KindMutation
	KindMemo
	KindComponent
)

// String returns a lower-case label for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	case KindType:
		return "type"
	case KindStore:
		return "store"
	case KindAction:
		return "action"
	case KindAsyncAction:
		return "async_action"
	case KindQuery:
		return "query"
	case KindMutation:
		return "mutation"
	case KindMemo:
		return "memo"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Fixed field capacities. Inputs longer than a field's capacity are
// truncated, never rejected.
const (
	MaxNameLen       = 128
	MaxSignatureLen  = 256
	MaxReturnTypeLen = 64
	MaxContainerLen  = 128
	MaxPathLen       = 4096
)

// Defaults applied when an extraction leaves a field empty.
const (
	DefaultName       = "<anonymous>"
	DefaultSignature  = "()"
	DefaultReturnType = "void"
)

// Entry is one extracted entity. All string fields are interned into the
// arena that owns the enclosing File.
type Entry struct {
	Name       string
	Signature  string
	ReturnType string
	Container  string // empty when the entry is top-level
	Kind       Kind
}

// File is one processed path with its ordered, append-only entry list.
// Entries are appended during a single pack invocation and never mutated
// after that invocation returns.
type File struct {
	Path    string
	entries []Entry
	count   int
}

// Codemap is the ordered sequence of processed files, 1:1 with the paths
// handed to the subsystem, plus the optional filter patterns used upstream
// to select those paths.
type Codemap struct {
	Files    []*File
	Patterns []string
}

// New creates an empty codemap with the given filter patterns.
func New(patterns []string) *Codemap {
	return &Codemap{Patterns: patterns}
}

// AddFile appends a new arena-owned File for path, truncating over-long
// paths, and returns it.
func (c *Codemap) AddFile(a *arena.Arena, path string) *File {
	f := &arena.MustAlloc[File](a, 1)[0]
	f.Path = a.MustPushString(path, MaxPathLen)
	c.Files = append(c.Files, f)
	return f
}

// EntryCount returns the total number of entries across all files.
func (c *Codemap) EntryCount() int {
	total := 0
	for _, f := range c.Files {
		total += f.Len()
	}
	return total
}

// Len returns the number of entries in the file.
func (f *File) Len() int { return f.count }

// Entries returns the populated portion of the entry list.
func (f *File) Entries() []Entry { return f.entries[:f.count] }

// AddEntry appends an entry, interning every string field into the arena and
// applying defaults for absent fields. Over-long fields are truncated. The
// entry array grows by copy inside the arena; exhaustion aborts via the
// arena's MustPush path, matching the many-small-bounded-allocations rule.
func (f *File) AddEntry(a *arena.Arena, e Entry) {
	if e.Name == "" {
		e.Name = DefaultName
	}
	if e.Signature == "" {
		e.Signature = DefaultSignature
	}
	if e.ReturnType == "" {
		e.ReturnType = DefaultReturnType
	}
	e.Name = a.MustPushString(e.Name, MaxNameLen)
	e.Signature = a.MustPushString(e.Signature, MaxSignatureLen)
	e.ReturnType = a.MustPushString(e.ReturnType, MaxReturnTypeLen)
	e.Container = a.MustPushString(e.Container, MaxContainerLen)

	if f.count == len(f.entries) {
		grown := f.count * 2
		if grown == 0 {
			grown = 8
		}
		next := arena.MustAlloc[Entry](a, grown)
		copy(next, f.entries)
		f.entries = next
	}
	f.entries[f.count] = e
	f.count++
}
