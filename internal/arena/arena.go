// Package arena provides a bump allocator that backs the codemap data model.
// All objects allocated from an arena share one lifetime and are freed en
// masse with Clear or Destroy; nothing is freed individually.
package arena

import (
	"fmt"
	"unsafe"
)

// DefaultAlign is used when a Push call passes align == 0.
const DefaultAlign = uintptr(unsafe.Sizeof(uintptr(0)))

// Arena is a linear byte region with a monotonic allocation offset.
// Invariant: 0 <= pos <= len(base). Every live allocation lies inside
// base[:pos]. pos only decreases via Reset or Clear.
type Arena struct {
	base []byte
	pos  uintptr
}

// Mark is an opaque snapshot of the arena position, used with Reset to roll
// back everything allocated after the snapshot in O(1).
type Mark struct {
	pos uintptr
}

// New creates an arena with the given capacity in bytes. A non-positive
// reserve yields a zero-capacity arena whose Push calls always fail; callers
// that cannot tolerate that should check Cap before use.
func New(reserve int) *Arena {
	if reserve <= 0 {
		return &Arena{}
	}
	return &Arena{base: make([]byte, reserve)}
}

// Cap returns the total capacity of the arena in bytes.
func (a *Arena) Cap() int { return len(a.base) }

// Pos returns the current allocation offset.
func (a *Arena) Pos() int { return int(a.pos) }

// Push bump-allocates size bytes aligned to align (a power of two; 0 means
// pointer alignment). The returned region is zero-filled. Returns false
// without mutating the position when the request would exceed capacity.
func (a *Arena) Push(size, align uintptr) ([]byte, bool) {
	if align == 0 {
		align = DefaultAlign
	}
	start := a.alignedPos(align)
	if start+size < start || start+size > uintptr(len(a.base)) {
		return nil, false
	}
	a.pos = start + size
	buf := a.base[start : start+size : start+size]
	// Regions can be reused after Reset, so zero on every allocation.
	clear(buf)
	return buf, true
}

// MustPush is Push for call sites where recovery is impossible; it panics
// with a diagnostic instead of returning a failure.
func (a *Arena) MustPush(size, align uintptr) []byte {
	buf, ok := a.Push(size, align)
	if !ok {
		panic(fmt.Sprintf("arena: out of memory (requested %d bytes, %d of %d used)", size, a.pos, len(a.base)))
	}
	return buf
}

// alignedPos rounds the current position forward so the resulting absolute
// address satisfies align.
func (a *Arena) alignedPos(align uintptr) uintptr {
	if len(a.base) == 0 {
		return a.pos
	}
	addr := uintptr(unsafe.Pointer(&a.base[0])) + a.pos
	padded := (addr + align - 1) &^ (align - 1)
	return a.pos + (padded - addr)
}

// MarkPos snapshots the current position.
func (a *Arena) MarkPos() Mark { return Mark{pos: a.pos} }

// Reset rolls the position back to a previous mark, releasing everything
// allocated since. Marks taken after the target mark become invalid.
func (a *Arena) Reset(m Mark) {
	if m.pos <= a.pos {
		a.pos = m.pos
	}
}

// Clear resets the arena to empty without releasing the backing memory.
func (a *Arena) Clear() { a.pos = 0 }

// Destroy releases the backing memory. The arena is unusable afterwards;
// every subsequent Push fails.
func (a *Arena) Destroy() {
	a.base = nil
	a.pos = 0
}

// PushString copies s into the arena, truncated to max bytes when max > 0.
// Returns false when the arena is exhausted.
func (a *Arena) PushString(s string, max int) (string, bool) {
	if max > 0 && len(s) > max {
		s = s[:max]
	}
	if len(s) == 0 {
		return "", true
	}
	buf, ok := a.Push(uintptr(len(s)), 1)
	if !ok {
		return "", false
	}
	copy(buf, s)
	return unsafe.String(&buf[0], len(buf)), true
}

// MustPushString is PushString with MustPush failure semantics.
func (a *Arena) MustPushString(s string, max int) string {
	out, ok := a.PushString(s, max)
	if !ok {
		panic(fmt.Sprintf("arena: out of memory interning %d-byte string", len(s)))
	}
	return out
}

// Alloc carves a zeroed []T out of the arena. Values stored in the slice
// must not hold pointers to memory outside this arena: the backing region is
// a byte array as far as the garbage collector is concerned, so an
// arena-held pointer does not keep its target alive. Strings placed in
// arena-allocated structs must come from PushString on the same arena.
func Alloc[T any](a *Arena, n int) ([]T, bool) {
	if n <= 0 {
		return nil, true
	}
	var zero T
	size := unsafe.Sizeof(zero) * uintptr(n)
	buf, ok := a.Push(size, unsafe.Alignof(zero))
	if !ok {
		return nil, false
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n), true
}

// MustAlloc is Alloc with MustPush failure semantics.
func MustAlloc[T any](a *Arena, n int) []T {
	out, ok := Alloc[T](a, n)
	if !ok {
		var zero T
		panic(fmt.Sprintf("arena: out of memory allocating %d x %T", n, zero))
	}
	return out
}
