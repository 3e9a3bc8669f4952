// Package packs implements the language-pack architecture behind the
// codemap: a registry of per-language extraction plugins, discovered either
// as statically linked built-ins or as loadable modules under packs/, each
// driving tree-sitter pattern queries over parsed source to emit entries
// into the shared codemap data model.
package packs

import (
	"plugin"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// Plugin is the four-function contract every language pack implements.
// Callers never branch on whether an implementation is statically linked or
// was resolved out of a loadable module.
type Plugin interface {
	// Initialize prepares the pack (compiles its query bank). A false
	// return disables the pack.
	Initialize() bool

	// Cleanup releases pack resources. Called once at registry shutdown.
	Cleanup()

	// Extensions returns the file extensions the pack claims, each with a
	// leading dot. An empty result disables the pack.
	Extensions() []string

	// ParseFile extracts entries from source into file. Every string and
	// entry array must be allocated from the caller-supplied arena. Returns
	// false when the source could not be parsed.
	ParseFile(path string, source []byte, file *codemap.File, a *arena.Arena) bool
}

// Builtin pairs a pack name with its statically linked implementation.
type Builtin struct {
	Name   string
	Plugin Plugin
}

// LanguagePack is one registry slot. Available implies all four entry
// points resolved, the extension list is non-empty, and Initialize
// succeeded; a pack that failed any step never participates in dispatch.
type LanguagePack struct {
	Name      string
	Path      string // artifact path; empty for built-ins
	Available bool

	handle *plugin.Plugin
	impl   Plugin
	exts   []string
	debug  bool
}

// Extensions returns the extensions an available pack advertises.
func (p *LanguagePack) Extensions() []string { return p.exts }

// Parse runs the pack's extraction over source, emitting into file. Like
// every other plugin entry point it runs with stdout and stderr suppressed
// unless the owning registry is in debug mode.
func (p *LanguagePack) Parse(path string, source []byte, file *codemap.File, a *arena.Arena) bool {
	if !p.Available {
		return false
	}
	if p.debug {
		return p.impl.ParseFile(path, source, file, a)
	}
	restore := redirectOutput()
	defer restore()
	return p.impl.ParseFile(path, source, file, a)
}
