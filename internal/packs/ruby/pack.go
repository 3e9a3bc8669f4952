// Package ruby provides the built-in Ruby language pack.
package ruby

import (
	_ "embed"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/kennyfrc/llmctx/internal/packs"
)

//go:embed queries/codemap.scm
var queryBank string

// New returns the Ruby pack: top-level methods, classes with their instance
// methods, and module-scoped methods.
func New() packs.Plugin {
	lang := sitter.NewLanguage(tsruby.Language())
	return packs.NewQueryPack("ruby", lang, []string{".rb"}, queryBank)
}
