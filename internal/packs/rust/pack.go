// Package rust provides the built-in Rust language pack.
package rust

import (
	_ "embed"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsrust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/kennyfrc/llmctx/internal/packs"
)

//go:embed queries/codemap.scm
var queryBank string

// New returns the Rust pack: free functions, impl-block methods grouped
// under their target type, and named type items.
func New() packs.Plugin {
	lang := sitter.NewLanguage(tsrust.Language())
	return packs.NewQueryPack("rust", lang, []string{".rs"}, queryBank)
}
