// Package c provides the built-in C language pack.
package c

import (
	_ "embed"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsc "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/kennyfrc/llmctx/internal/packs"
)

//go:embed queries/codemap.scm
var queryBank string

// New returns the C pack: function definitions (pointer-returning ones
// included), structs, enums, unions, and typedefs. Headers are claimed
// alongside sources.
func New() packs.Plugin {
	lang := sitter.NewLanguage(tsc.Language())
	return packs.NewQueryPack("c", lang, []string{".c", ".h"}, queryBank)
}
