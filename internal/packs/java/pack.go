// Package java provides the built-in Java language pack.
package java

import (
	_ "embed"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsjava "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/kennyfrc/llmctx/internal/packs"
)

//go:embed queries/codemap.scm
var queryBank string

// New returns the Java pack: classes with their methods and constructors,
// plus interfaces, enums, and records as named types.
func New() packs.Plugin {
	lang := sitter.NewLanguage(tsjava.Language())
	return packs.NewQueryPack("java", lang, []string{".java"}, queryBank)
}
