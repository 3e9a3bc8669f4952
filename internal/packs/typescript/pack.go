// Package typescript provides the built-in TypeScript pack. On top of the
// query pass it runs a walker that recognizes the reactive-store idiom
// (createStore/defineStore plus member registrations) and component
// definitions, contributing the store-family kinds.
package typescript

import (
	_ "embed"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsts "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/kennyfrc/llmctx/internal/packs"
)

//go:embed queries/codemap.scm
var queryBank string

// New returns the TypeScript pack. It also claims plain JavaScript; the
// TypeScript grammar is a superset for everything the query bank touches.
func New() packs.Plugin {
	lang := sitter.NewLanguage(tsts.LanguageTypescript())
	return packs.NewQueryPack("typescript", lang, []string{".ts", ".tsx", ".js", ".jsx"}, queryBank).
		WithWalker(storeWalker)
}
