// Package php provides the built-in PHP language pack.
package php

import (
	_ "embed"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsphp "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/kennyfrc/llmctx/internal/packs"
)

//go:embed queries/codemap.scm
var queryBank string

// New returns the PHP pack: top-level functions, classes with their
// methods, and interfaces, traits, and enums as named types.
func New() packs.Plugin {
	lang := sitter.NewLanguage(tsphp.LanguagePHP())
	return packs.NewQueryPack("php", lang, []string{".php"}, queryBank)
}
