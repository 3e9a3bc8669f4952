// Package python provides the built-in Python language pack.
package python

import (
	_ "embed"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/kennyfrc/llmctx/internal/packs"
)

//go:embed queries/codemap.scm
var queryBank string

// New returns the Python pack: functions, classes, and methods, with
// return annotations when present.
func New() packs.Plugin {
	lang := sitter.NewLanguage(tspython.Language())
	return packs.NewQueryPack("python", lang, []string{".py"}, queryBank)
}
