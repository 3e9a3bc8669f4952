// Package packset assembles the statically linked language packs. It sits
// above the individual pack packages so the registry machinery never
// depends on any grammar.
package packset

import (
	"github.com/kennyfrc/llmctx/internal/packs"
	"github.com/kennyfrc/llmctx/internal/packs/c"
	"github.com/kennyfrc/llmctx/internal/packs/java"
	"github.com/kennyfrc/llmctx/internal/packs/php"
	"github.com/kennyfrc/llmctx/internal/packs/python"
	"github.com/kennyfrc/llmctx/internal/packs/ruby"
	"github.com/kennyfrc/llmctx/internal/packs/rust"
	"github.com/kennyfrc/llmctx/internal/packs/typescript"
)

// Default returns the built-in packs in registration order. Order matters:
// extension conflicts with later packs (loadable ones included) resolve to
// the earlier registration.
func Default() []packs.Builtin {
	return []packs.Builtin{
		{Name: "python", Plugin: python.New()},
		{Name: "typescript", Plugin: typescript.New()},
		{Name: "rust", Plugin: rust.New()},
		{Name: "c", Plugin: c.New()},
		{Name: "java", Plugin: java.New()},
		{Name: "ruby", Plugin: ruby.New()},
		{Name: "php", Plugin: php.New()},
	}
}
