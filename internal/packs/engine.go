package packs

import (
	"os"
	"path/filepath"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// QueryBankFile is the companion resource a pack directory may carry to
// override the embedded query bank.
const QueryBankFile = "codemap.scm"

// NodeWalker is an optional AST-walk extraction pass a pack can run after
// the query pass. Both paths funnel into the same File.AddEntry routine.
type NodeWalker func(root *sitter.Node, source []byte, file *codemap.File, a *arena.Arena)

// QueryPack is the shared query-driven Plugin implementation every built-in
// language pack is built on: a grammar plus a declarative query bank,
// compiled once on first use and executed against a freshly parsed tree per
// file. Parsers are per-call; the compiled query lives for the process.
type QueryPack struct {
	name     string
	lang     *sitter.Language
	exts     []string
	embedded string
	dir      string

	once  sync.Once
	query *sitter.Query
	qerr  error

	walk NodeWalker
}

// NewQueryPack creates a pack for the given grammar, extensions, and
// embedded query bank source.
func NewQueryPack(name string, lang *sitter.Language, exts []string, embedded string) *QueryPack {
	return &QueryPack{name: name, lang: lang, exts: exts, embedded: embedded}
}

// WithWalker attaches an AST-walk extraction pass that runs after the
// query pass on every parsed file.
func (p *QueryPack) WithWalker(w NodeWalker) *QueryPack {
	p.walk = w
	return p
}

// WithQueryDir sets a pack-supplied directory checked first when resolving
// the on-disk query bank override.
func (p *QueryPack) WithQueryDir(dir string) *QueryPack {
	p.dir = dir
	return p
}

// Initialize compiles the query bank. A bank that fails to compile disables
// the pack.
func (p *QueryPack) Initialize() bool {
	p.compile()
	return p.qerr == nil
}

// Cleanup releases the compiled query.
func (p *QueryPack) Cleanup() {
	if p.query != nil {
		p.query.Close()
		p.query = nil
	}
}

// Extensions returns the extensions this pack claims.
func (p *QueryPack) Extensions() []string { return p.exts }

// ParseFile parses source and runs the query bank (and the walker, if any)
// over the resulting tree, emitting entries into file from the arena.
func (p *QueryPack) ParseFile(path string, source []byte, file *codemap.File, a *arena.Arena) bool {
	p.compile()
	if p.qerr != nil {
		return false
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(p.lang); err != nil {
		return false
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return false
	}
	defer tree.Close()

	root := tree.RootNode()
	p.runQuery(root, source, file, a)
	if p.walk != nil {
		p.walk(root, source, file, a)
	}
	return true
}

func (p *QueryPack) compile() {
	p.once.Do(func() {
		q, qerr := sitter.NewQuery(p.lang, p.resolveBank())
		if qerr != nil {
			p.qerr = qerr
			return
		}
		p.query = q
	})
}

// resolveBank returns the query bank source, preferring on-disk overrides:
// the pack-supplied directory, a queries/ directory relative to the
// process, then a packs/<name>/ directory under the working directory. The
// embedded bank is the fallback and the common case.
func (p *QueryPack) resolveBank() string {
	var candidates []string
	if p.dir != "" {
		candidates = append(candidates, filepath.Join(p.dir, QueryBankFile))
	}
	candidates = append(candidates, filepath.Join("queries", p.name+".scm"))
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, "packs", p.name, QueryBankFile))
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return string(data)
		}
	}
	return p.embedded
}

func (p *QueryPack) runQuery(root *sitter.Node, source []byte, file *codemap.File, a *arena.Arena) {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := p.query.CaptureNames()
	matches := cursor.Matches(p.query, root, source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		entry, ok := classifyMatch(m, names, source)
		if ok {
			file.AddEntry(a, entry)
		}
	}
}
