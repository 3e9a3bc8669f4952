package packs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// ErrEmptyCodemap reports that no file yielded any entry. It is the only
// condition that fails the codemap feature as a whole; every other problem
// degrades to a per-file warning.
var ErrEmptyCodemap = errors.New("codemap: no entries discovered in any file")

// MaxFileSize is the input ceiling the extraction engine assumes. Larger
// files are skipped with a warning.
const MaxFileSize = 5 * 1024 * 1024

// codeLikeExtensions get an informational log line when no pack claims
// them; anything else is skipped without comment.
var codeLikeExtensions = map[string]bool{
	".c": true, ".cc": true, ".cpp": true, ".cs": true, ".go": true,
	".h": true, ".hpp": true, ".java": true, ".js": true, ".jsx": true,
	".kt": true, ".php": true, ".py": true, ".rb": true, ".rs": true,
	".swift": true, ".ts": true, ".tsx": true, ".zig": true,
}

// ParseCache lets unchanged files skip re-parsing. Implementations key on
// the path plus a content digest.
type ParseCache interface {
	Get(path, sum string) ([]codemap.Entry, bool)
	Put(path, sum string, entries []codemap.Entry) error
}

// GenerateOptions tune one codemap run.
type GenerateOptions struct {
	// Patterns filters which paths are handed to the packs at all. Each
	// pattern is a glob; one that fails to compile matches by substring.
	Patterns []string

	// Cache is consulted before dispatching to a pack. Optional.
	Cache ParseCache

	// Progress is invoked after each processed path. Optional.
	Progress func(done, total int)
}

// Generate dispatches every path to its language pack and folds the results
// into a codemap. Per-file failures degrade to warnings; only a run in which
// no file yields any entry fails, and then the codemap is discarded.
func (r *Registry) Generate(a *arena.Arena, paths []string, opts GenerateOptions) (*codemap.Codemap, error) {
	cm := codemap.New(opts.Patterns)
	filters := compileFilters(opts.Patterns)

	for i, path := range paths {
		r.processPath(a, cm, path, filters, opts.Cache)
		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
	}

	if cm.EntryCount() == 0 {
		return nil, ErrEmptyCodemap
	}
	return cm, nil
}

func (r *Registry) processPath(a *arena.Arena, cm *codemap.Codemap, path string, filters []filterPattern, cache ParseCache) {
	if !matchesFilters(path, filters) {
		return
	}

	ext := strings.ToLower(filepath.Ext(path))
	pack, ok := r.FindPackForExtension(ext)
	if !ok {
		if codeLikeExtensions[ext] {
			log.Printf("codemap: no language pack for %s (%s)", ext, path)
		}
		return
	}

	source, err := os.ReadFile(path)
	if err != nil {
		log.Printf("codemap: warning: reading %s: %v", path, err)
		return
	}
	if len(source) > MaxFileSize {
		log.Printf("codemap: warning: %s exceeds the %d byte ceiling, skipped", path, MaxFileSize)
		return
	}

	file := cm.AddFile(a, path)

	var sum string
	if cache != nil {
		digest := sha256.Sum256(source)
		sum = hex.EncodeToString(digest[:])
		if entries, ok := cache.Get(path, sum); ok {
			for _, e := range entries {
				file.AddEntry(a, e)
			}
			return
		}
	}

	parsed := pack.Parse(path, source, file, a)
	switch {
	case !parsed:
		log.Printf("codemap: warning: %s pack failed to parse %s", pack.Name, path)
	case file.Len() == 0:
		log.Printf("codemap: warning: no entities extracted from %s", path)
	case cache != nil:
		if err := cache.Put(path, sum, file.Entries()); err != nil {
			log.Printf("codemap: warning: caching %s: %v", path, err)
		}
	}
}

type filterPattern struct {
	pattern string
	glob    glob.Glob
}

func compileFilters(patterns []string) []filterPattern {
	var out []filterPattern
	for _, p := range patterns {
		fp := filterPattern{pattern: p}
		if g, err := glob.Compile(p, '/'); err == nil {
			fp.glob = g
		}
		out = append(out, fp)
	}
	return out
}

// matchesFilters accepts every path when no patterns are set; otherwise a
// path must match at least one glob (or contain the pattern as a substring
// when the glob did not compile).
func matchesFilters(path string, filters []filterPattern) bool {
	if len(filters) == 0 {
		return true
	}
	slashed := filepath.ToSlash(path)
	for _, f := range filters {
		if f.glob != nil {
			if f.glob.Match(slashed) || f.glob.Match(filepath.Base(slashed)) {
				return true
			}
		} else if strings.Contains(slashed, f.pattern) {
			return true
		}
	}
	return false
}
