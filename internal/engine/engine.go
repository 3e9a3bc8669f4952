// Package engine wires configuration, file discovery, the language-pack
// registry, the parse cache, ranking, and bundle assembly into the
// operations the CLI and the MCP server both expose.
package engine

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/bundle"
	"github.com/kennyfrc/llmctx/internal/cache"
	"github.com/kennyfrc/llmctx/internal/codemap"
	"github.com/kennyfrc/llmctx/internal/config"
	"github.com/kennyfrc/llmctx/internal/packs"
	"github.com/kennyfrc/llmctx/internal/packs/packset"
	"github.com/kennyfrc/llmctx/internal/rank"
	"github.com/kennyfrc/llmctx/internal/scan"
	"github.com/kennyfrc/llmctx/internal/tokens"
)

// Engine holds the loaded pack registry and parse cache for a project
// root. One engine serves many generation requests.
type Engine struct {
	root    string
	cfg     *config.Config
	reg     *packs.Registry
	cache   *cache.Cache
	counter tokens.Counter
}

// New loads the built-in packs plus any loadable ones under the configured
// pack directory. A cache that fails to open degrades to running without
// one.
func New(root string, cfg *config.Config) (*Engine, error) {
	candidates := packs.Discover(filepath.Join(root, cfg.Packs.Dir))
	reg := packs.NewRegistry(packset.Default(), candidates, cfg.Packs.Debug)
	loaded := reg.Load()
	reg.BuildExtensionMap()
	log.Printf("engine: %d language packs available", loaded)

	e := &Engine{
		root:    root,
		cfg:     cfg,
		reg:     reg,
		counter: tokens.NewEstimator(),
	}

	if cfg.Cache.Enabled {
		c, err := cache.Open(cfg.Cache.Location, cfg.Cache.Capacity)
		if err != nil {
			log.Printf("engine: parse cache unavailable: %v", err)
		} else {
			e.cache = c
		}
	}

	return e, nil
}

// Packs exposes the registry slots for status output.
func (e *Engine) Packs() []packs.LanguagePack { return e.reg.Packs() }

// Close releases the registry and the cache.
func (e *Engine) Close() {
	e.reg.Cleanup()
	if e.cache != nil {
		if err := e.cache.Close(); err != nil {
			log.Printf("engine: closing cache: %v", err)
		}
	}
}

// parseCache returns the cache as the generation pipeline's interface,
// avoiding a typed-nil when the cache is disabled.
func (e *Engine) parseCache() packs.ParseCache {
	if e.cache == nil {
		return nil
	}
	return e.cache
}

func (e *Engine) discover() ([]string, error) {
	s, err := scan.NewScanner(e.root, e.cfg.Paths.Include, e.cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}
	return s.Discover()
}

// Codemap generates and renders the codemap for the project, restricted to
// patterns when given. Returns packs.ErrEmptyCodemap when nothing was
// extracted.
func (e *Engine) Codemap(patterns []string, progress func(done, total int)) (string, error) {
	paths, err := e.discover()
	if err != nil {
		return "", err
	}

	a := arena.New(e.cfg.Codemap.ArenaReserve)
	defer a.Destroy()

	cm, err := e.reg.Generate(a, paths, packs.GenerateOptions{
		Patterns: patterns,
		Cache:    e.parseCache(),
		Progress: progress,
	})
	if err != nil {
		return "", err
	}
	return codemap.Render(cm), nil
}

// Request tunes one context generation run.
type Request struct {
	// Patterns restricts the codemap to matching paths. The bundle always
	// covers the full include set.
	Patterns []string

	// RankQuery orders bundle files by relevance when non-empty.
	RankQuery string

	// Instructions is an optional user prompt included in the bundle.
	Instructions string

	// SkipCodemap leaves the codemap out of the bundle.
	SkipCodemap bool

	// Progress receives codemap extraction progress. Optional.
	Progress func(done, total int)
}

// Result is one generated context payload.
type Result struct {
	Bundle      *bundle.Bundle
	CodemapText string
}

// Generate runs the full pipeline: discover, rank, extract, assemble. An
// empty codemap degrades to a bundle without one.
func (e *Engine) Generate(ctx context.Context, req Request) (*Result, error) {
	paths, err := e.discover()
	if err != nil {
		return nil, err
	}

	if req.RankQuery != "" {
		paths, err = e.rankPaths(ctx, req.RankQuery, paths)
		if err != nil {
			return nil, err
		}
	}

	var codemapText string
	if !req.SkipCodemap {
		a := arena.New(e.cfg.Codemap.ArenaReserve)
		cm, err := e.reg.Generate(a, paths, packs.GenerateOptions{
			Patterns: req.Patterns,
			Cache:    e.parseCache(),
			Progress: req.Progress,
		})
		switch {
		case errors.Is(err, packs.ErrEmptyCodemap):
			log.Printf("engine: codemap empty, bundling without one")
		case err != nil:
			a.Destroy()
			return nil, err
		default:
			codemapText = codemap.Render(cm)
		}
		a.Destroy()
	}

	b := bundle.Assemble(paths, codemapText, bundle.Options{
		Instructions: req.Instructions,
		MaxFileBytes: e.cfg.Bundle.MaxFileBytes,
		Counter:      e.counter,
		TokenBudget:  e.cfg.Bundle.TokenBudget,
	})
	if b.OverBudget {
		log.Printf("engine: bundle estimate %d tokens exceeds budget %d",
			b.TokenEstimate, e.cfg.Bundle.TokenBudget)
	}

	return &Result{Bundle: b, CodemapText: codemapText}, nil
}

func (e *Engine) rankPaths(ctx context.Context, query string, paths []string) ([]string, error) {
	docs := make([]rank.Document, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		docs = append(docs, rank.Document{Path: p, Content: string(content)})
	}

	r, err := rank.NewRanker(ctx, docs)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.Rank(ctx, query, paths)
}
