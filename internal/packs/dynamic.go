package packs

import (
	"fmt"
	"plugin"

	"github.com/kennyfrc/llmctx/internal/arena"
	"github.com/kennyfrc/llmctx/internal/codemap"
)

// The four exported symbols a loadable pack must provide, resolved in this
// order. Resolution stops at the first miss; later symbols are not probed.
var packSymbols = [4]string{"Initialize", "Cleanup", "ParseFile", "GetExtensions"}

// dynamicPack adapts a loadable module's resolved symbols to the Plugin
// interface so dispatch code never distinguishes static from dynamic packs.
type dynamicPack struct {
	initialize    func() bool
	cleanup       func()
	parseFile     func(string, []byte, *codemap.File, *arena.Arena) bool
	getExtensions func() []string
}

func (d *dynamicPack) Initialize() bool      { return d.initialize() }
func (d *dynamicPack) Cleanup()              { d.cleanup() }
func (d *dynamicPack) Extensions() []string  { return d.getExtensions() }
func (d *dynamicPack) ParseFile(path string, source []byte, file *codemap.File, a *arena.Arena) bool {
	return d.parseFile(path, source, file, a)
}

// loadModule opens a pack artifact and resolves its entry points. Any
// failure aborts the load; the caller records the pack as unavailable.
func loadModule(path string) (Plugin, *plugin.Plugin, error) {
	handle, err := plugin.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pack module: %w", err)
	}

	d := &dynamicPack{}
	for _, name := range packSymbols {
		sym, err := handle.Lookup(name)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %w", name, err)
		}
		if !bindSymbol(d, name, sym) {
			return nil, nil, fmt.Errorf("symbol %s has the wrong signature", name)
		}
	}
	return d, handle, nil
}

// bindSymbol accepts both the func and the package-level-var forms a plugin
// may export.
func bindSymbol(d *dynamicPack, name string, sym plugin.Symbol) bool {
	switch name {
	case "Initialize":
		if fn, ok := sym.(func() bool); ok {
			d.initialize = fn
			return true
		}
		if pf, ok := sym.(*func() bool); ok {
			d.initialize = *pf
			return true
		}
	case "Cleanup":
		if fn, ok := sym.(func()); ok {
			d.cleanup = fn
			return true
		}
		if pf, ok := sym.(*func()); ok {
			d.cleanup = *pf
			return true
		}
	case "ParseFile":
		if fn, ok := sym.(func(string, []byte, *codemap.File, *arena.Arena) bool); ok {
			d.parseFile = fn
			return true
		}
		if pf, ok := sym.(*func(string, []byte, *codemap.File, *arena.Arena) bool); ok {
			d.parseFile = *pf
			return true
		}
	case "GetExtensions":
		if fn, ok := sym.(func() []string); ok {
			d.getExtensions = fn
			return true
		}
		if pf, ok := sym.(*func() []string); ok {
			d.getExtensions = *pf
			return true
		}
	}
	return false
}
