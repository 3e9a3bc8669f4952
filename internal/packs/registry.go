package packs

import (
	"os"
	"path/filepath"
	"strings"
)

// PackArtifactName is the loadable-module file a pack directory must
// contain to become a load candidate.
const PackArtifactName = "parser.so"

// Candidate is a discovered on-disk pack that has not been loaded yet.
type Candidate struct {
	Name string
	Path string
}

// Discover scans packsDir for immediate subdirectories containing the
// loadable artifact. Subdirectories without one are skipped silently, and a
// missing or unreadable packsDir yields zero candidates; neither case is an
// error.
func Discover(packsDir string) []Candidate {
	dirents, err := os.ReadDir(packsDir)
	if err != nil {
		return nil
	}
	var found []Candidate
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		artifact := filepath.Join(packsDir, d.Name(), PackArtifactName)
		if info, err := os.Stat(artifact); err != nil || info.IsDir() {
			continue
		}
		found = append(found, Candidate{Name: d.Name(), Path: artifact})
	}
	return found
}

type extBinding struct {
	ext  string
	pack int
}

// Registry holds every known language pack and, once built, the
// extension-to-pack dispatch table.
type Registry struct {
	packs []LanguagePack
	ext   []extBinding
	debug bool
}

// NewRegistry creates a registry over the given built-in packs and on-disk
// candidates. The pack array is sized exactly to the inputs; nothing is
// loaded until Load is called. When debug is true, plugin entry points run
// without output suppression.
func NewRegistry(builtins []Builtin, candidates []Candidate, debug bool) *Registry {
	r := &Registry{
		packs: make([]LanguagePack, 0, len(builtins)+len(candidates)),
		debug: debug,
	}
	for _, b := range builtins {
		r.packs = append(r.packs, LanguagePack{Name: b.Name, impl: b.Plugin, debug: debug})
	}
	for _, c := range candidates {
		r.packs = append(r.packs, LanguagePack{Name: c.Name, Path: c.Path, debug: debug})
	}
	return r
}

// Load resolves and initializes every pack, strictly fail-closed and
// fail-isolated: any failure (unresolved symbol, empty extension list,
// failed Initialize) disables that pack and releases its module handle, and
// never prevents other packs from loading. Returns the number of packs that
// survived every step.
func (r *Registry) Load() int {
	loaded := 0
	for i := range r.packs {
		p := &r.packs[i]
		if p.impl == nil {
			impl, handle, err := loadModule(p.Path)
			if err != nil {
				// Unresolved symbol or unreadable module: the pack stays
				// unavailable. Go modules cannot be unloaded, so releasing
				// the handle means dropping the reference.
				continue
			}
			p.impl = impl
			p.handle = handle
		}

		exts := p.impl.Extensions()
		if len(exts) == 0 {
			p.disable()
			continue
		}

		if !r.callQuietBool(p.impl.Initialize) {
			p.disable()
			continue
		}

		p.exts = exts
		p.Available = true
		loaded++
	}
	return loaded
}

func (p *LanguagePack) disable() {
	p.Available = false
	p.handle = nil
	p.impl = nil
	p.exts = nil
}

// BuildExtensionMap builds the dispatch table from every available pack's
// advertised extensions. Must run after Load. A duplicate extension across
// two packs resolves first-registered-wins because lookup is a linear scan
// over insertion order.
func (r *Registry) BuildExtensionMap() {
	r.ext = r.ext[:0]
	for i := range r.packs {
		if !r.packs[i].Available {
			continue
		}
		for _, ext := range r.packs[i].exts {
			r.ext = append(r.ext, extBinding{ext: strings.ToLower(ext), pack: i})
		}
	}
}

// FindPackForExtension returns the first pack registered for ext, or false
// when no pack claims it.
func (r *Registry) FindPackForExtension(ext string) (*LanguagePack, bool) {
	ext = strings.ToLower(ext)
	for _, b := range r.ext {
		if b.ext == ext {
			return &r.packs[b.pack], true
		}
	}
	return nil, false
}

// Packs exposes the registry slots for listing commands.
func (r *Registry) Packs() []LanguagePack { return r.packs }

// Cleanup calls every available pack's Cleanup under the same output
// suppression as the other entry points, then releases its handle. The
// registry is unusable afterwards.
func (r *Registry) Cleanup() {
	for i := range r.packs {
		p := &r.packs[i]
		if !p.Available {
			continue
		}
		r.callQuiet(p.impl.Cleanup)
		p.disable()
	}
	r.ext = nil
}
