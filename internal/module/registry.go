// Package module implements the ALang package/import system (spec §4.8):
// a dotted-path registry of built-in packages (std.io, std.json, ...),
// resolved lazily on first import, plus a file-import cache keyed by
// canonicalized absolute path so repeated or cyclic file imports
// short-circuit instead of reloading or recursing forever.
package module

import "github.com/asultop/alang/internal/object"

// Package is a registered dotted-name namespace exposing named exports,
// e.g. "std.io" or "std.json" (spec §4.2/§4.8).
type Package struct {
	Name    string
	Exports map[string]object.Value
}

// Factory lazily builds a Package's export table on first resolve, so a
// package pulling in an expensive dependency (a JSON codec, an HTTP client)
// only pays that cost if a script actually imports it.
type Factory func() *Package

// Registry holds every built-in package factory and the packages already
// resolved from them.
type Registry struct {
	factories map[string]Factory
	resolved  map[string]*Package
}

// NewRegistry returns an empty registry. Callers populate it with Register.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory), resolved: make(map[string]*Package)}
}

// Register associates a dotted path with the factory that builds it.
func (r *Registry) Register(path string, factory Factory) {
	r.factories[path] = factory
}

// Resolve returns the Package at path, building and caching it on first
// call. The second return value is false if no factory was ever registered
// for path.
func (r *Registry) Resolve(path string) (*Package, bool) {
	if pkg, ok := r.resolved[path]; ok {
		return pkg, true
	}
	factory, ok := r.factories[path]
	if !ok {
		return nil, false
	}
	pkg := factory()
	r.resolved[path] = pkg
	return pkg, true
}

// Paths lists every registered dotted path, for `import pkg.*` diagnostics
// and tooling.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.factories))
	for p := range r.factories {
		paths = append(paths, p)
	}
	return paths
}
