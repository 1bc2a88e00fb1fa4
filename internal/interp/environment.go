// Package interp implements the ALang tree-walking interpreter: the
// environment chain, expression/statement evaluation, class dispatch, and
// exception handling described by the language's runtime semantics.
package interp

import "github.com/asultop/alang/internal/object"

// Environment is one frame of the lexical environment chain (spec §3.3): a
// name-to-value map, an advisory name-to-declared-type map, an explicit set
// of exported names (used by the module loader), and a link to the
// enclosing frame. ALang identifiers are case-sensitive, so lookups here
// use a plain Go map rather than a folding comparison.
type Environment struct {
	values  map[string]object.Value
	types   map[string]string
	exports map[string]bool
	outer   *Environment
}

// NewEnvironment creates a top-level frame with no parent.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]object.Value)}
}

// NewEnclosed creates a frame whose lookups fall through to outer on miss.
func NewEnclosed(outer *Environment) *Environment {
	return &Environment{values: make(map[string]object.Value), outer: outer}
}

// Get resolves name by walking outward through the chain.
func (e *Environment) Get(name string) (object.Value, bool) {
	if v, ok := e.values[name]; ok {
		return v, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// GetLocal resolves name in this frame only, without walking outward.
func (e *Environment) GetLocal(name string) (object.Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Define introduces name in this frame (a `let`/`var`/`const` declaration or
// parameter binding), shadowing any outer binding of the same name.
func (e *Environment) Define(name string, value object.Value) {
	e.values[name] = value
}

// DeclareType records the advisory declared type for name (spec §3.3); never
// enforced, only carried for diagnostics and reflection builtins.
func (e *Environment) DeclareType(name, declaredType string) {
	if declaredType == "" {
		return
	}
	if e.types == nil {
		e.types = make(map[string]string)
	}
	e.types[name] = declaredType
}

// DeclaredType returns the advisory type recorded for name, if any.
func (e *Environment) DeclaredType(name string) (string, bool) {
	if e.types != nil {
		if t, ok := e.types[name]; ok {
			return t, true
		}
	}
	if e.outer != nil {
		return e.outer.DeclaredType(name)
	}
	return "", false
}

// Set assigns to the nearest existing binding of name, walking outward; it
// does not create a new binding (use Define for that). Returns false if name
// is unbound anywhere in the chain.
func (e *Environment) Set(name string, value object.Value) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return true
	}
	if e.outer != nil {
		return e.outer.Set(name, value)
	}
	return false
}

// Has reports whether name is bound anywhere in the chain.
func (e *Environment) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// MarkExported records name as part of this module's explicit export set
// (spec §4.8 module object construction).
func (e *Environment) MarkExported(name string) {
	if e.exports == nil {
		e.exports = make(map[string]bool)
	}
	e.exports[name] = true
}

// Exports returns the set of explicitly exported names in this frame.
func (e *Environment) Exports() map[string]bool {
	return e.exports
}

// Outer returns the enclosing frame, or nil at the root.
func (e *Environment) Outer() *Environment { return e.outer }

// Names returns every name bound directly in this frame (used to build a
// module object from upper-case-initial convention exports, spec §4.8).
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.values))
	for n := range e.values {
		names = append(names, n)
	}
	return names
}
