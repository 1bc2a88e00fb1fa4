package interp

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/lexer"
	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/parser"
)

// evalImportStatement dispatches to the package or file import form (spec
// §4.2/§4.8). A non-empty FilePath means `import "path" [as alias]`;
// otherwise it is a dotted package import (wildcard, selective, or whole).
func (i *Interpreter) evalImportStatement(n *ast.ImportStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	if n.FilePath != "" {
		return i.importFile(n, env)
	}
	return i.importPackage(n, env)
}

func (i *Interpreter) importPackage(n *ast.ImportStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	pkg, ok := i.Packages.Resolve(n.Package)
	if !ok {
		return nil, i.importError(fmt.Sprintf("unknown package %q", n.Package), n.Pos())
	}

	if n.Wildcard {
		for name, val := range pkg.Exports {
			env.Define(name, val)
		}
		return object.NullVal, nil
	}

	if len(n.Specs) > 0 {
		for _, spec := range n.Specs {
			val, ok := pkg.Exports[spec.Name]
			if !ok {
				return nil, i.importError(fmt.Sprintf("package %q has no export %q", n.Package, spec.Name), n.Pos())
			}
			bindName := spec.Name
			if spec.Alias != "" {
				bindName = spec.Alias
			}
			env.Define(bindName, val)
		}
		return object.NullVal, nil
	}

	// Whole-package import: `import pkg;` binds a namespace object under
	// the package's last dotted segment.
	ns := object.NewObject()
	for name, val := range pkg.Exports {
		ns.Set(name, val)
	}
	segs := strings.Split(n.Package, ".")
	alias := n.Alias
	if alias == "" {
		alias = segs[len(segs)-1]
	}
	env.Define(alias, ns)
	return object.NullVal, nil
}

// importFile resolves, parses, and evaluates a file import, caching the
// result by canonical absolute path so repeated imports of the same file
// reuse it and import cycles terminate on the in-flight marker rather than
// recursing (spec §4.8).
func (i *Interpreter) importFile(n *ast.ImportStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	path := n.FilePath
	if !filepath.IsAbs(path) {
		base := i.ImportBaseDir
		if base == "" {
			base = "."
		}
		path = filepath.Join(base, path)
	}
	abs, err := module.Canonicalize(path)
	if err != nil {
		return nil, i.importError(fmt.Sprintf("cannot resolve import %q: %s", n.FilePath, err), n.Pos())
	}

	unit, exc := i.loadFileUnit(abs, n)
	if exc != nil {
		return nil, exc
	}

	alias := n.Alias
	if alias == "" {
		base := filepath.Base(abs)
		alias = strings.TrimSuffix(base, filepath.Ext(base))
	}
	ns := object.NewObject()
	for name, val := range unit.Exports {
		ns.Set(name, val)
	}
	env.Define(alias, ns)
	return object.NullVal, nil
}

func (i *Interpreter) loadFileUnit(abs string, n *ast.ImportStatement) (*module.FileUnit, *object.ExceptionValue) {
	if cached, ok := i.Files.Get(abs); ok {
		return cached, nil
	}
	if !i.Files.BeginLoading(abs) {
		// Import cycle: return an empty unit so the cycle terminates
		// instead of recursing; the importing module will see whatever
		// was exported before the cycle closes, which for a still-loading
		// file is nothing yet.
		return &module.FileUnit{Path: abs, Exports: map[string]object.Value{}}, nil
	}
	defer i.Files.EndLoading(abs)

	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, i.importError(fmt.Sprintf("cannot read %q: %s", abs, err), n.Pos())
	}

	p := parser.New(lexer.New(string(src)))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, i.importError(fmt.Sprintf("parse error in %q: %s", abs, errs[0]), n.Pos())
	}

	fileEnv := NewEnclosed(i.Global)
	if _, exc := i.Run(program, fileEnv); exc != nil {
		return nil, exc
	}

	exports := make(map[string]object.Value)
	for name := range fileEnv.Exports() {
		if v, ok := fileEnv.GetLocal(name); ok {
			exports[name] = v
		}
	}
	// Upper-case-initial names are exported implicitly even without an
	// explicit `export` keyword (spec §6.3).
	for _, name := range fileEnv.Names() {
		if _, already := exports[name]; already {
			continue
		}
		if name == "" || !unicode.IsUpper(rune(name[0])) {
			continue
		}
		if v, ok := fileEnv.GetLocal(name); ok {
			exports[name] = v
		}
	}
	unit := &module.FileUnit{Path: abs, Exports: exports}
	i.Files.Put(abs, unit)
	return unit, nil
}
