// Package alang is the embedding API: the surface a host Go program uses to
// configure, feed source to, and drive an ALang interpreter. An Engine is
// built via functional options and exposes Execute/CallFunction/
// RegisterFunction as its host-facing verbs.
package alang

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/asultop/alang/internal/alog"
	"github.com/asultop/alang/internal/builtins"
	"github.com/asultop/alang/internal/interp"
	"github.com/asultop/alang/internal/lexer"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/parser"
)

// Engine owns one interpreter instance plus its global scope. Every exported
// method is safe to call only from the goroutine that owns the Engine,
// except CallFunction results that cross through a Promise settled on a
// worker goroutine (spec §5); those settle back onto the Engine's own event
// loop via RunEventLoopUntilIdle.
type Engine struct {
	interp  *interp.Interpreter
	logger  *alog.Logger
	out     io.Writer
	in      io.Reader
	args    []string
	program string
	file    string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput redirects print/println to w (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// WithInput redirects readLine to r (default os.Stdin).
func WithInput(r io.Reader) Option {
	return func(e *Engine) { e.in = r }
}

// WithArgs sets the argument vector std.os.args exposes to scripts.
func WithArgs(args []string) Option {
	return func(e *Engine) { e.args = args }
}

// WithDebugLogging switches the host-diagnostic logger (std.log's sink) to
// its development/colorized configuration.
func WithDebugLogging(debug bool) Option {
	return func(e *Engine) { e.logger = alog.New(debug) }
}

// WithImportBaseDir sets the directory relative file imports resolve
// against (normally the directory containing the entry script).
func WithImportBaseDir(dir string) Option {
	return func(e *Engine) { e.interp.ImportBaseDir = dir }
}

// New builds an Engine with its global scope and std package registry
// already wired, applying opts afterward so a caller can still override
// output/input/args before the first Execute.
func New(opts ...Option) *Engine {
	e := &Engine{
		interp: interp.New(),
		logger: alog.Noop(),
		out:    os.Stdout,
		in:     os.Stdin,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.wireGlobals()
	e.wireStdPackages()
	return e
}

// wireGlobals installs the free-standing global functions (print, println,
// readLine, typeof, toString, toNumber) directly into the Global
// environment, ungated behind any import (SPEC_FULL.md §4).
func (e *Engine) wireGlobals() {
	for name, val := range builtins.Globals(e.out, e.in) {
		e.interp.Global.Define(name, val)
	}
}

// wireStdPackages registers every std.* package factory against the
// interpreter's lazy package registry; none of them actually run until a
// script imports them (spec §4.8).
func (e *Engine) wireStdPackages() {
	reg := e.interp.Packages
	builtins.RegisterStdIO(reg, e.out, e.in)
	builtins.RegisterStdOS(reg, e.args)
	builtins.RegisterStdTime(reg, e.interp.Loop)
	builtins.RegisterStdJSON(reg)
	builtins.RegisterStdYAML(reg)
	builtins.RegisterStdLog(reg, e.logger)
	builtins.RegisterStdTest(reg)
	builtins.RegisterStdCSV(reg)
	builtins.RegisterStdNetwork(reg, e.interp.Loop)
}

// SetSource loads program source under the given file name (used only for
// error messages and relative import resolution when no explicit
// WithImportBaseDir was set).
func (e *Engine) SetSource(source, file string) {
	e.program = source
	e.file = file
	e.interp.Source = source
	e.interp.File = file
	if e.interp.ImportBaseDir == "" && file != "" {
		e.interp.ImportBaseDir = filepath.Dir(file)
	}
}

// Execute parses and runs the source set by SetSource, then drains the
// event loop so any scheduled `go` statements and already-queued promise
// callbacks run before returning.
func (e *Engine) Execute() (object.Value, error) {
	l := lexer.New(e.program)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse error: %s", errs[0])
	}
	result, exc := e.interp.Run(prog, e.interp.Global)
	e.RunEventLoopUntilIdle()
	if exc != nil {
		return nil, exc
	}
	return result, nil
}

// RunEventLoopUntilIdle drains queued tasks (go-statements, posted promise
// callbacks) until none remain. Safe to call repeatedly; a no-op when idle.
func (e *Engine) RunEventLoopUntilIdle() {
	e.interp.Loop.RunUntilIdle()
}

// RegisterFunction exposes a host Go function to scripts as a global name.
func (e *Engine) RegisterFunction(name string, fn object.BuiltinFunction) {
	e.interp.Global.Define(name, &object.Function{Name: name, Builtin: fn})
}

// SetGlobal binds a precomputed value under name in the global scope, for
// host-provided constants and configuration values.
func (e *Engine) SetGlobal(name string, val object.Value) {
	e.interp.Global.Define(name, val)
}

// CallFunction looks up name in the global scope and invokes it with args,
// draining the event loop afterward so any async work it scheduled settles
// before returning.
func (e *Engine) CallFunction(name string, args ...object.Value) (object.Value, error) {
	callee, ok := e.interp.Global.Get(name)
	if !ok {
		return nil, fmt.Errorf("no such global function %q", name)
	}
	fn, ok := callee.(*object.Function)
	if !ok {
		return nil, fmt.Errorf("global %q is not callable", name)
	}
	result, exc := e.interp.CallExported(fn, args)
	e.RunEventLoopUntilIdle()
	if exc != nil {
		return nil, exc
	}
	return result, nil
}

// Logger returns the Engine's diagnostic logger, for hosts that want to
// share one sink between their own logging and std.log's.
func (e *Engine) Logger() *alog.Logger { return e.logger }
