// Package builtins implements the global functions and the std.* collaborator
// packages ALang scripts see (spec §6 "external interfaces reached through a
// uniform registration API", expanded per SPEC_FULL.md §4). It depends only
// on internal/object and internal/module, never on internal/interp, so the
// interpreter can import builtins to populate itself at startup without a
// cycle; anything here that needs to post a task onto the event loop does so
// through the narrow Runtime interface instead of importing internal/eventloop
// or internal/interp directly.
package builtins

import "github.com/asultop/alang/internal/object"

// Runtime is the sliver of *interp.Interpreter / *eventloop.Loop that
// builtins needs to schedule async work (std.time.sleep, std.network.httpGet):
// enough to post a task and settle a Promise from a worker goroutine without
// ever running a callback inline (spec §4.6).
type Runtime interface {
	Enqueue(task func())
	// RunWorkers fans out fns concurrently and blocks until all complete,
	// for native async operations that need to join several worker
	// goroutines (e.g. batched network requests) before settling one Promise.
	RunWorkers(fns ...func() error) error
}

// dispatch adapts a Runtime into the `dispatch func(cb func(PromiseState, Value))`
// shape object.Promise.Settle/OnSettle expect: it posts cb as a task rather
// than invoking it inline. The real settled state/value are already bound
// into cb by the closure Settle/OnSettle built around it, so the arguments
// passed here are ignored.
func dispatch(rt Runtime) func(cb func(object.PromiseState, object.Value)) {
	return func(cb func(object.PromiseState, object.Value)) {
		rt.Enqueue(func() { cb(object.Pending, object.NullVal) })
	}
}

func builtin(fn func(args []object.Value) (object.Value, *object.ExceptionValue)) *object.Function {
	return &object.Function{Builtin: object.BuiltinFunction(fn)}
}

func argOr(args []object.Value, idx int, def object.Value) object.Value {
	if idx < len(args) {
		return args[idx]
	}
	return def
}
