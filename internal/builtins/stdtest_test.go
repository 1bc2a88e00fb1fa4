package builtins

import (
	"testing"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

func resolveStdTest(t *testing.T) map[string]object.Value {
	t.Helper()
	reg := module.NewRegistry()
	RegisterStdTest(reg)
	pkg, ok := reg.Resolve("std.test")
	if !ok {
		t.Fatalf("expected std.test to register")
	}
	return pkg.Exports
}

func TestStdTestAssertPasses(t *testing.T) {
	exports := resolveStdTest(t)
	fn := exports["assert"].(*object.Function)
	if _, exc := fn.Builtin([]object.Value{object.TrueVal}); exc != nil {
		t.Fatalf("expected assert(true) not to throw, got %v", exc)
	}
}

func TestStdTestAssertFails(t *testing.T) {
	exports := resolveStdTest(t)
	fn := exports["assert"].(*object.Function)
	_, exc := fn.Builtin([]object.Value{object.FalseVal})
	if exc == nil {
		t.Fatalf("expected assert(false) to throw")
	}
	if exc.Class != "AssertionError" {
		t.Fatalf("expected AssertionError, got %s", exc.Class)
	}
}

func TestStdTestAssertEqual(t *testing.T) {
	exports := resolveStdTest(t)
	fn := exports["assertEqual"].(*object.Function)

	if _, exc := fn.Builtin([]object.Value{&object.Number{Value: 1}, &object.Number{Value: 1}}); exc != nil {
		t.Fatalf("expected equal numbers not to throw, got %v", exc)
	}

	_, exc := fn.Builtin([]object.Value{&object.Number{Value: 1}, &object.Number{Value: 2}})
	if exc == nil {
		t.Fatalf("expected unequal numbers to throw")
	}
}
