package module

import (
	"testing"

	"github.com/asultop/alang/internal/object"
)

func TestRegistryResolveLazy(t *testing.T) {
	reg := NewRegistry()
	built := 0
	reg.Register("std.widgets", func() *Package {
		built++
		return &Package{
			Name:    "std.widgets",
			Exports: map[string]object.Value{"count": &object.Number{Value: 1}},
		}
	})

	if built != 0 {
		t.Fatalf("factory ran before Resolve was called")
	}

	pkg, ok := reg.Resolve("std.widgets")
	if !ok {
		t.Fatalf("expected std.widgets to resolve")
	}
	if built != 1 {
		t.Fatalf("expected factory to run exactly once, ran %d times", built)
	}
	if pkg.Exports["count"].(*object.Number).Value != 1 {
		t.Fatalf("unexpected export value")
	}

	if _, ok := reg.Resolve("std.widgets"); !ok {
		t.Fatalf("expected second resolve to succeed")
	}
	if built != 1 {
		t.Fatalf("expected factory to be cached, ran %d times", built)
	}
}

func TestRegistryResolveMissing(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resolve("std.nope"); ok {
		t.Fatalf("expected missing package to fail to resolve")
	}
}

func TestRegistryPaths(t *testing.T) {
	reg := NewRegistry()
	reg.Register("std.a", func() *Package { return &Package{Name: "std.a"} })
	reg.Register("std.b", func() *Package { return &Package{Name: "std.b"} })

	paths := reg.Paths()
	if len(paths) != 2 {
		t.Fatalf("expected 2 registered paths, got %d", len(paths))
	}
}
