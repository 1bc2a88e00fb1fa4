package builtins

import (
	"testing"

	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
)

func resolveStdJSON(t *testing.T) map[string]object.Value {
	t.Helper()
	reg := module.NewRegistry()
	RegisterStdJSON(reg)
	pkg, ok := reg.Resolve("std.json")
	if !ok {
		t.Fatalf("expected std.json to register")
	}
	return pkg.Exports
}

func TestStdJSONParseAndStringify(t *testing.T) {
	exports := resolveStdJSON(t)

	v := callBuiltin(t, exports["parse"], &object.String{Value: `{"a":1,"b":[true,false,null]}`})
	obj, ok := v.(*object.Object)
	if !ok {
		t.Fatalf("expected parse to return an object, got %#v", v)
	}
	a := obj.Map["a"].(*object.Number)
	if a.Value != 1 {
		t.Fatalf("expected a == 1, got %v", a.Value)
	}

	back := callBuiltin(t, exports["stringify"], obj)
	s, ok := back.(*object.String)
	if !ok || s.Value == "" {
		t.Fatalf("expected stringify to produce JSON text, got %#v", back)
	}
}

func TestStdJSONQueryAndSet(t *testing.T) {
	exports := resolveStdJSON(t)
	text := &object.String{Value: `{"name":"ana","age":30}`}

	v := callBuiltin(t, exports["query"], text, &object.String{Value: "name"})
	s, ok := v.(*object.String)
	if !ok || s.Value != "ana" {
		t.Fatalf("expected query(name) == %q, got %#v", "ana", v)
	}

	missing := callBuiltin(t, exports["query"], text, &object.String{Value: "missing"})
	if _, ok := missing.(*object.Null); !ok {
		t.Fatalf("expected query on a missing path to return null, got %#v", missing)
	}

	updated := callBuiltin(t, exports["set"], text, &object.String{Value: "age"}, &object.Number{Value: 31})
	us, ok := updated.(*object.String)
	if !ok {
		t.Fatalf("expected set to return a string")
	}

	age := callBuiltin(t, exports["query"], us, &object.String{Value: "age"})
	if age.(*object.Number).Value != 31 {
		t.Fatalf("expected updated age == 31, got %v", age)
	}
}
