package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/asultop/alang/internal/object"
)

func callBuiltin(t *testing.T, fn object.Value, args ...object.Value) object.Value {
	t.Helper()
	f, ok := fn.(*object.Function)
	if !ok || f.Builtin == nil {
		t.Fatalf("expected a builtin function")
	}
	v, exc := f.Builtin(args)
	if exc != nil {
		t.Fatalf("unexpected exception: %s", exc.Message)
	}
	return v
}

func TestGlobalsPrintln(t *testing.T) {
	var out bytes.Buffer
	g := Globals(&out, strings.NewReader(""))
	callBuiltin(t, g["println"], &object.String{Value: "hi"}, &object.Number{Value: 1})

	if got := out.String(); got != "hi 1\n" {
		t.Fatalf("unexpected println output: %q", got)
	}
}

func TestGlobalsPrintNoNewline(t *testing.T) {
	var out bytes.Buffer
	g := Globals(&out, strings.NewReader(""))
	callBuiltin(t, g["print"], &object.String{Value: "x"})

	if got := out.String(); got != "x" {
		t.Fatalf("unexpected print output: %q", got)
	}
}

func TestGlobalsReadLine(t *testing.T) {
	g := Globals(&bytes.Buffer{}, strings.NewReader("hello\nworld\n"))
	v := callBuiltin(t, g["readLine"])
	s, ok := v.(*object.String)
	if !ok || s.Value != "hello" {
		t.Fatalf("expected readLine to return %q, got %#v", "hello", v)
	}
}

func TestGlobalsReadLineEOF(t *testing.T) {
	g := Globals(&bytes.Buffer{}, strings.NewReader(""))
	v := callBuiltin(t, g["readLine"])
	if _, ok := v.(*object.Null); !ok {
		t.Fatalf("expected readLine at EOF to return null, got %#v", v)
	}
}

func TestGlobalsTypeof(t *testing.T) {
	g := Globals(&bytes.Buffer{}, strings.NewReader(""))

	v := callBuiltin(t, g["typeof"], &object.Number{Value: 1})
	if s := v.(*object.String).Value; s != "number" {
		t.Fatalf("expected typeof(1) == %q, got %q", "number", s)
	}

	v = callBuiltin(t, g["typeof"])
	if s := v.(*object.String).Value; s != "null" {
		t.Fatalf("expected typeof() == %q, got %q", "null", s)
	}
}
