package alang

import (
	"bytes"
	"strings"
	"testing"

	"github.com/asultop/alang/internal/object"
)

func TestExecutePrintsOutput(t *testing.T) {
	var out bytes.Buffer
	eng := New(WithOutput(&out))
	eng.SetSource(`println("hello", 1 + 2);`, "<test>")

	if _, err := eng.Execute(); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if got := out.String(); got != "hello 3\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestExecuteFunctionDeclarationAndCall(t *testing.T) {
	var out bytes.Buffer
	eng := New(WithOutput(&out))
	eng.SetSource(`
function add(a, b) {
  return a + b;
}
println(add(2, 3));
`, "<test>")

	if _, err := eng.Execute(); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "5" {
		t.Fatalf("expected add(2,3) == 5, got %q", got)
	}
}

func TestCallFunctionFromHost(t *testing.T) {
	var out bytes.Buffer
	eng := New(WithOutput(&out))
	eng.SetSource(`function double(x) { return x * 2; }`, "<test>")

	if _, err := eng.Execute(); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}

	result, err := eng.CallFunction("double", &object.Number{Value: 21})
	if err != nil {
		t.Fatalf("unexpected error calling double: %v", err)
	}
	n, ok := result.(*object.Number)
	if !ok || n.Value != 42 {
		t.Fatalf("expected double(21) == 42, got %#v", result)
	}
}

func TestRegisterFunctionExposedToScript(t *testing.T) {
	var out bytes.Buffer
	eng := New(WithOutput(&out))
	eng.RegisterFunction("hostGreet", func(args []object.Value) (object.Value, *object.ExceptionValue) {
		return &object.String{Value: "hi from host"}, nil
	})
	eng.SetSource(`println(hostGreet());`, "<test>")

	if _, err := eng.Execute(); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hi from host" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestStdImportTime(t *testing.T) {
	var out bytes.Buffer
	eng := New(WithOutput(&out))
	eng.SetSource(`
import std.time;
println(typeof(time.now()));
`, "<test>")

	if _, err := eng.Execute(); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "number" {
		t.Fatalf("expected typeof(time.now()) == %q, got %q", "number", got)
	}
}
