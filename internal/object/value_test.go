package object

import (
	"testing"

	"github.com/asultop/alang/internal/errors"
	"github.com/asultop/alang/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassConformsTo(t *testing.T) {
	iface := NewClass("Shape")
	iface.IsInterface = true
	iface.Methods["area"] = &Method{Name: "area"}

	complete := NewClass("Circle")
	complete.Methods["area"] = &Method{Name: "area", Function: &Function{Name: "area"}}
	assert.True(t, complete.ConformsTo(iface))

	incomplete := NewClass("Blob")
	assert.False(t, incomplete.ConformsTo(iface))
}

func TestClassConformsToIgnoresStaticInterfaceMethods(t *testing.T) {
	iface := NewClass("Factory")
	iface.IsInterface = true
	iface.Methods["create"] = &Method{Name: "create", Static: true}

	class := NewClass("Widget")
	assert.True(t, class.ConformsTo(iface), "static interface methods aren't part of instance conformance")
}

func TestExceptionValueToObject(t *testing.T) {
	exc := &ExceptionValue{
		Message: "boom",
		Class:   "RuntimeError",
		Stack: errors.StackTrace{}.
			Push(errors.StackFrame{FunctionName: "outer", Pos: &token.Position{Line: 1}}).
			Push(errors.StackFrame{FunctionName: "inner", Pos: &token.Position{Line: 2}}),
		Line:   2,
		Column: 5,
		Length: 3,
	}

	obj := exc.ToObject()

	msg, ok := obj.Get("message")
	require.True(t, ok)
	assert.Equal(t, "boom", msg.(*String).Value)

	typ, ok := obj.Get("type")
	require.True(t, ok)
	assert.Equal(t, "RuntimeError", typ.(*String).Value)

	stack, ok := obj.Get("stack")
	require.True(t, ok)
	frames, ok := stack.(*Array)
	require.True(t, ok, "stack must be an Array of frame descriptions")
	require.Len(t, frames.Elements, 2)
	assert.Equal(t, "inner at line 2", frames.Elements[0].(*String).Value, "most recent frame first")
	assert.Equal(t, "outer at line 1", frames.Elements[1].(*String).Value)

	line, ok := obj.Get("line")
	require.True(t, ok)
	assert.Equal(t, 2.0, line.(*Number).Value)
}
