package interp

import (
	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/errors"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/token"
)

// throwValue wraps a thrown script value in an ExceptionValue carrying the
// current call stack (spec §4.7). If val is already an exception object
// shape (from a rethrow), its message/type survive; otherwise it becomes the
// exception's payload and its Inspect() form becomes the message.
func (i *Interpreter) throwValue(val object.Value, pos token.Position) *object.ExceptionValue {
	class := "UserException"
	msg := object.Inspect(val)
	if obj, ok := val.(*object.Object); ok {
		if t, ok := obj.Get("type"); ok {
			if s, ok := t.(*object.String); ok {
				class = s.Value
			}
		}
		if m, ok := obj.Get("message"); ok {
			if s, ok := m.(*object.String); ok {
				msg = s.Value
			}
		}
	}
	stack := errors.StackTrace{}
	for _, frame := range i.callStack {
		stack = stack.Push(frame)
	}
	return &object.ExceptionValue{
		Message: msg,
		Class:   class,
		Stack:   stack,
		Pos:     pos,
		Line:    pos.Line,
		Column:  pos.Column,
		Length:  pos.Length,
		Payload: val,
	}
}

// catchValue builds the object a catch clause binds `e` to: always the
// structured {message, type, stack, line, column, length} shape of spec
// §4.7, with any extra properties from a thrown Object payload (a rethrow,
// or a user `throw {type: ..., ...}`) merged in on top so custom fields
// still reach the catch block.
func catchValue(exc *object.ExceptionValue) object.Value {
	obj := exc.ToObject()
	if payload, ok := exc.Payload.(*object.Object); ok {
		for _, key := range payload.Keys {
			v, _ := payload.Get(key)
			obj.Set(key, v)
		}
	}
	return obj
}

// evalTry runs the try block, routing any exception to the catch block (with
// `e` bound in a fresh child frame per spec §4.7) and always running the
// finally block regardless of which path was taken.
func (i *Interpreter) evalTry(n *ast.TryStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	val, exc := i.Eval(n.Block, env)

	if exc != nil && n.CatchBlock != nil {
		catchEnv := NewEnclosed(env)
		if n.CatchParam != "" {
			catchEnv.Define(n.CatchParam, catchValue(exc))
		}
		val, exc = i.Eval(n.CatchBlock, catchEnv)
	}

	if n.FinallyBlock != nil {
		finVal, finExc := i.Eval(n.FinallyBlock, NewEnclosed(env))
		if finExc != nil {
			return nil, finExc
		}
		if isSignal(finVal) {
			return finVal, nil
		}
	}

	return val, exc
}
