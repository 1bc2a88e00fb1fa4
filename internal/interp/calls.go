package interp

import (
	"fmt"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/errors"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/token"
)

// makeFunction captures lit's declaration AST and the current environment as
// its closure (spec §3.1 Function).
func (i *Interpreter) makeFunction(lit *ast.FunctionLiteral, env *Environment) *object.Function {
	return &object.Function{
		Name:        lit.Name,
		Params:      lit.Params,
		Body:        lit.Body,
		Env:         env,
		IsAsync:     lit.IsAsync,
		IsGenerator: lit.IsGenerator,
	}
}

// applyDecorators composes decorator calls right-to-left at declaration time
// (spec §4.2): the innermost (last-written) decorator wraps fn first.
func (i *Interpreter) applyDecorators(decorators []*ast.DecoratorCall, fn *object.Function, env *Environment) *object.Function {
	if len(decorators) == 0 {
		return fn
	}
	current := object.Value(fn)
	for idx := len(decorators) - 1; idx >= 0; idx-- {
		dec := decorators[idx]
		callee, exc := i.Eval(dec.Callee, env)
		if exc != nil {
			continue
		}
		args := make([]object.Value, 0, len(dec.Arguments)+1)
		for _, a := range dec.Arguments {
			v, exc := i.Eval(a, env)
			if exc != nil {
				continue
			}
			args = append(args, v)
		}
		args = append(args, current)
		result, exc := i.callValue(callee, args, dec.Pos())
		if exc != nil {
			continue
		}
		current = result
	}
	if wrapped, ok := current.(*object.Function); ok {
		return wrapped
	}
	return fn
}

// bindMethod returns a copy of fn with its closure extended to bind `this`
// to inst, per spec §4.4: "method binding happens at property-read time".
func (i *Interpreter) bindMethod(fn *object.Function, this object.Value) *object.Function {
	bound := *fn
	thisEnv := NewEnclosed(fn.Env)
	thisEnv.Define("this", this)
	bound.Env = thisEnv
	bound.BoundThis = this
	return &bound
}

func (i *Interpreter) evalCall(n *ast.CallExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	callee, exc := i.evalCallee(n.Callee, env)
	if exc != nil {
		return nil, exc
	}
	args, exc := i.evalArguments(n.Arguments, env)
	if exc != nil {
		return nil, exc
	}
	return i.callValue(callee, args, n.Pos())
}

// evalCallee evaluates the callee expression with the ordinary Eval; a
// `obj.method(...)` callee gets no special handling here.
func (i *Interpreter) evalCallee(callee ast.Expression, env *Environment) (object.Value, *object.ExceptionValue) {
	return i.Eval(callee, env)
}

func (i *Interpreter) evalArguments(exprs []ast.Expression, env *Environment) ([]object.Value, *object.ExceptionValue) {
	var args []object.Value
	for _, a := range exprs {
		if sp, ok := a.(*ast.SpreadExpression); ok {
			v, exc := i.Eval(sp.Argument, env)
			if exc != nil {
				return nil, exc
			}
			if arr, ok := v.(*object.Array); ok {
				args = append(args, arr.Elements...)
				continue
			}
			return nil, i.typeError("spread argument is not an array", sp.Pos())
		}
		v, exc := i.Eval(a, env)
		if exc != nil {
			return nil, exc
		}
		args = append(args, v)
	}
	return args, nil
}

func (i *Interpreter) callValue(callee object.Value, args []object.Value, pos token.Position) (object.Value, *object.ExceptionValue) {
	fn, ok := callee.(*object.Function)
	if !ok {
		return nil, i.typeError(fmt.Sprintf("%s is not callable", callee.Type()), pos)
	}
	return i.callFunction(fn, args, pos)
}

// CallExported invokes fn from outside the Eval tree (the embedding API's
// Engine.CallFunction), at the zero position since there is no call-site
// source location to attribute errors to.
func (i *Interpreter) CallExported(fn *object.Function, args []object.Value) (object.Value, *object.ExceptionValue) {
	return i.callFunction(fn, args, token.Position{})
}

// callFunction invokes fn synchronously. If fn is async, the body instead
// runs as a posted task (spec §4.5: "async calls return immediately with a
// fresh Promise and enqueue the body as a task").
func (i *Interpreter) callFunction(fn *object.Function, args []object.Value, pos token.Position) (object.Value, *object.ExceptionValue) {
	if fn.Builtin != nil {
		v, exc := fn.Builtin(args)
		if exc != nil {
			exc.Pos = pos
		}
		return v, exc
	}

	if fn.IsAsync {
		return i.callAsync(fn, args), nil
	}

	if err := i.checkArity(fn, args, pos); err != nil {
		return nil, err
	}

	callEnv, exc := i.bindParams(fn, args, pos)
	if exc != nil {
		return nil, exc
	}

	i.callStack = append(i.callStack, errors.StackFrame{FunctionName: callName(fn), Pos: &pos})
	val, exc := i.Eval(fn.Body, callEnv)
	i.callStack = i.callStack[:len(i.callStack)-1]
	if exc != nil {
		return nil, exc
	}
	if rs, ok := val.(*returnSignal); ok {
		return rs.value, nil
	}
	return object.NullVal, nil
}

func callName(fn *object.Function) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "<anonymous>"
}

// callAsync enqueues fn's body as a task on the event loop and returns its
// Promise immediately (spec §4.6).
func (i *Interpreter) callAsync(fn *object.Function, args []object.Value) *object.Promise {
	p := object.NewPromise()
	i.Loop.Enqueue(func() {
		plain := *fn
		plain.IsAsync = false
		val, exc := i.callFunction(&plain, args, token.Position{})
		if exc != nil {
			p.Settle(object.Rejected, exc.ToObject(), i.dispatchCallback)
			return
		}
		p.Settle(object.Fulfilled, val, i.dispatchCallback)
	})
	return p
}

// dispatchCallback posts cb as a task on the event loop instead of running it
// inline. The actual settled state/value are already bound into cb by the
// closure object.Promise wraps it in, so the arguments here are unused.
func (i *Interpreter) dispatchCallback(cb func(object.PromiseState, object.Value)) {
	i.Loop.Enqueue(func() {
		cb(object.Pending, object.NullVal)
	})
}

// checkArity enforces spec §4.5 arity checking from MinMaxArity.
func (i *Interpreter) checkArity(fn *object.Function, args []object.Value, pos token.Position) *object.ExceptionValue {
	min, max := fn.MinMaxArity()
	if len(args) < min || (max >= 0 && len(args) > max) {
		return i.arityError(fmt.Sprintf("%s expects %s arguments, got %d", callName(fn), arityRange(min, max), len(args)), pos)
	}
	return nil
}

func arityRange(min, max int) string {
	if max < 0 {
		return fmt.Sprintf("at least %d", min)
	}
	if min == max {
		return fmt.Sprintf("%d", min)
	}
	return fmt.Sprintf("%d-%d", min, max)
}

// bindParams builds the call frame: positional params bind in order,
// defaults evaluate in the function's declared (closure) environment
// (spec §4.5), and a trailing rest parameter collects remaining arguments.
func (i *Interpreter) bindParams(fn *object.Function, args []object.Value, pos token.Position) (*Environment, *object.ExceptionValue) {
	callEnv := NewEnclosed(fn.Env)
	if fn.BoundThis != nil {
		callEnv.Define("this", fn.BoundThis)
	}
	idx := 0
	for _, p := range fn.Params {
		if p.Rest {
			rest := &object.Array{}
			for idx < len(args) {
				rest.Elements = append(rest.Elements, args[idx])
				idx++
			}
			callEnv.Define(p.Name, rest)
			continue
		}
		var val object.Value
		if idx < len(args) {
			val = args[idx]
			idx++
		} else if p.Default != nil {
			v, exc := i.Eval(p.Default, fn.Env)
			if exc != nil {
				return nil, exc
			}
			val = v
		} else {
			val = object.NullVal
		}
		callEnv.Define(p.Name, val)
		callEnv.DeclareType(p.Name, p.DeclaredType)
	}
	return callEnv, nil
}

// scheduleGo evaluates expr as a task in a snapshot environment (spec §4.6
// `go expr`), swallowing any thrown error.
func (i *Interpreter) scheduleGo(expr ast.Expression, env *Environment) {
	i.Loop.Enqueue(func() {
		_, _ = i.Eval(expr, env)
	})
}
