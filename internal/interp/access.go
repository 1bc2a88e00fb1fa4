package interp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// caser drives Unicode-aware case conversion for toUpperCase/toLowerCase
// (spec §4.5 string methods): plain strings.ToUpper/ToLower gets the common
// case right but mishandles locale-sensitive folding (Turkish dotless i,
// German sharp s expansion under cases.Upper); x/text/cases does full
// Unicode case mapping instead of the simple byte-wise one.
var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

// evalGet implements property read (spec §4.5): Instance checks fields then
// bound class methods, Object does key lookup plus the synthetic `len`,
// Array/String expose a fixed builtin-method suite, Promise exposes
// then/catch, and Class exposes static methods.
func (i *Interpreter) evalGet(n *ast.GetExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	obj, exc := i.Eval(n.Object, env)
	if exc != nil {
		return nil, exc
	}
	if n.Optional {
		if _, isNull := obj.(*object.Null); isNull || obj == nil {
			return object.NullVal, nil
		}
	}

	switch v := obj.(type) {
	case *object.Instance:
		if fv, ok := v.Fields[n.Name]; ok {
			return fv, nil
		}
		if m, _ := v.Class.LookupMethod(n.Name); m != nil && m.Function != nil {
			return i.bindMethod(m.Function, v), nil
		}
		return object.NullVal, nil

	case *object.Class:
		if m, _ := v.LookupMethod(n.Name); m != nil && m.Static && m.Function != nil {
			return m.Function, nil
		}
		return object.NullVal, nil

	case *object.Object:
		if n.Name == "len" {
			return &object.Number{Value: float64(len(v.Keys))}, nil
		}
		if fv, ok := v.Get(n.Name); ok {
			return fv, nil
		}
		return object.NullVal, nil

	case *object.Array:
		if fn := arrayMethod(i, v, n.Name); fn != nil {
			return fn, nil
		}
		return object.NullVal, nil

	case *object.String:
		if fn := stringMethod(v, n.Name); fn != nil {
			return fn, nil
		}
		return object.NullVal, nil

	case *object.Promise:
		if fn := promiseMethod(i, v, n.Name); fn != nil {
			return fn, nil
		}
		return object.NullVal, nil
	}

	if obj == nil {
		return nil, i.typeError("cannot read property of null", n.Pos())
	}
	return object.NullVal, nil
}

// evalSet implements property write: Instance fields are freely settable
// (spec §3.1), Object keys are upserted, anything else is a TypeError.
func (i *Interpreter) evalSet(n *ast.SetExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	obj, exc := i.Eval(n.Object, env)
	if exc != nil {
		return nil, exc
	}
	val, exc := i.Eval(n.Value, env)
	if exc != nil {
		return nil, exc
	}
	switch v := obj.(type) {
	case *object.Instance:
		v.Fields[n.Name] = val
		return val, nil
	case *object.Object:
		v.Set(n.Name, val)
		return val, nil
	}
	return nil, i.typeError(fmt.Sprintf("cannot set property %q on %s", n.Name, obj.Type()), n.Pos())
}

func (i *Interpreter) evalIndex(n *ast.IndexExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	left, exc := i.Eval(n.Left, env)
	if exc != nil {
		return nil, exc
	}
	idx, exc := i.Eval(n.Index, env)
	if exc != nil {
		return nil, exc
	}
	switch coll := left.(type) {
	case *object.Array:
		at := int(object.ToNumber(idx))
		if at < 0 {
			at += len(coll.Elements)
		}
		if at < 0 || at >= len(coll.Elements) {
			return object.NullVal, nil
		}
		return coll.Elements[at], nil
	case *object.String:
		runes := []rune(coll.Value)
		at := int(object.ToNumber(idx))
		if at < 0 {
			at += len(runes)
		}
		if at < 0 || at >= len(runes) {
			return object.NullVal, nil
		}
		return &object.String{Value: string(runes[at])}, nil
	case *object.Object:
		key := object.ToStringValue(idx)
		if v, ok := coll.Get(key); ok {
			return v, nil
		}
		return object.NullVal, nil
	}
	return nil, i.typeError(fmt.Sprintf("%s is not indexable", left.Type()), n.Pos())
}

func (i *Interpreter) evalSetIndex(n *ast.SetIndexExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	left, exc := i.Eval(n.Left, env)
	if exc != nil {
		return nil, exc
	}
	idx, exc := i.Eval(n.Index, env)
	if exc != nil {
		return nil, exc
	}
	val, exc := i.Eval(n.Value, env)
	if exc != nil {
		return nil, exc
	}
	switch coll := left.(type) {
	case *object.Array:
		at := int(object.ToNumber(idx))
		if at < 0 {
			at += len(coll.Elements)
		}
		if at < 0 {
			return nil, i.rangeError("array index out of range", n.Pos())
		}
		for at >= len(coll.Elements) {
			coll.Elements = append(coll.Elements, object.NullVal)
		}
		coll.Elements[at] = val
		return val, nil
	case *object.Object:
		coll.Set(object.ToStringValue(idx), val)
		return val, nil
	}
	return nil, i.typeError(fmt.Sprintf("%s is not index-assignable", left.Type()), n.Pos())
}

func builtin(fn func(args []object.Value) (object.Value, *object.ExceptionValue)) *object.Function {
	return &object.Function{Builtin: object.BuiltinFunction(fn)}
}

// arrayMethod returns the bound builtin for name, or nil if name is not one
// of the fixed array methods (spec §4.5): len push pop shift unshift slice
// indexOf join reverse sort splice map filter reduce find some every includes.
func arrayMethod(i *Interpreter, arr *object.Array, name string) *object.Function {
	switch name {
	case "len":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.Number{Value: float64(len(arr.Elements))}, nil
		})
	case "push":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			arr.Elements = append(arr.Elements, args...)
			return &object.Number{Value: float64(len(arr.Elements))}, nil
		})
	case "pop":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(arr.Elements) == 0 {
				return object.NullVal, nil
			}
			last := arr.Elements[len(arr.Elements)-1]
			arr.Elements = arr.Elements[:len(arr.Elements)-1]
			return last, nil
		})
	case "shift":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(arr.Elements) == 0 {
				return object.NullVal, nil
			}
			first := arr.Elements[0]
			arr.Elements = arr.Elements[1:]
			return first, nil
		})
	case "unshift":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			arr.Elements = append(append([]object.Value{}, args...), arr.Elements...)
			return &object.Number{Value: float64(len(arr.Elements))}, nil
		})
	case "slice":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			start, end := sliceBounds(args, len(arr.Elements))
			out := append([]object.Value{}, arr.Elements[start:end]...)
			return &object.Array{Elements: out}, nil
		})
	case "indexOf":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(args) == 0 {
				return &object.Number{Value: -1}, nil
			}
			for idx, el := range arr.Elements {
				if object.StrictEquals(el, args[0]) {
					return &object.Number{Value: float64(idx)}, nil
				}
			}
			return &object.Number{Value: -1}, nil
		})
	case "includes":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(args) == 0 {
				return object.FalseVal, nil
			}
			for _, el := range arr.Elements {
				if object.StrictEquals(el, args[0]) {
					return object.TrueVal, nil
				}
			}
			return object.FalseVal, nil
		})
	case "join":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			sep := ","
			if len(args) > 0 {
				sep = object.ToStringValue(args[0])
			}
			parts := make([]string, len(arr.Elements))
			for idx, el := range arr.Elements {
				parts[idx] = object.ToStringValue(el)
			}
			return &object.String{Value: strings.Join(parts, sep)}, nil
		})
	case "reverse":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			for l, r := 0, len(arr.Elements)-1; l < r; l, r = l+1, r-1 {
				arr.Elements[l], arr.Elements[r] = arr.Elements[r], arr.Elements[l]
			}
			return arr, nil
		})
	case "sort":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			var cmpExc *object.ExceptionValue
			var cmpFn *object.Function
			if len(args) > 0 {
				cmpFn, _ = args[0].(*object.Function)
			}
			sort.SliceStable(arr.Elements, func(a, b int) bool {
				if cmpFn != nil {
					res, exc := i.callFunction(cmpFn, []object.Value{arr.Elements[a], arr.Elements[b]}, token.Position{})
					if exc != nil {
						cmpExc = exc
						return false
					}
					return object.ToNumber(res) < 0
				}
				return object.Compare(arr.Elements[a], arr.Elements[b]) < 0
			})
			if cmpExc != nil {
				return nil, cmpExc
			}
			return arr, nil
		})
	case "splice":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			if len(args) == 0 {
				return &object.Array{}, nil
			}
			start := clampIndex(int(object.ToNumber(args[0])), len(arr.Elements))
			delCount := len(arr.Elements) - start
			if len(args) > 1 {
				delCount = int(object.ToNumber(args[1]))
			}
			if delCount < 0 {
				delCount = 0
			}
			if start+delCount > len(arr.Elements) {
				delCount = len(arr.Elements) - start
			}
			removed := append([]object.Value{}, arr.Elements[start:start+delCount]...)
			inserted := args[min(2, len(args)):]
			tail := append([]object.Value{}, arr.Elements[start+delCount:]...)
			arr.Elements = append(append(arr.Elements[:start], inserted...), tail...)
			return &object.Array{Elements: removed}, nil
		})
	case "map":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, exc := requireFunction(i, args)
			if exc != nil {
				return nil, exc
			}
			out := make([]object.Value, len(arr.Elements))
			for idx, el := range arr.Elements {
				v, exc := i.callFunction(fn, []object.Value{el, &object.Number{Value: float64(idx)}}, token.Position{})
				if exc != nil {
					return nil, exc
				}
				out[idx] = v
			}
			return &object.Array{Elements: out}, nil
		})
	case "filter":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, exc := requireFunction(i, args)
			if exc != nil {
				return nil, exc
			}
			var out []object.Value
			for idx, el := range arr.Elements {
				v, exc := i.callFunction(fn, []object.Value{el, &object.Number{Value: float64(idx)}}, token.Position{})
				if exc != nil {
					return nil, exc
				}
				if object.Truthy(v) {
					out = append(out, el)
				}
			}
			return &object.Array{Elements: out}, nil
		})
	case "reduce":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, exc := requireFunction(i, args)
			if exc != nil {
				return nil, exc
			}
			idx := 0
			var acc object.Value
			if len(args) > 1 {
				acc = args[1]
			} else if len(arr.Elements) > 0 {
				acc = arr.Elements[0]
				idx = 1
			} else {
				return object.NullVal, nil
			}
			for ; idx < len(arr.Elements); idx++ {
				v, exc := i.callFunction(fn, []object.Value{acc, arr.Elements[idx], &object.Number{Value: float64(idx)}}, token.Position{})
				if exc != nil {
					return nil, exc
				}
				acc = v
			}
			return acc, nil
		})
	case "find":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, exc := requireFunction(i, args)
			if exc != nil {
				return nil, exc
			}
			for idx, el := range arr.Elements {
				v, exc := i.callFunction(fn, []object.Value{el, &object.Number{Value: float64(idx)}}, token.Position{})
				if exc != nil {
					return nil, exc
				}
				if object.Truthy(v) {
					return el, nil
				}
			}
			return object.NullVal, nil
		})
	case "some":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, exc := requireFunction(i, args)
			if exc != nil {
				return nil, exc
			}
			for idx, el := range arr.Elements {
				v, exc := i.callFunction(fn, []object.Value{el, &object.Number{Value: float64(idx)}}, token.Position{})
				if exc != nil {
					return nil, exc
				}
				if object.Truthy(v) {
					return object.TrueVal, nil
				}
			}
			return object.FalseVal, nil
		})
	case "every":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, exc := requireFunction(i, args)
			if exc != nil {
				return nil, exc
			}
			for idx, el := range arr.Elements {
				v, exc := i.callFunction(fn, []object.Value{el, &object.Number{Value: float64(idx)}}, token.Position{})
				if exc != nil {
					return nil, exc
				}
				if !object.Truthy(v) {
					return object.FalseVal, nil
				}
			}
			return object.TrueVal, nil
		})
	}
	return nil
}

func requireFunction(i *Interpreter, args []object.Value) (*object.Function, *object.ExceptionValue) {
	if len(args) == 0 {
		return nil, i.typeError("expected a function argument", token.Position{})
	}
	fn, ok := args[0].(*object.Function)
	if !ok {
		return nil, i.typeError(fmt.Sprintf("expected a function argument, got %s", args[0].Type()), token.Position{})
	}
	return fn, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		idx += length
	}
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}

func sliceBounds(args []object.Value, length int) (int, int) {
	start, end := 0, length
	if len(args) > 0 {
		start = clampIndex(int(object.ToNumber(args[0])), length)
	}
	if len(args) > 1 {
		end = clampIndex(int(object.ToNumber(args[1])), length)
	}
	if end < start {
		end = start
	}
	return start, end
}

// stringMethod returns the bound builtin for name, or nil if name is not one
// of the fixed string methods (spec §4.5).
func stringMethod(s *object.String, name string) *object.Function {
	runes := []rune(s.Value)
	switch name {
	case "len":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.Number{Value: float64(len(runes))}, nil
		})
	case "trim":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.String{Value: strings.TrimSpace(s.Value)}, nil
		})
	case "trimLeft":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.String{Value: strings.TrimLeft(s.Value, " \t\n\r")}, nil
		})
	case "trimRight":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.String{Value: strings.TrimRight(s.Value, " \t\n\r")}, nil
		})
	case "toLowerCase":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.String{Value: lowerCaser.String(s.Value)}, nil
		})
	case "toUpperCase":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.String{Value: upperCaser.String(s.Value)}, nil
		})
	case "startsWith":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return object.NativeBool(strings.HasPrefix(s.Value, object.ToStringValue(args[0]))), nil
		})
	case "endsWith":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return object.NativeBool(strings.HasSuffix(s.Value, object.ToStringValue(args[0]))), nil
		})
	case "includes":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return object.NativeBool(strings.Contains(s.Value, object.ToStringValue(args[0]))), nil
		})
	case "indexOf":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.Number{Value: float64(strings.Index(s.Value, object.ToStringValue(args[0])))}, nil
		})
	case "lastIndexOf":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.Number{Value: float64(strings.LastIndex(s.Value, object.ToStringValue(args[0])))}, nil
		})
	case "split":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			sep := ""
			if len(args) > 0 {
				sep = object.ToStringValue(args[0])
			}
			var parts []string
			if sep == "" {
				for _, r := range runes {
					parts = append(parts, string(r))
				}
			} else {
				parts = strings.Split(s.Value, sep)
			}
			out := make([]object.Value, len(parts))
			for idx, p := range parts {
				out[idx] = &object.String{Value: p}
			}
			return &object.Array{Elements: out}, nil
		})
	case "substring":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			start, end := sliceBounds(args, len(runes))
			return &object.String{Value: string(runes[start:end])}, nil
		})
	case "slice":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			start, end := sliceBounds(args, len(runes))
			return &object.String{Value: string(runes[start:end])}, nil
		})
	case "replace":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			old := object.ToStringValue(args[0])
			repl := object.ToStringValue(args[1])
			return &object.String{Value: strings.Replace(s.Value, old, repl, 1)}, nil
		})
	case "padStart":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.String{Value: pad(s.Value, args, true)}, nil
		})
	case "padEnd":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			return &object.String{Value: pad(s.Value, args, false)}, nil
		})
	}
	return nil
}

func pad(s string, args []object.Value, start bool) string {
	if len(args) == 0 {
		return s
	}
	target := int(object.ToNumber(args[0]))
	padStr := " "
	if len(args) > 1 {
		padStr = object.ToStringValue(args[1])
	}
	if padStr == "" {
		return s
	}
	current := len([]rune(s))
	if current >= target {
		return s
	}
	var fill strings.Builder
	for fill.Len() < (target-current)*len(padStr) {
		fill.WriteString(padStr)
	}
	padding := string([]rune(fill.String())[:target-current])
	if start {
		return padding + s
	}
	return s + padding
}

// promiseMethod returns `then`/`catch` bound to p (spec §4.6): both always
// dispatch their callback via a posted task, never inline.
func promiseMethod(i *Interpreter, p *object.Promise, name string) *object.Function {
	switch name {
	case "then":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, _ := firstFunction(args)
			next := object.NewPromise()
			p.OnSettle(func(state object.PromiseState, value object.Value) {
				if state == object.Rejected {
					next.Settle(object.Rejected, value, i.dispatchCallback)
					return
				}
				if fn == nil {
					next.Settle(object.Fulfilled, value, i.dispatchCallback)
					return
				}
				result, exc := i.callFunction(fn, []object.Value{value}, token.Position{})
				if exc != nil {
					next.Settle(object.Rejected, exc.ToObject(), i.dispatchCallback)
					return
				}
				chainSettle(i, next, result)
			}, i.dispatchCallback)
			return next, nil
		})
	case "catch":
		return builtin(func(args []object.Value) (object.Value, *object.ExceptionValue) {
			fn, _ := firstFunction(args)
			next := object.NewPromise()
			p.OnSettle(func(state object.PromiseState, value object.Value) {
				if state == object.Fulfilled {
					next.Settle(object.Fulfilled, value, i.dispatchCallback)
					return
				}
				if fn == nil {
					next.Settle(object.Rejected, value, i.dispatchCallback)
					return
				}
				result, exc := i.callFunction(fn, []object.Value{value}, token.Position{})
				if exc != nil {
					next.Settle(object.Rejected, exc.ToObject(), i.dispatchCallback)
					return
				}
				chainSettle(i, next, result)
			}, i.dispatchCallback)
			return next, nil
		})
	}
	return nil
}

// chainSettle settles next with result, unless result is itself a Promise, in
// which case next instead adopts that inner promise's eventual state and
// value (spec §4.6 chaining a `.then`/`.catch` handler's returned promise).
func chainSettle(i *Interpreter, next *object.Promise, result object.Value) {
	if inner, ok := result.(*object.Promise); ok {
		inner.OnSettle(func(state object.PromiseState, value object.Value) {
			next.Settle(state, value, i.dispatchCallback)
		}, i.dispatchCallback)
		return
	}
	next.Settle(object.Fulfilled, result, i.dispatchCallback)
}

func firstFunction(args []object.Value) (*object.Function, bool) {
	if len(args) == 0 {
		return nil, false
	}
	fn, ok := args[0].(*object.Function)
	return fn, ok
}
