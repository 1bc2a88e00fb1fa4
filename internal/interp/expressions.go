package interp

import (
	"fmt"
	"math"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/token"
)

func (i *Interpreter) evalUnary(n *ast.UnaryExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	right, exc := i.Eval(n.Right, env)
	if exc != nil {
		return nil, exc
	}
	switch n.Operator {
	case "!":
		return object.NativeBool(!object.Truthy(right)), nil
	case "-":
		return &object.Number{Value: -object.ToNumber(right)}, nil
	case "~":
		return &object.Number{Value: float64(^toInt64(object.ToNumber(right)))}, nil
	}
	return nil, i.typeError(fmt.Sprintf("unknown unary operator %q", n.Operator), n.Pos())
}

func (i *Interpreter) evalUpdate(n *ast.UpdateExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	id, ok := n.Target.(*ast.Identifier)
	if !ok {
		return nil, i.typeError("invalid update target", n.Pos())
	}
	cur, ok := env.Get(id.Name)
	if !ok {
		return nil, i.nameError(fmt.Sprintf("undefined name %q", id.Name), n.Pos())
	}
	curNum := object.ToNumber(cur)
	var next float64
	if n.Operator == "++" {
		next = curNum + 1
	} else {
		next = curNum - 1
	}
	nextVal := &object.Number{Value: next}
	env.Set(id.Name, nextVal)
	if n.Prefix {
		return nextVal, nil
	}
	return &object.Number{Value: curNum}, nil
}

func (i *Interpreter) evalBinary(n *ast.BinaryExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	left, exc := i.Eval(n.Left, env)
	if exc != nil {
		return nil, exc
	}
	right, exc := i.Eval(n.Right, env)
	if exc != nil {
		return nil, exc
	}

	switch n.Operator {
	case "+":
		return i.evalAdd(left, right, n, env)
	case "-":
		if v, ok, exc := i.tryOperatorOverload(left, "__sub__", []object.Value{right}, n.Pos()); ok {
			return v, exc
		}
		return &object.Number{Value: object.ToNumber(left) - object.ToNumber(right)}, nil
	case "*":
		return &object.Number{Value: object.ToNumber(left) * object.ToNumber(right)}, nil
	case "/":
		return &object.Number{Value: object.ToNumber(left) / object.ToNumber(right)}, nil
	case "%":
		return &object.Number{Value: math.Mod(object.ToNumber(left), object.ToNumber(right))}, nil
	case "==":
		return object.NativeBool(object.LooseEquals(left, right)), nil
	case "!=":
		return object.NativeBool(!object.LooseEquals(left, right)), nil
	case "===":
		return object.NativeBool(object.StrictEquals(left, right)), nil
	case "!==":
		return object.NativeBool(!object.StrictEquals(left, right)), nil
	case "=~=":
		return object.NativeBool(i.structuralMatch(left, right)), nil
	case "<", "<=", ">", ">=":
		return i.evalComparison(n.Operator, left, right)
	case "&":
		return &object.Number{Value: float64(toInt64(object.ToNumber(left)) & toInt64(object.ToNumber(right)))}, nil
	case "|":
		return &object.Number{Value: float64(toInt64(object.ToNumber(left)) | toInt64(object.ToNumber(right)))}, nil
	case "^":
		return &object.Number{Value: float64(toInt64(object.ToNumber(left)) ^ toInt64(object.ToNumber(right)))}, nil
	case "<<":
		return &object.Number{Value: float64(toInt64(object.ToNumber(left)) << uint(toInt64(object.ToNumber(right))&63))}, nil
	case ">>":
		return &object.Number{Value: float64(toInt64(object.ToNumber(left)) >> uint(toInt64(object.ToNumber(right))&63))}, nil
	}
	return nil, i.typeError(fmt.Sprintf("unknown binary operator %q", n.Operator), n.Pos())
}

// evalAdd implements `+` per spec §4.5: string concatenation if either side
// is a String, `__add__` overload if the left side is an Instance defining
// one, otherwise numeric addition.
func (i *Interpreter) evalAdd(left, right object.Value, n *ast.BinaryExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	_, leftStr := left.(*object.String)
	_, rightStr := right.(*object.String)
	if leftStr || rightStr {
		return &object.String{Value: object.ToStringValue(left) + object.ToStringValue(right)}, nil
	}
	if v, ok, exc := i.tryOperatorOverload(left, "__add__", []object.Value{right}, n.Pos()); ok {
		return v, exc
	}
	return &object.Number{Value: object.ToNumber(left) + object.ToNumber(right)}, nil
}

// tryOperatorOverload dispatches to an instance's __add__/__sub__ method if
// left is an Instance defining one (spec §4.3 operator overloading).
func (i *Interpreter) tryOperatorOverload(left object.Value, name string, args []object.Value, pos token.Position) (object.Value, bool, *object.ExceptionValue) {
	inst, ok := left.(*object.Instance)
	if !ok {
		return nil, false, nil
	}
	method, _ := inst.Class.LookupMethod(name)
	if method == nil || method.Function == nil {
		return nil, false, nil
	}
	v, exc := i.callFunction(i.bindMethod(method.Function, inst), args, pos)
	return v, true, exc
}

func (i *Interpreter) evalComparison(op string, left, right object.Value) (object.Value, *object.ExceptionValue) {
	cmp := object.Compare(left, right)
	if cmp == 2 {
		return object.FalseVal, nil
	}
	switch op {
	case "<":
		return object.NativeBool(cmp < 0), nil
	case "<=":
		return object.NativeBool(cmp <= 0), nil
	case ">":
		return object.NativeBool(cmp > 0), nil
	case ">=":
		return object.NativeBool(cmp >= 0), nil
	}
	return object.FalseVal, nil
}

// structuralMatch implements `=~=` (spec §4.3/§4.4): an Instance matches an
// interface-shaped Class if it conforms; two Classes match if the left
// conforms to the right; an Object matches if it carries a property for
// every method the interface declares (spec §4.3: "for an object, by
// containing a property named m").
func (i *Interpreter) structuralMatch(left, right object.Value) bool {
	iface, ok := right.(*object.Class)
	if !ok {
		return false
	}
	switch v := left.(type) {
	case *object.Instance:
		return v.Class.ConformsTo(iface)
	case *object.Class:
		return v.ConformsTo(iface)
	case *object.Object:
		return objectConformsTo(v, iface)
	}
	return false
}

// objectConformsTo reports whether obj has a property for every non-static
// method iface (and its supers, recursively) declare.
func objectConformsTo(obj *object.Object, iface *object.Class) bool {
	for name, m := range iface.Methods {
		if m.Static {
			continue
		}
		if _, ok := obj.Get(name); !ok {
			return false
		}
	}
	for _, s := range iface.Supers {
		if !objectConformsTo(obj, s) {
			return false
		}
	}
	return true
}

func toInt64(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

func (i *Interpreter) evalLogical(n *ast.LogicalExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	left, exc := i.Eval(n.Left, env)
	if exc != nil {
		return nil, exc
	}
	switch n.Operator {
	case "&&":
		if !object.Truthy(left) {
			return left, nil
		}
		return i.Eval(n.Right, env)
	case "||":
		if object.Truthy(left) {
			return left, nil
		}
		return i.Eval(n.Right, env)
	case "??":
		if _, isNull := left.(*object.Null); !isNull && left != nil {
			return left, nil
		}
		return i.Eval(n.Right, env)
	}
	return nil, i.typeError(fmt.Sprintf("unknown logical operator %q", n.Operator), n.Pos())
}

func (i *Interpreter) evalAssign(n *ast.AssignExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	if n.Operator == "=" {
		val, exc := i.Eval(n.Value, env)
		if exc != nil {
			return nil, exc
		}
		if !env.Set(n.Name, val) {
			env.Define(n.Name, val)
		}
		return val, nil
	}

	cur, ok := env.Get(n.Name)
	if !ok {
		return nil, i.nameError(fmt.Sprintf("undefined name %q", n.Name), n.Pos())
	}
	op := n.Operator[:len(n.Operator)-1] // "+=" -> "+"

	if result, short := shortCircuitResult(op, cur); short {
		if !env.Set(n.Name, result) {
			env.Define(n.Name, result)
		}
		return result, nil
	}

	val, exc := i.Eval(n.Value, env)
	if exc != nil {
		return nil, exc
	}
	combined, exc := i.applyCompound(op, cur, val, n)
	if exc != nil {
		return nil, exc
	}
	if !env.Set(n.Name, combined) {
		env.Define(n.Name, combined)
	}
	return combined, nil
}

// shortCircuitResult reports whether a logical compound assignment (??=,
// &&=, ||=) can resolve from cur alone (spec §4.5): `a ||= rhs()` must not
// evaluate rhs() when a is already truthy, and likewise for &&= and ??=.
func shortCircuitResult(op string, cur object.Value) (object.Value, bool) {
	switch op {
	case "??":
		if _, isNull := cur.(*object.Null); !isNull && cur != nil {
			return cur, true
		}
	case "&&":
		if !object.Truthy(cur) {
			return cur, true
		}
	case "||":
		if object.Truthy(cur) {
			return cur, true
		}
	}
	return nil, false
}

func (i *Interpreter) applyCompound(op string, cur, val object.Value, n *ast.AssignExpression) (object.Value, *object.ExceptionValue) {
	switch op {
	case "+":
		_, leftStr := cur.(*object.String)
		_, rightStr := val.(*object.String)
		if leftStr || rightStr {
			return &object.String{Value: object.ToStringValue(cur) + object.ToStringValue(val)}, nil
		}
		return &object.Number{Value: object.ToNumber(cur) + object.ToNumber(val)}, nil
	case "-":
		return &object.Number{Value: object.ToNumber(cur) - object.ToNumber(val)}, nil
	case "*":
		return &object.Number{Value: object.ToNumber(cur) * object.ToNumber(val)}, nil
	case "/":
		return &object.Number{Value: object.ToNumber(cur) / object.ToNumber(val)}, nil
	case "%":
		return &object.Number{Value: math.Mod(object.ToNumber(cur), object.ToNumber(val))}, nil
	}
	return val, nil
}

func (i *Interpreter) evalAwait(n *ast.AwaitExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	val, exc := i.Eval(n.Argument, env)
	if exc != nil {
		return nil, exc
	}
	p, ok := val.(*object.Promise)
	if !ok {
		return val, nil
	}
	state, settled := p.AwaitBlocking()
	if state == object.Rejected {
		return nil, i.throwValue(settled, n.Pos())
	}
	return settled, nil
}
