package interp

import (
	"fmt"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/token"
)

// bindPattern destructures val against pattern, defining (declare=true, a
// `let`/`const`/`var` destructuring declaration) or assigning (declare=false,
// a bare destructuring assignment expression) each bound name in env
// (spec §4.2 destructuring).
func (i *Interpreter) bindPattern(pattern ast.Pattern, val object.Value, env *Environment, declare bool) *object.ExceptionValue {
	switch p := pattern.(type) {
	case *ast.IdentifierPattern:
		v := val
		if _, isNull := v.(*object.Null); (isNull || v == nil) && p.Default != nil {
			dv, exc := i.Eval(p.Default, env)
			if exc != nil {
				return exc
			}
			v = dv
		}
		i.bindName(p.Name, v, env, declare)
		return nil

	case *ast.ArrayPattern:
		arr, ok := val.(*object.Array)
		if !ok {
			return i.typeError("cannot destructure non-array value", p.Pos())
		}
		for idx, elemPat := range p.Elements {
			var elemVal object.Value = object.NullVal
			if idx < len(arr.Elements) {
				elemVal = arr.Elements[idx]
			}
			if elemPat == nil {
				continue // elided element, e.g. `[a, , b]`
			}
			if exc := i.bindPattern(elemPat, elemVal, env, declare); exc != nil {
				return exc
			}
		}
		if p.Rest != "" {
			rest := &object.Array{}
			if len(arr.Elements) > len(p.Elements) {
				rest.Elements = append(rest.Elements, arr.Elements[len(p.Elements):]...)
			}
			i.bindName(p.Rest, rest, env, declare)
		}
		return nil

	case *ast.ObjectPattern:
		obj, ok := val.(*object.Object)
		if !ok {
			return i.typeError("cannot destructure non-object value", p.Pos())
		}
		taken := make(map[string]bool, len(p.Properties))
		for _, prop := range p.Properties {
			taken[prop.Key] = true
			v, found := obj.Get(prop.Key)
			if !found {
				v = object.NullVal
			}
			if exc := i.bindPattern(prop.Value, v, env, declare); exc != nil {
				return exc
			}
		}
		if p.Rest != "" {
			rest := object.NewObject()
			for _, k := range obj.Keys {
				if !taken[k] {
					rest.Set(k, obj.Map[k])
				}
			}
			i.bindName(p.Rest, rest, env, declare)
		}
		return nil
	}
	return i.typeError(fmt.Sprintf("unsupported destructuring pattern %T", pattern), token.Position{})
}

func (i *Interpreter) bindName(name string, val object.Value, env *Environment, declare bool) {
	if declare {
		env.Define(name, val)
		return
	}
	if !env.Set(name, val) {
		env.Define(name, val)
	}
}
