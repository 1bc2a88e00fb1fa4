package interp

import (
	"fmt"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/object"
)

// evalClassStatement builds a runtime Class from its declaration (spec §3.1
// Class / §4.4): resolves each named super to an already-defined Class value,
// converts each MethodDef/FieldDef, and binds the class under its own name.
func (i *Interpreter) evalClassStatement(n *ast.ClassStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	class := object.NewClass(n.Name)
	class.IsInterface = n.IsInterface
	class.FieldEnv = env

	for _, superName := range n.Supers {
		superVal, ok := env.Get(superName)
		if !ok {
			return nil, i.nameError(fmt.Sprintf("undefined super class %q", superName), n.Pos())
		}
		super, ok := superVal.(*object.Class)
		if !ok {
			return nil, i.typeError(fmt.Sprintf("%q is not a class", superName), n.Pos())
		}
		class.Supers = append(class.Supers, super)
	}

	for _, m := range n.Methods {
		i.defineMethod(class, m, env)
	}

	for _, super := range class.Supers {
		if super.IsInterface && !class.ConformsTo(super) {
			return nil, i.typeError(fmt.Sprintf("class %q does not implement interface %q", n.Name, super.Name), n.Pos())
		}
	}

	for _, f := range n.Fields {
		class.FieldOrder = append(class.FieldOrder, f.Name)
		class.FieldInit[f.Name] = f.Value
	}

	result := object.Value(class)
	for idx := len(n.Decorators) - 1; idx >= 0; idx-- {
		dec := n.Decorators[idx]
		callee, exc := i.Eval(dec.Callee, env)
		if exc != nil {
			return nil, exc
		}
		args, exc := i.evalArguments(dec.Arguments, env)
		if exc != nil {
			return nil, exc
		}
		args = append(args, result)
		wrapped, exc := i.callValue(callee, args, dec.Pos())
		if exc != nil {
			return nil, exc
		}
		result = wrapped
	}

	env.Define(n.Name, result)
	if n.Exported {
		env.MarkExported(n.Name)
	}
	return object.NullVal, nil
}

func (i *Interpreter) defineMethod(class *object.Class, m ast.MethodDef, env *Environment) {
	method := &object.Method{Name: m.Name, Static: m.Static, IsAbstract: m.IsAbstract}
	if !m.IsAbstract && m.Function != nil {
		method.Function = i.makeFunction(m.Function, env)
	}
	class.Methods[m.Name] = method
}

// evalExtendsStatement reopens an already-declared class and merges in new
// or overriding methods (spec §4.4 open classes): because LookupMethod reads
// class.Methods live, every Instance created before or after this mutation
// observes the change.
func (i *Interpreter) evalExtendsStatement(n *ast.ExtendsStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	v, ok := env.Get(n.Name)
	if !ok {
		return nil, i.nameError(fmt.Sprintf("undefined class %q", n.Name), n.Pos())
	}
	class, ok := v.(*object.Class)
	if !ok {
		return nil, i.typeError(fmt.Sprintf("%q is not a class", n.Name), n.Pos())
	}
	for _, m := range n.Methods {
		i.defineMethod(class, m, env)
	}
	return object.NullVal, nil
}

// evalNew allocates an Instance, runs field initializers in declaration
// order (supers first, depth-first, then own fields), and invokes a
// `constructor` method if one exists (spec §4.4 `new`).
func (i *Interpreter) evalNew(n *ast.NewExpression, env *Environment) (object.Value, *object.ExceptionValue) {
	classVal, exc := i.Eval(n.Class, env)
	if exc != nil {
		return nil, exc
	}
	class, ok := classVal.(*object.Class)
	if !ok {
		return nil, i.typeError(fmt.Sprintf("%s is not a class", classVal.Type()), n.Pos())
	}
	if class.IsInterface {
		return nil, i.typeError(fmt.Sprintf("cannot instantiate interface %q", class.Name), n.Pos())
	}

	inst := object.NewInstance(class)
	if exc := i.initFields(class, inst, make(map[*object.Class]bool)); exc != nil {
		return nil, exc
	}

	args, exc := i.evalArguments(n.Arguments, env)
	if exc != nil {
		return nil, exc
	}
	if ctor, _ := class.LookupMethod("constructor"); ctor != nil && ctor.Function != nil {
		if _, exc := i.callFunction(i.bindMethod(ctor.Function, inst), args, n.Pos()); exc != nil {
			return nil, exc
		}
	}
	return inst, nil
}

// initFields runs field initializers depth-first across the super list,
// supers before the class itself, matching method lookup order (spec §4.4)
// so a subclass's own initializer can see defaults a super already applied.
func (i *Interpreter) initFields(class *object.Class, inst *object.Instance, seen map[*object.Class]bool) *object.ExceptionValue {
	if seen[class] {
		return nil
	}
	seen[class] = true
	for _, super := range class.Supers {
		if exc := i.initFields(super, inst, seen); exc != nil {
			return exc
		}
	}
	fieldEnv := NewEnclosed(class.FieldEnv)
	fieldEnv.Define("this", inst)
	for _, name := range class.FieldOrder {
		initExpr := class.FieldInit[name]
		var val object.Value = object.NullVal
		if initExpr != nil {
			v, exc := i.Eval(initExpr, fieldEnv)
			if exc != nil {
				return exc
			}
			val = v
		}
		inst.Fields[name] = val
	}
	return nil
}
