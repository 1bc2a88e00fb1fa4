package interp

import (
	"fmt"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/errors"
	"github.com/asultop/alang/internal/eventloop"
	"github.com/asultop/alang/internal/module"
	"github.com/asultop/alang/internal/object"
	"github.com/asultop/alang/internal/token"
)

// Interpreter walks an *ast.Program against an Environment chain, evaluating
// statements for effect and expressions for value: a single, un-compiled
// tree-walking Eval dispatch, with exceptions threaded as a second return
// value instead of panics.
type Interpreter struct {
	Global *Environment
	Loop   *eventloop.Loop

	// Source/File back the caret-annotated error formatting (internal/errors)
	// and the stack trace's file name.
	Source string
	File   string

	// Packages is the dotted-path registry of built-in packages (std.io,
	// std.json, ...); Files caches resolved file imports by absolute path
	// and ImportBaseDir resolves relative file-import paths (spec §4.8).
	Packages      *module.Registry
	Files         *module.FileCache
	ImportBaseDir string

	callStack []errors.StackFrame
}

// New constructs an Interpreter with a fresh global scope and event loop.
func New() *Interpreter {
	return &Interpreter{
		Global:   NewEnvironment(),
		Loop:     eventloop.New(),
		Packages: module.NewRegistry(),
		Files:    module.NewFileCache(),
	}
}

// Run parses-independent entry point: evaluates every top-level statement of
// program against env (normally i.Global), stopping at the first
// unhandled exception.
func (i *Interpreter) Run(program *ast.Program, env *Environment) (object.Value, *object.ExceptionValue) {
	var result object.Value = object.NullVal
	for _, stmt := range program.Statements {
		val, exc := i.Eval(stmt, env)
		if exc != nil {
			return nil, exc
		}
		if isSignal(val) {
			// A bare top-level return/break/continue has nowhere to go; treat
			// the carried value (if any) as the program result.
			if rs, ok := val.(*returnSignal); ok {
				return rs.value, nil
			}
			continue
		}
		result = val
	}
	return result, nil
}

// Eval dispatches on the concrete AST node type. Every statement evaluates
// to object.NullVal unless it is (or contains) an expression statement, a
// return, or a control-flow signal; every expression evaluates to its value.
func (i *Interpreter) Eval(node ast.Node, env *Environment) (object.Value, *object.ExceptionValue) {
	switch n := node.(type) {

	// ---- Statements ----
	case *ast.ExpressionStatement:
		return i.Eval(n.Expression, env)

	case *ast.VarDeclaration:
		return i.evalVarDeclaration(n, env)

	case *ast.DestructuringVarDeclaration:
		val, exc := i.Eval(n.Value, env)
		if exc != nil {
			return nil, exc
		}
		if exc := i.bindPattern(n.Pattern, val, env, true); exc != nil {
			return nil, exc
		}
		return object.NullVal, nil

	case *ast.BlockStatement:
		return i.evalBlock(n, NewEnclosed(env))

	case *ast.IfStatement:
		cond, exc := i.Eval(n.Condition, env)
		if exc != nil {
			return nil, exc
		}
		if object.Truthy(cond) {
			return i.Eval(n.Consequence, env)
		}
		if n.Alternative != nil {
			return i.Eval(n.Alternative, env)
		}
		return object.NullVal, nil

	case *ast.WhileStatement:
		return i.evalWhile(n, env)

	case *ast.DoWhileStatement:
		return i.evalDoWhile(n, env)

	case *ast.ForStatement:
		return i.evalFor(n, env)

	case *ast.ForEachStatement:
		return i.evalForEach(n, env)

	case *ast.SwitchStatement:
		return i.evalSwitch(n, env)

	case *ast.MatchStatement:
		return i.evalMatch(n, env)

	case *ast.ReturnStatement:
		var val object.Value = object.NullVal
		if n.ReturnValue != nil {
			v, exc := i.Eval(n.ReturnValue, env)
			if exc != nil {
				return nil, exc
			}
			val = v
		}
		return &returnSignal{value: val}, nil

	case *ast.BreakStatement:
		return theBreakSignal, nil

	case *ast.ContinueStatement:
		return theContinueSignal, nil

	case *ast.EmptyStatement:
		return object.NullVal, nil

	case *ast.ThrowStatement:
		val, exc := i.Eval(n.Value, env)
		if exc != nil {
			return nil, exc
		}
		return nil, i.throwValue(val, n.Pos())

	case *ast.TryStatement:
		return i.evalTry(n, env)

	case *ast.FunctionStatement:
		fn := i.makeFunction(n.Function, env)
		fn = i.applyDecorators(n.Decorators, fn, env)
		env.Define(n.Function.Name, fn)
		if n.Exported {
			env.MarkExported(n.Function.Name)
		}
		return object.NullVal, nil

	case *ast.ClassStatement:
		return i.evalClassStatement(n, env)

	case *ast.ExtendsStatement:
		return i.evalExtendsStatement(n, env)

	case *ast.ImportStatement:
		return i.evalImportStatement(n, env)

	case *ast.GoStatement:
		i.scheduleGo(n.Expression, env)
		return object.NullVal, nil

	// ---- Expressions ----
	case *ast.NullLiteral:
		return object.NullVal, nil
	case *ast.NumberLiteral:
		return &object.Number{Value: n.Value}, nil
	case *ast.BoolLiteral:
		return object.NativeBool(n.Value), nil
	case *ast.StringLiteral:
		return i.evalStringLiteral(n, env)
	case *ast.Identifier:
		if v, ok := env.Get(n.Name); ok {
			return v, nil
		}
		return nil, i.nameError(fmt.Sprintf("undefined name %q", n.Name), n.Pos())
	case *ast.FunctionLiteral:
		return i.makeFunction(n, env), nil
	case *ast.UnaryExpression:
		return i.evalUnary(n, env)
	case *ast.UpdateExpression:
		return i.evalUpdate(n, env)
	case *ast.BinaryExpression:
		return i.evalBinary(n, env)
	case *ast.LogicalExpression:
		return i.evalLogical(n, env)
	case *ast.ConditionalExpression:
		cond, exc := i.Eval(n.Condition, env)
		if exc != nil {
			return nil, exc
		}
		if object.Truthy(cond) {
			return i.Eval(n.Consequent, env)
		}
		return i.Eval(n.Alternative, env)
	case *ast.AssignExpression:
		return i.evalAssign(n, env)
	case *ast.CallExpression:
		return i.evalCall(n, env)
	case *ast.NewExpression:
		return i.evalNew(n, env)
	case *ast.GetExpression:
		return i.evalGet(n, env)
	case *ast.SetExpression:
		return i.evalSet(n, env)
	case *ast.IndexExpression:
		return i.evalIndex(n, env)
	case *ast.SetIndexExpression:
		return i.evalSetIndex(n, env)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(n, env)
	case *ast.ObjectLiteral:
		return i.evalObjectLiteral(n, env)
	case *ast.SpreadExpression:
		return i.Eval(n.Argument, env)
	case *ast.AwaitExpression:
		return i.evalAwait(n, env)
	case *ast.YieldExpression:
		// Generators are parsed but never executed by the core (spec §9).
		return object.NullVal, nil
	case *ast.DestructuringAssignExpression:
		val, exc := i.Eval(n.Value, env)
		if exc != nil {
			return nil, exc
		}
		if exc := i.bindPattern(n.Pattern, val, env, false); exc != nil {
			return nil, exc
		}
		return val, nil
	}

	return object.NullVal, nil
}

func (i *Interpreter) evalVarDeclaration(n *ast.VarDeclaration, env *Environment) (object.Value, *object.ExceptionValue) {
	var val object.Value = object.NullVal
	if n.Value != nil {
		v, exc := i.Eval(n.Value, env)
		if exc != nil {
			return nil, exc
		}
		val = v
	}
	env.Define(n.Name, val)
	env.DeclareType(n.Name, n.DeclaredType)
	if n.Exported {
		env.MarkExported(n.Name)
	}
	return object.NullVal, nil
}

// evalBlock evaluates statements in order, stopping and forwarding the first
// signal or exception.
func (i *Interpreter) evalBlock(block *ast.BlockStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	var result object.Value = object.NullVal
	for _, stmt := range block.Statements {
		val, exc := i.Eval(stmt, env)
		if exc != nil {
			return nil, exc
		}
		if isSignal(val) {
			return val, nil
		}
		result = val
	}
	return result, nil
}

func (i *Interpreter) evalWhile(n *ast.WhileStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	for {
		cond, exc := i.Eval(n.Condition, env)
		if exc != nil {
			return nil, exc
		}
		if !object.Truthy(cond) {
			break
		}
		val, exc := i.Eval(n.Body, env)
		if exc != nil {
			return nil, exc
		}
		if br, ok := val.(*breakSignal); ok {
			_ = br
			break
		}
		if _, ok := val.(*continueSignal); ok {
			continue
		}
		if rs, ok := val.(*returnSignal); ok {
			return rs, nil
		}
	}
	return object.NullVal, nil
}

func (i *Interpreter) evalDoWhile(n *ast.DoWhileStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	for {
		val, exc := i.Eval(n.Body, env)
		if exc != nil {
			return nil, exc
		}
		if _, ok := val.(*breakSignal); ok {
			break
		}
		if rs, ok := val.(*returnSignal); ok {
			return rs, nil
		}
		cond, exc := i.Eval(n.Condition, env)
		if exc != nil {
			return nil, exc
		}
		if !object.Truthy(cond) {
			break
		}
	}
	return object.NullVal, nil
}

func (i *Interpreter) evalFor(n *ast.ForStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	loopEnv := NewEnclosed(env)
	if n.Init != nil {
		if _, exc := i.Eval(n.Init, loopEnv); exc != nil {
			return nil, exc
		}
	}
	for {
		if n.Condition != nil {
			cond, exc := i.Eval(n.Condition, loopEnv)
			if exc != nil {
				return nil, exc
			}
			if !object.Truthy(cond) {
				break
			}
		}
		val, exc := i.Eval(n.Body, loopEnv)
		if exc != nil {
			return nil, exc
		}
		if _, ok := val.(*breakSignal); ok {
			break
		}
		if rs, ok := val.(*returnSignal); ok {
			return rs, nil
		}
		if n.Update != nil {
			if _, exc := i.Eval(n.Update, loopEnv); exc != nil {
				return nil, exc
			}
		}
	}
	return object.NullVal, nil
}

func (i *Interpreter) evalForEach(n *ast.ForEachStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	iterable, exc := i.Eval(n.Iterable, env)
	if exc != nil {
		return nil, exc
	}

	runBody := func(key, value object.Value) (object.Value, *object.ExceptionValue) {
		iterEnv := NewEnclosed(env)
		if n.KeyName != "" {
			iterEnv.Define(n.KeyName, key)
		}
		iterEnv.Define(n.ValueName, value)
		return i.Eval(n.Body, iterEnv)
	}

	switch coll := iterable.(type) {
	case *object.Array:
		for idx, elem := range coll.Elements {
			val, exc := runBody(&object.Number{Value: float64(idx)}, elem)
			if exc != nil {
				return nil, exc
			}
			if _, ok := val.(*breakSignal); ok {
				return object.NullVal, nil
			}
			if rs, ok := val.(*returnSignal); ok {
				return rs, nil
			}
		}
	case *object.Object:
		for _, key := range coll.Keys {
			val, exc := runBody(&object.String{Value: key}, coll.Map[key])
			if exc != nil {
				return nil, exc
			}
			if _, ok := val.(*breakSignal); ok {
				return object.NullVal, nil
			}
			if rs, ok := val.(*returnSignal); ok {
				return rs, nil
			}
		}
	default:
		return nil, i.typeError("foreach requires an array or object", n.Pos())
	}
	return object.NullVal, nil
}

func (i *Interpreter) evalSwitch(n *ast.SwitchStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	disc, exc := i.Eval(n.Discriminant, env)
	if exc != nil {
		return nil, exc
	}
	switchEnv := NewEnclosed(env)
	matched := false
	for _, c := range n.Cases {
		if !matched {
			if len(c.Values) == 0 {
				matched = true // default
			}
			for _, ve := range c.Values {
				v, exc := i.Eval(ve, switchEnv)
				if exc != nil {
					return nil, exc
				}
				if object.StrictEquals(disc, v) {
					matched = true
					break
				}
			}
		}
		if !matched {
			continue
		}
		// switch falls through by default until `break` (spec §9).
		for _, stmt := range c.Statements {
			val, exc := i.Eval(stmt, switchEnv)
			if exc != nil {
				return nil, exc
			}
			if _, ok := val.(*breakSignal); ok {
				return object.NullVal, nil
			}
			if rs, ok := val.(*returnSignal); ok {
				return rs, nil
			}
		}
	}
	return object.NullVal, nil
}

func (i *Interpreter) evalMatch(n *ast.MatchStatement, env *Environment) (object.Value, *object.ExceptionValue) {
	disc, exc := i.Eval(n.Discriminant, env)
	if exc != nil {
		return nil, exc
	}
	for _, arm := range n.Arms {
		if id, ok := arm.Pattern.(*ast.Identifier); ok && id.Name == "_" {
			return i.Eval(arm.Body, env)
		}
		v, exc := i.Eval(arm.Pattern, env)
		if exc != nil {
			return nil, exc
		}
		if object.StrictEquals(disc, v) {
			return i.Eval(arm.Body, env)
		}
	}
	return object.NullVal, nil
}

func (i *Interpreter) evalStringLiteral(n *ast.StringLiteral, env *Environment) (object.Value, *object.ExceptionValue) {
	if n.Parts == nil {
		return &object.String{Value: n.Value}, nil
	}
	var sb []byte
	for _, part := range n.Parts {
		if lit, ok := part.(*ast.StringLiteral); ok && lit.Parts == nil {
			sb = append(sb, lit.Value...)
			continue
		}
		v, exc := i.Eval(part, env)
		if exc != nil {
			return nil, exc
		}
		sb = append(sb, object.ToStringValue(v)...)
	}
	return &object.String{Value: string(sb)}, nil
}

func (i *Interpreter) evalArrayLiteral(n *ast.ArrayLiteral, env *Environment) (object.Value, *object.ExceptionValue) {
	arr := &object.Array{}
	for _, el := range n.Elements {
		if sp, ok := el.(*ast.SpreadExpression); ok {
			v, exc := i.Eval(sp.Argument, env)
			if exc != nil {
				return nil, exc
			}
			if src, ok := v.(*object.Array); ok {
				arr.Elements = append(arr.Elements, src.Elements...)
				continue
			}
			return nil, i.typeError("spread target is not an array", sp.Pos())
		}
		v, exc := i.Eval(el, env)
		if exc != nil {
			return nil, exc
		}
		arr.Elements = append(arr.Elements, v)
	}
	return arr, nil
}

func (i *Interpreter) evalObjectLiteral(n *ast.ObjectLiteral, env *Environment) (object.Value, *object.ExceptionValue) {
	obj := object.NewObject()
	for _, prop := range n.Properties {
		if prop.IsSpread {
			v, exc := i.Eval(prop.Value, env)
			if exc != nil {
				return nil, exc
			}
			if src, ok := v.(*object.Object); ok {
				for _, k := range src.Keys {
					obj.Set(k, src.Map[k])
				}
				continue
			}
			return nil, i.typeError("spread target is not an object", prop.Value.Pos())
		}
		key := prop.Key
		if prop.KeyExpr != nil {
			kv, exc := i.Eval(prop.KeyExpr, env)
			if exc != nil {
				return nil, exc
			}
			key = object.ToStringValue(kv)
		}
		v, exc := i.Eval(prop.Value, env)
		if exc != nil {
			return nil, exc
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func (i *Interpreter) typeError(msg string, pos token.Position) *object.ExceptionValue {
	return i.newException("TypeError", msg, pos)
}

func (i *Interpreter) nameError(msg string, pos token.Position) *object.ExceptionValue {
	return i.newException("NameError", msg, pos)
}

func (i *Interpreter) rangeError(msg string, pos token.Position) *object.ExceptionValue {
	return i.newException("RangeError", msg, pos)
}

func (i *Interpreter) arityError(msg string, pos token.Position) *object.ExceptionValue {
	return i.newException("ArityError", msg, pos)
}

func (i *Interpreter) importError(msg string, pos token.Position) *object.ExceptionValue {
	return i.newException("ImportError", msg, pos)
}

func (i *Interpreter) newException(class, msg string, pos token.Position) *object.ExceptionValue {
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
	}
}
