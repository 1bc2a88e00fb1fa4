package ast

import (
	"strings"

	"github.com/asultop/alang/internal/token"
)

// ExpressionStatement wraps a bare expression used for its side effects.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String() + ";"
	}
	return ";"
}
func (e *ExpressionStatement) Pos() token.Position { return e.Token.Pos }

// VarDeclaration is `let/var/const name [= init];`.
type VarDeclaration struct {
	Token        token.Token
	Kind         string // "let", "var", "const"
	Name         string
	DeclaredType string
	Value        Expression
	Exported     bool
}

func (v *VarDeclaration) statementNode()       {}
func (v *VarDeclaration) TokenLiteral() string { return v.Token.Literal }
func (v *VarDeclaration) String() string {
	var sb strings.Builder
	if v.Exported {
		sb.WriteString("export ")
	}
	sb.WriteString(v.Kind + " " + v.Name)
	if v.Value != nil {
		sb.WriteString(" = " + v.Value.String())
	}
	sb.WriteString(";")
	return sb.String()
}
func (v *VarDeclaration) Pos() token.Position { return v.Token.Pos }

// DestructuringVarDeclaration is `let [a, b] = expr;` / `let {a, b} = expr;`.
type DestructuringVarDeclaration struct {
	Token    token.Token
	Kind     string
	Pattern  Pattern
	Value    Expression
	Exported bool
}

func (d *DestructuringVarDeclaration) statementNode()       {}
func (d *DestructuringVarDeclaration) TokenLiteral() string { return d.Token.Literal }
func (d *DestructuringVarDeclaration) String() string {
	return d.Kind + " " + d.Pattern.String() + " = " + d.Value.String() + ";"
}
func (d *DestructuringVarDeclaration) Pos() token.Position { return d.Token.Pos }

// BlockStatement is a `{ ... }` sequence.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
func (b *BlockStatement) Pos() token.Position { return b.Token.Pos }

// IfStatement is `if (cond) then [else alt]`.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // *BlockStatement or *IfStatement (else-if chain), nil if absent
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) String() string {
	s := "if (" + i.Condition.String() + ") " + i.Consequence.String()
	if i.Alternative != nil {
		s += " else " + i.Alternative.String()
	}
	return s
}
func (i *IfStatement) Pos() token.Position { return i.Token.Pos }

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}
func (w *WhileStatement) Pos() token.Position { return w.Token.Pos }

// DoWhileStatement is `do body while (cond);`.
type DoWhileStatement struct {
	Token     token.Token
	Body      *BlockStatement
	Condition Expression
}

func (d *DoWhileStatement) statementNode()       {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Condition.String() + ");"
}
func (d *DoWhileStatement) Pos() token.Position { return d.Token.Pos }

// ForStatement is the classic C-style `for (init; cond; update) body`. Any of
// Init/Condition/Update may be nil.
type ForStatement struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Update    Expression
	Body      *BlockStatement
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) String() string       { return "for (...) " + f.Body.String() }
func (f *ForStatement) Pos() token.Position  { return f.Token.Pos }

// ForEachStatement is `foreach (name in iterable) body`.
type ForEachStatement struct {
	Token     token.Token
	ValueName string
	KeyName   string // non-empty for `foreach (k, v in obj)`
	Iterable  Expression
	Body      *BlockStatement
}

func (f *ForEachStatement) statementNode()       {}
func (f *ForEachStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForEachStatement) String() string {
	return "foreach (" + f.ValueName + " in " + f.Iterable.String() + ") " + f.Body.String()
}
func (f *ForEachStatement) Pos() token.Position { return f.Token.Pos }

// SwitchCase is one `case expr:`/`default:` arm. Fall-through is implicit
// until `break` (spec §9 design note: switch falls through like the source).
type SwitchCase struct {
	Values     []Expression // empty for default
	Statements []Statement
}

// SwitchStatement is `switch (expr) { case ...: ... default: ... }`.
type SwitchStatement struct {
	Token      token.Token
	Discriminant Expression
	Cases      []SwitchCase
}

func (s *SwitchStatement) statementNode()       {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStatement) String() string       { return "switch (" + s.Discriminant.String() + ") { ... }" }
func (s *SwitchStatement) Pos() token.Position  { return s.Token.Pos }

// MatchArm is one `pattern => body` arm of a `match` (no fall-through, spec §9).
type MatchArm struct {
	Pattern Expression // a literal or wildcard identifier `_`
	Body    Expression
}

// MatchStatement is an expression-oriented pattern match with no fall-through.
type MatchStatement struct {
	Token      token.Token
	Discriminant Expression
	Arms       []MatchArm
}

func (m *MatchStatement) statementNode()       {}
func (m *MatchStatement) TokenLiteral() string { return m.Token.Literal }
func (m *MatchStatement) String() string       { return "match (" + m.Discriminant.String() + ") { ... }" }
func (m *MatchStatement) Pos() token.Position  { return m.Token.Pos }

// ReturnStatement is `return [expr];`.
type ReturnStatement struct {
	Token       token.Token
	ReturnValue Expression
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) String() string {
	if r.ReturnValue == nil {
		return "return;"
	}
	return "return " + r.ReturnValue.String() + ";"
}
func (r *ReturnStatement) Pos() token.Position { return r.Token.Pos }

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (t *ThrowStatement) statementNode()       {}
func (t *ThrowStatement) TokenLiteral() string { return t.Token.Literal }
func (t *ThrowStatement) String() string        { return "throw " + t.Value.String() + ";" }
func (t *ThrowStatement) Pos() token.Position    { return t.Token.Pos }

// TryStatement is `try {} catch (e) {} finally {}`; Catch/Finally are nil if absent.
type TryStatement struct {
	Token       token.Token
	Block       *BlockStatement
	CatchParam  string
	CatchBlock  *BlockStatement
	FinallyBlock *BlockStatement
}

func (t *TryStatement) statementNode()       {}
func (t *TryStatement) TokenLiteral() string { return t.Token.Literal }
func (t *TryStatement) String() string       { return "try " + t.Block.String() }
func (t *TryStatement) Pos() token.Position  { return t.Token.Pos }

// BreakStatement is `break;`.
type BreakStatement struct{ Token token.Token }

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) String() string        { return "break;" }
func (b *BreakStatement) Pos() token.Position    { return b.Token.Pos }

// ContinueStatement is `continue;`.
type ContinueStatement struct{ Token token.Token }

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) String() string        { return "continue;" }
func (c *ContinueStatement) Pos() token.Position    { return c.Token.Pos }

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ Token token.Token }

func (e *EmptyStatement) statementNode()       {}
func (e *EmptyStatement) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStatement) String() string        { return ";" }
func (e *EmptyStatement) Pos() token.Position    { return e.Token.Pos }

// FunctionStatement is a named function declaration.
type FunctionStatement struct {
	Token      token.Token
	Function   *FunctionLiteral
	Decorators []*DecoratorCall
	Exported   bool
}

func (f *FunctionStatement) statementNode()       {}
func (f *FunctionStatement) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionStatement) String() string        { return f.Function.String() }
func (f *FunctionStatement) Pos() token.Position    { return f.Token.Pos }

// MethodDef is one method of a class body, either instance or static.
type MethodDef struct {
	Name     string
	Function *FunctionLiteral
	Static   bool
	// IsAbstract marks an interface method: a name with no body (spec §4.4).
	IsAbstract bool
}

// FieldDef is one field declaration inside a class body, with optional initializer.
type FieldDef struct {
	Name  string
	Value Expression
}

// ClassStatement is a `class Name extends A, B, ... { ... }` declaration.
// When IsInterface is true, every MethodDef is abstract and the declaration
// defines a structural interface (spec §3.1 Class / §4.4).
type ClassStatement struct {
	Token       token.Token
	Name        string
	Supers      []string
	Methods     []MethodDef
	Fields      []FieldDef
	Decorators  []*DecoratorCall
	IsInterface bool
	IsNative    bool
	Exported    bool
}

func (c *ClassStatement) statementNode()       {}
func (c *ClassStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ClassStatement) String() string {
	kind := "class"
	if c.IsInterface {
		kind = "interface"
	}
	return kind + " " + c.Name + " { ... }"
}
func (c *ClassStatement) Pos() token.Position { return c.Token.Pos }

// ExtendsStatement is an open-class augmentation `extends Name { ... }`
// (spec §4.4): mutates Name's method table at runtime.
type ExtendsStatement struct {
	Token   token.Token
	Name    string
	Methods []MethodDef
}

func (e *ExtendsStatement) statementNode()       {}
func (e *ExtendsStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExtendsStatement) String() string        { return "extends " + e.Name + " { ... }" }
func (e *ExtendsStatement) Pos() token.Position    { return e.Token.Pos }

// ImportSpec is one named import `name [as alias]`.
type ImportSpec struct {
	Name  string
	Alias string
}

// ImportStatement covers all import forms of spec §4.2: package-wildcard,
// package-selective, whole-package, and file imports (`from`/`import "path"`).
type ImportStatement struct {
	Token      token.Token
	Package    string // dotted package path; empty for file imports
	Wildcard   bool
	Specs      []ImportSpec
	FilePath   string // non-empty for file imports
	Alias      string // `import "file" as alias`
}

func (i *ImportStatement) statementNode()       {}
func (i *ImportStatement) TokenLiteral() string { return i.Token.Literal }
func (i *ImportStatement) String() string        { return "import ...;" }
func (i *ImportStatement) Pos() token.Position    { return i.Token.Pos }

// GoStatement is `go expr;` — schedules expr as a task (spec §4.6).
type GoStatement struct {
	Token      token.Token
	Expression Expression
}

func (g *GoStatement) statementNode()       {}
func (g *GoStatement) TokenLiteral() string { return g.Token.Literal }
func (g *GoStatement) String() string        { return "go " + g.Expression.String() + ";" }
func (g *GoStatement) Pos() token.Position    { return g.Token.Pos }
