package parser

import (
	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/token"
)

func (p *Parser) parseFunctionStatement(decorators []*ast.DecoratorCall, exported bool) ast.Statement {
	tok := p.curToken
	fn := p.finishFunctionLiteral(tok, false)
	lit, ok := fn.(*ast.FunctionLiteral)
	if !ok {
		return nil
	}
	return &ast.FunctionStatement{Token: tok, Function: lit, Decorators: decorators, Exported: exported}
}

func (p *Parser) parseAsyncFunctionStatement(decorators []*ast.DecoratorCall) ast.Statement {
	tok := p.curToken
	if !p.peekIs(token.FUNCTION) && !p.peekIs(token.FN) {
		p.addError("expected function after async, got %s", p.peekToken.Type)
		return nil
	}
	p.nextToken()
	fn := p.finishFunctionLiteral(tok, true)
	lit, ok := fn.(*ast.FunctionLiteral)
	if !ok {
		return nil
	}
	return &ast.FunctionStatement{Token: tok, Function: lit, Decorators: decorators, Exported: false}
}

// parseDecoratedDeclaration parses a run of `@expr` decorators (spec §4.2,
// applied right-to-left at declaration time) preceding a function or class
// declaration.
func (p *Parser) parseDecoratedDeclaration() ast.Statement {
	var decorators []*ast.DecoratorCall
	for p.curIs(token.AT) {
		tok := p.curToken
		p.nextToken()
		callee := p.parseExpression(POSTFIX)
		dec := &ast.DecoratorCall{Token: tok}
		if ce, ok := callee.(*ast.CallExpression); ok {
			dec.Callee = ce.Callee
			dec.Arguments = ce.Arguments
		} else {
			dec.Callee = callee
		}
		decorators = append(decorators, dec)
		p.nextToken()
	}
	switch p.curToken.Type {
	case token.FUNCTION, token.FN:
		return p.parseFunctionStatement(decorators, false)
	case token.ASYNC:
		return p.parseAsyncFunctionStatement(decorators)
	case token.CLASS:
		return p.parseClassStatement(decorators, false)
	case token.EXPORT:
		p.nextToken()
		switch p.curToken.Type {
		case token.FUNCTION, token.FN:
			return p.parseFunctionStatement(decorators, true)
		case token.CLASS:
			return p.parseClassStatement(decorators, true)
		}
		p.addError("expected function or class declaration after decorated export")
		return nil
	default:
		p.addError("expected function or class declaration after decorator, got %s", p.curToken.Type)
		return nil
	}
}

func (p *Parser) parseClassStatement(decorators []*ast.DecoratorCall, exported bool) ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	cls := &ast.ClassStatement{Token: tok, Name: p.curToken.Literal, Decorators: decorators, Exported: exported}

	if p.peekIs(token.EXTENDS) {
		p.nextToken()
		p.nextToken()
		cls.Supers = append(cls.Supers, p.curToken.Literal)
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			cls.Supers = append(cls.Supers, p.curToken.Literal)
		}
	}

	if !p.expectPeek(token.LBRACE) {
		return cls
	}
	p.parseClassBody(cls)
	return cls
}

func (p *Parser) parseInterfaceStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	cls := &ast.ClassStatement{Token: tok, Name: p.curToken.Literal, IsInterface: true}
	if p.peekIs(token.EXTENDS) {
		p.nextToken()
		p.nextToken()
		cls.Supers = append(cls.Supers, p.curToken.Literal)
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			cls.Supers = append(cls.Supers, p.curToken.Literal)
		}
	}
	if !p.expectPeek(token.LBRACE) {
		return cls
	}
	p.parseClassBody(cls)
	return cls
}

// parseClassBody fills in cls.Methods and cls.Fields from a `{ ... }` body.
// A method whose body is empty (`{}`) declares an interface requirement
// rather than an implementation (spec §4.4 null-bodied interface methods).
func (p *Parser) parseClassBody(cls *ast.ClassStatement) {
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		static := false
		abstract := false
		for p.curIs(token.STATIC) {
			static = true
			p.nextToken()
		}
		if p.curIs(token.FUNCTION) || p.curIs(token.FN) {
			tok := p.curToken
			if !p.expectPeek(token.IDENT) {
				p.nextToken()
				continue
			}
			name := p.curToken.Literal
			fn := &ast.FunctionLiteral{Token: tok, Name: name}
			if !p.expectPeek(token.LPAREN) {
				p.nextToken()
				continue
			}
			fn.Params = p.parseParamList()
			if p.peekIs(token.SEMICOLON) {
				p.nextToken()
				abstract = true
			} else if p.expectPeek(token.LBRACE) {
				fn.Body = p.parseBlockStatement()
				if fn.Body != nil && len(fn.Body.Statements) == 0 {
					abstract = true
				}
			}
			cls.Methods = append(cls.Methods, ast.MethodDef{Name: name, Function: fn, Static: static, IsAbstract: abstract})
		} else if p.curIs(token.ASYNC) {
			tok := p.curToken
			p.expectPeek(token.FUNCTION)
			if !p.expectPeek(token.IDENT) {
				p.nextToken()
				continue
			}
			name := p.curToken.Literal
			fn := &ast.FunctionLiteral{Token: tok, Name: name, IsAsync: true}
			if !p.expectPeek(token.LPAREN) {
				p.nextToken()
				continue
			}
			fn.Params = p.parseParamList()
			if p.expectPeek(token.LBRACE) {
				fn.Body = p.parseBlockStatement()
			}
			cls.Methods = append(cls.Methods, ast.MethodDef{Name: name, Function: fn, Static: static})
		} else if p.curIs(token.IDENT) {
			name := p.curToken.Literal
			var val ast.Expression
			if p.peekIs(token.ASSIGN) {
				p.nextToken()
				p.nextToken()
				val = p.parseExpression(ASSIGNMENT)
			}
			cls.Fields = append(cls.Fields, ast.FieldDef{Name: name, Value: val})
			p.expectSemicolonSoft()
		} else {
			p.addError("unexpected token in class body: %s", p.curToken.Type)
		}
		p.nextToken()
	}
}

// parseExtendsStatement parses a top-level `extends Name { ... }` block that
// augments an already-declared class in place (spec §4.4 open classes).
func (p *Parser) parseExtendsStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	ext := &ast.ExtendsStatement{Token: tok, Name: p.curToken.Literal}
	if !p.expectPeek(token.LBRACE) {
		return ext
	}
	shim := &ast.ClassStatement{}
	p.parseClassBody(shim)
	ext.Methods = shim.Methods
	return ext
}

// parseImportStatement handles the wildcard, selective, and whole-package
// forms (spec §4.2): `import pkg.*;`, `import pkg.{a, b as c};`,
// `import pkg;`, and file imports `import "path/to/file" as alias;`.
func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()

	if p.curIs(token.STRING) {
		imp := &ast.ImportStatement{Token: tok, FilePath: p.curToken.Literal}
		if p.peekIs(token.AS) {
			p.nextToken()
			p.nextToken()
			imp.Alias = p.curToken.Literal
		}
		p.expectSemicolonSoft()
		return imp
	}

	pkgName := p.curToken.Literal
	for p.peekIs(token.DOT) {
		p.nextToken()
		if p.peekIs(token.STAR) {
			p.nextToken()
			imp := &ast.ImportStatement{Token: tok, Package: pkgName, Wildcard: true}
			p.expectSemicolonSoft()
			return imp
		}
		if p.peekIs(token.LBRACE) {
			p.nextToken()
			imp := &ast.ImportStatement{Token: tok, Package: pkgName}
			p.nextToken()
			for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
				spec := ast.ImportSpec{Name: p.curToken.Literal}
				if p.peekIs(token.AS) {
					p.nextToken()
					p.nextToken()
					spec.Alias = p.curToken.Literal
				}
				imp.Specs = append(imp.Specs, spec)
				p.nextToken()
				if p.curIs(token.COMMA) {
					p.nextToken()
				}
			}
			p.expectSemicolonSoft()
			return imp
		}
		p.nextToken()
		pkgName += "." + p.curToken.Literal
	}
	imp := &ast.ImportStatement{Token: tok, Package: pkgName}
	p.expectSemicolonSoft()
	return imp
}

// parseFromImportStatement handles `from pkg import a, b as c;`.
func (p *Parser) parseFromImportStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	pkgName := p.curToken.Literal
	for p.peekIs(token.DOT) {
		p.nextToken()
		p.nextToken()
		pkgName += "." + p.curToken.Literal
	}
	if !p.expectPeek(token.IMPORT) {
		return nil
	}
	imp := &ast.ImportStatement{Token: tok, Package: pkgName}
	if p.peekIs(token.STAR) {
		p.nextToken()
		imp.Wildcard = true
		p.expectSemicolonSoft()
		return imp
	}
	p.nextToken()
	for {
		spec := ast.ImportSpec{Name: p.curToken.Literal}
		if p.peekIs(token.AS) {
			p.nextToken()
			p.nextToken()
			spec.Alias = p.curToken.Literal
		}
		imp.Specs = append(imp.Specs, spec)
		if p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}
	p.expectSemicolonSoft()
	return imp
}
