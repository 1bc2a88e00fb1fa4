package parser

import (
	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	var stmt ast.Statement
	switch p.curToken.Type {
	case token.LET, token.VAR, token.CONST:
		stmt = p.parseVarDeclaration(false)
	case token.LBRACE:
		stmt = p.parseBlockStatement()
	case token.IF:
		stmt = p.parseIfStatement()
	case token.WHILE:
		stmt = p.parseWhileStatement()
	case token.DO:
		stmt = p.parseDoWhileStatement()
	case token.FOR:
		stmt = p.parseForOrForEachStatement()
	case token.SWITCH:
		stmt = p.parseSwitchStatement()
	case token.MATCH:
		stmt = p.parseMatchStatement()
	case token.RETURN:
		stmt = p.parseReturnStatement()
	case token.THROW:
		stmt = p.parseThrowStatement()
	case token.TRY:
		stmt = p.parseTryStatement()
	case token.BREAK:
		stmt = &ast.BreakStatement{Token: p.curToken}
		p.expectSemicolonSoft()
	case token.CONTINUE:
		stmt = &ast.ContinueStatement{Token: p.curToken}
		p.expectSemicolonSoft()
	case token.FUNCTION, token.FN:
		stmt = p.parseFunctionStatement(nil, false)
	case token.ASYNC:
		stmt = p.parseAsyncFunctionStatement(nil)
	case token.CLASS:
		stmt = p.parseClassStatement(nil, false)
	case token.INTERFACE:
		stmt = p.parseInterfaceStatement()
	case token.EXTENDS:
		stmt = p.parseExtendsStatement()
	case token.IMPORT:
		stmt = p.parseImportStatement()
	case token.FROM:
		stmt = p.parseFromImportStatement()
	case token.EXPORT:
		stmt = p.parseExportStatement()
	case token.GO:
		stmt = p.parseGoStatement()
	case token.AT:
		stmt = p.parseDecoratedDeclaration()
	case token.SEMICOLON:
		stmt = &ast.EmptyStatement{Token: p.curToken}
	default:
		stmt = p.parseExpressionStatement()
	}

	if stmt == nil && len(p.errors) > 0 {
		p.synchronize()
	}
	return stmt
}

func (p *Parser) expectSemicolonSoft() {
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if dest := asDestructuringTarget(expr); dest != nil && p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		val := p.parseExpression(ASSIGNMENT)
		p.expectSemicolonSoft()
		return &ast.ExpressionStatement{Token: tok, Expression: &ast.DestructuringAssignExpression{Token: tok, Pattern: dest, Value: val}}
	}
	p.expectSemicolonSoft()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// asDestructuringTarget re-interprets an array/object literal as an
// assignment pattern (spec §4.2 destructuring in an assignment).
func asDestructuringTarget(expr ast.Expression) ast.Pattern {
	switch e := expr.(type) {
	case *ast.ArrayLiteral:
		pat := &ast.ArrayPattern{Token: e.Token}
		for _, el := range e.Elements {
			if id, ok := el.(*ast.Identifier); ok {
				pat.Elements = append(pat.Elements, &ast.IdentifierPattern{Name: id.Name})
			}
		}
		return pat
	case *ast.ObjectLiteral:
		pat := &ast.ObjectPattern{Token: e.Token}
		for _, prop := range e.Properties {
			if id, ok := prop.Value.(*ast.Identifier); ok {
				pat.Properties = append(pat.Properties, ast.ObjectPatternProperty{Key: prop.Key, Value: &ast.IdentifierPattern{Name: id.Name}})
			}
		}
		return pat
	}
	return nil
}

func (p *Parser) parseVarDeclaration(exported bool) ast.Statement {
	tok := p.curToken
	kind := p.curToken.Literal

	if p.peekIs(token.LBRACKET) || p.peekIs(token.LBRACE) {
		p.nextToken()
		pattern := p.parsePattern()
		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
		p.nextToken()
		val := p.parseExpression(ASSIGNMENT)
		p.expectSemicolonSoft()
		return &ast.DestructuringVarDeclaration{Token: tok, Kind: kind, Pattern: pattern, Value: val, Exported: exported}
	}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl := &ast.VarDeclaration{Token: tok, Kind: kind, Name: p.curToken.Literal, Exported: exported}
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		decl.DeclaredType = p.curToken.Literal
	}
	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		decl.Value = p.parseExpression(ASSIGNMENT)
	}
	p.expectSemicolonSoft()
	return decl
}

func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.LBRACKET:
		return p.parseArrayPattern()
	case token.LBRACE:
		return p.parseObjectPattern()
	default:
		name := p.curToken.Literal
		pat := &ast.IdentifierPattern{Token: p.curToken, Name: name}
		if p.peekIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			pat.Default = p.parseExpression(ASSIGNMENT)
		}
		return pat
	}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	tok := p.curToken
	pat := &ast.ArrayPattern{Token: tok}
	p.nextToken()
	for !p.curIs(token.RBRACKET) {
		if p.curIs(token.EOF) {
			p.addError("unterminated array pattern")
			break
		}
		if p.curIs(token.SPREAD) {
			p.nextToken()
			pat.Rest = p.curToken.Literal
			p.nextToken()
			break
		}
		pat.Elements = append(pat.Elements, p.parsePattern())
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return pat
}

func (p *Parser) parseObjectPattern() ast.Pattern {
	tok := p.curToken
	pat := &ast.ObjectPattern{Token: tok}
	p.nextToken()
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			p.addError("unterminated object pattern")
			break
		}
		if p.curIs(token.SPREAD) {
			p.nextToken()
			pat.Rest = p.curToken.Literal
			p.nextToken()
			break
		}
		key := p.curToken.Literal
		var valuePat ast.Pattern
		if p.peekIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			valuePat = p.parsePattern()
		} else {
			valuePat = &ast.IdentifierPattern{Name: key}
			if p.peekIs(token.ASSIGN) {
				p.nextToken()
				p.nextToken()
				valuePat.(*ast.IdentifierPattern).Default = p.parseExpression(ASSIGNMENT)
			}
		}
		pat.Properties = append(pat.Properties, ast.ObjectPatternProperty{Key: key, Value: valuePat})
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return pat
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	cons := p.parseBlockStatement()
	ifStmt := &ast.IfStatement{Token: tok, Condition: cond, Consequence: cons}
	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			ifStmt.Alternative = p.parseIfStatement()
		} else if p.expectPeek(token.LBRACE) {
			ifStmt.Alternative = p.parseBlockStatement()
		}
	}
	return ifStmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	if !p.expectPeek(token.WHILE) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.expectSemicolonSoft()
	return &ast.DoWhileStatement{Token: tok, Body: body, Condition: cond}
}

// parseForOrForEachStatement disambiguates `for (init; cond; update)` from
// `foreach (name in iterable)`-shaped `for (name in iterable)` by scanning
// ahead for a bare `in` before the first semicolon.
func (p *Parser) parseForOrForEachStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	save := p.l.Save()
	savedCur, savedPeek := p.curToken, p.peekToken

	p.nextToken()
	if (p.curIs(token.LET) || p.curIs(token.VAR) || p.curIs(token.CONST) || p.curIs(token.IDENT)) {
		maybeIsForEach := p.scanLooksLikeForEach()
		if maybeIsForEach {
			p.l.Restore(save)
			p.curToken, p.peekToken = savedCur, savedPeek
			p.nextToken()
			return p.parseForEachStatement(tok)
		}
	}

	p.l.Restore(save)
	p.curToken, p.peekToken = savedCur, savedPeek
	return p.parseClassicForStatement(tok)
}

func (p *Parser) scanLooksLikeForEach() bool {
	depth := 0
	cur, peek := p.curToken, p.peekToken
	for {
		if cur.Type == token.IN && depth == 0 {
			return true
		}
		if cur.Type == token.SEMICOLON && depth == 0 {
			return false
		}
		if cur.Type == token.LPAREN || cur.Type == token.LBRACKET || cur.Type == token.LBRACE {
			depth++
		}
		if cur.Type == token.RPAREN {
			if depth == 0 {
				return false
			}
			depth--
		}
		if cur.Type == token.EOF {
			return false
		}
		cur = peek
		peek = p.l.NextToken()
	}
}

func (p *Parser) parseForEachStatement(tok token.Token) ast.Statement {
	if p.curIs(token.LET) || p.curIs(token.VAR) || p.curIs(token.CONST) {
		p.nextToken()
	}
	if !p.curIs(token.IDENT) {
		p.addError("expected identifier in foreach binder, got %s", p.curToken.Type)
		return nil
	}
	fe := &ast.ForEachStatement{Token: tok, ValueName: p.curToken.Literal}
	if p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		fe.KeyName = fe.ValueName
		fe.ValueName = p.curToken.Literal
	}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	fe.Iterable = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fe.Body = p.parseBlockStatement()
	return fe
}

func (p *Parser) parseClassicForStatement(tok token.Token) ast.Statement {
	forStmt := &ast.ForStatement{Token: tok}
	p.nextToken()
	if !p.curIs(token.SEMICOLON) {
		forStmt.Init = p.parseStatement()
	} else {
		p.nextToken()
	}
	if !p.curIs(token.SEMICOLON) {
		forStmt.Condition = p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}
	p.nextToken()
	if !p.curIs(token.RPAREN) {
		forStmt.Update = p.parseExpression(LOWEST)
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	forStmt.Body = p.parseBlockStatement()
	return forStmt
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	disc := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	sw := &ast.SwitchStatement{Token: tok, Discriminant: disc}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		c := ast.SwitchCase{}
		if p.curIs(token.CASE) {
			p.nextToken()
			c.Values = append(c.Values, p.parseExpression(LOWEST))
			for p.peekIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				c.Values = append(c.Values, p.parseExpression(LOWEST))
			}
			if !p.expectPeek(token.COLON) {
				return sw
			}
		} else if p.curIs(token.DEFAULT) {
			if !p.expectPeek(token.COLON) {
				return sw
			}
		} else {
			p.addError("expected case or default in switch body, got %s", p.curToken.Type)
			break
		}
		p.nextToken()
		for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			stmt := p.parseStatement()
			if stmt != nil {
				c.Statements = append(c.Statements, stmt)
			}
			p.nextToken()
		}
		sw.Cases = append(sw.Cases, c)
	}
	return sw
}

func (p *Parser) parseMatchStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	disc := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	m := &ast.MatchStatement{Token: tok, Discriminant: disc}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		var pattern ast.Expression
		if p.curIs(token.IDENT) && p.curToken.Literal == "_" {
			pattern = &ast.Identifier{Token: p.curToken, Name: "_"}
		} else {
			pattern = p.parseExpression(LOWEST)
		}
		if !p.expectPeek(token.ARROW) {
			p.addError("expected -> in match arm")
		}
		p.nextToken()
		body := p.parseExpression(ASSIGNMENT)
		m.Arms = append(m.Arms, ast.MatchArm{Pattern: pattern, Body: body})
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return m
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	r := &ast.ReturnStatement{Token: tok}
	if !p.peekIs(token.SEMICOLON) && !p.peekIs(token.RBRACE) {
		p.nextToken()
		r.ReturnValue = p.parseExpression(LOWEST)
	}
	p.expectSemicolonSoft()
	return r
}

func (p *Parser) parseThrowStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression(LOWEST)
	p.expectSemicolonSoft()
	return &ast.ThrowStatement{Token: tok, Value: val}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	block := p.parseBlockStatement()
	t := &ast.TryStatement{Token: tok, Block: block}
	if p.peekIs(token.CATCH) {
		p.nextToken()
		if p.peekIs(token.LPAREN) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return t
			}
			t.CatchParam = p.curToken.Literal
			if !p.expectPeek(token.RPAREN) {
				return t
			}
		}
		if !p.expectPeek(token.LBRACE) {
			return t
		}
		t.CatchBlock = p.parseBlockStatement()
	}
	if p.peekIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return t
		}
		t.FinallyBlock = p.parseBlockStatement()
	}
	return t
}

func (p *Parser) parseGoStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	p.expectSemicolonSoft()
	return &ast.GoStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseExportStatement() ast.Statement {
	p.nextToken()
	switch p.curToken.Type {
	case token.LET, token.VAR, token.CONST:
		return p.parseVarDeclaration(true)
	case token.FUNCTION, token.FN:
		return p.parseFunctionStatement(nil, true)
	case token.CLASS:
		return p.parseClassStatement(nil, true)
	default:
		p.addError("export must precede a variable, function, or class declaration")
		return nil
	}
}
