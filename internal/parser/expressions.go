package parser

import (
	"strings"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/lexer"
	"github.com/asultop/alang/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	return &ast.NumberLiteral{Token: p.curToken, Value: mustFloat(p.curToken.Literal)}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	return &ast.BoolLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

// parseStringLiteral splits an interpolated string (`${...}`) into a Parts
// spine at parse time (spec §4.2 "Interpolated strings"). Escaping `\${` was
// already normalized to the literal sequence `\$` `{` by the lexer, so a
// literal `${` survives as the three-byte sequence "\${" in the decoded value.
func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	raw := tok.Literal
	if !strings.Contains(raw, "${") {
		return &ast.StringLiteral{Token: tok, Value: raw}
	}

	var parts []ast.Expression
	var lit strings.Builder
	i := 0
	for i < len(raw) {
		if i+1 < len(raw) && raw[i] == '\\' && raw[i+1] == '$' {
			lit.WriteByte('$')
			i += 2
			continue
		}
		if i+1 < len(raw) && raw[i] == '$' && raw[i+1] == '{' {
			if lit.Len() > 0 {
				parts = append(parts, &ast.StringLiteral{Token: tok, Value: lit.String()})
				lit.Reset()
			}
			depth := 1
			j := i + 2
			start := j
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto done
					}
				}
				j++
			}
		done:
			sub := raw[start:j]
			subLexer := newSubLexer(sub)
			subParser := New(subLexer)
			expr := subParser.parseExpression(LOWEST)
			if expr != nil {
				parts = append(parts, expr)
			}
			p.errors = append(p.errors, subParser.errors...)
			i = j + 1
			continue
		}
		lit.WriteByte(raw[i])
		i++
	}
	if lit.Len() > 0 {
		parts = append(parts, &ast.StringLiteral{Token: tok, Value: lit.String()})
	}
	return &ast.StringLiteral{Token: tok, Value: raw, Parts: parts}
}

func (p *Parser) parseUnary() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(UNARY)
	return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parsePrefixUpdate() ast.Expression {
	tok := p.curToken
	p.nextToken()
	target := p.parseExpression(UNARY)
	return &ast.UpdateExpression{Token: tok, Operator: tok.Literal, Target: target, Prefix: true}
}

func (p *Parser) parsePostfixUpdate(left ast.Expression) ast.Expression {
	return &ast.UpdateExpression{Token: p.curToken, Operator: p.curToken.Literal, Target: left, Prefix: false}
}

func (p *Parser) parseAwait() ast.Expression {
	tok := p.curToken
	p.nextToken()
	arg := p.parseExpression(UNARY)
	return &ast.AwaitExpression{Token: tok, Argument: arg}
}

func (p *Parser) parseYield() ast.Expression {
	tok := p.curToken
	delegate := false
	if p.peekIs(token.STAR) {
		p.nextToken()
		delegate = true
	}
	if p.peekIs(token.SEMICOLON) || p.peekIs(token.RPAREN) || p.peekIs(token.RBRACE) || p.peekIs(token.COMMA) {
		return &ast.YieldExpression{Token: tok, Delegate: delegate}
	}
	p.nextToken()
	arg := p.parseExpression(UNARY)
	return &ast.YieldExpression{Token: tok, Argument: arg, Delegate: delegate}
}

func (p *Parser) parseSpreadExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	arg := p.parseExpression(UNARY)
	return &ast.SpreadExpression{Token: tok, Argument: arg}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseLogical(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.LogicalExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseConditional(cond ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	cons := p.parseExpression(ASSIGNMENT)
	if !p.expectPeek(token.COLON) {
		return cons
	}
	p.nextToken()
	alt := p.parseExpression(ASSIGNMENT)
	return &ast.ConditionalExpression{Token: tok, Condition: cond, Consequent: cons, Alternative: alt}
}

func (p *Parser) parseGroupedOrArrow() ast.Expression {
	startState := p.l.Save()
	savedCur, savedPeek := p.curToken, p.peekToken

	if arrow := p.tryParseArrowFunction(); arrow != nil {
		return arrow
	}

	p.l.Restore(startState)
	p.curToken, p.peekToken = savedCur, savedPeek

	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

// tryParseArrowFunction attempts to parse `(params) -> body` or a single
// bare-identifier arrow `x -> body`; returns nil (without consuming) on any
// mismatch so the caller can fall back to a parenthesized expression.
func (p *Parser) tryParseArrowFunction() (result ast.Expression) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
		}
	}()

	tok := p.curToken
	var params []ast.Param

	if p.curIs(token.LPAREN) {
		p.nextToken()
		for !p.curIs(token.RPAREN) {
			if !p.curIs(token.IDENT) {
				return nil
			}
			param := ast.Param{Name: p.curToken.Literal}
			if p.peekIs(token.SPREAD) {
				return nil
			}
			if p.peekIs(token.ASSIGN) {
				p.nextToken()
				p.nextToken()
				param.Default = p.parseExpression(ASSIGNMENT)
			}
			params = append(params, param)
			p.nextToken()
			if p.curIs(token.COMMA) {
				p.nextToken()
				continue
			}
			if p.curIs(token.RPAREN) {
				break
			}
			return nil
		}
		if !p.curIs(token.RPAREN) {
			return nil
		}
		if !p.peekIs(token.ARROW) {
			return nil
		}
		p.nextToken()
	}

	if !p.curIs(token.ARROW) {
		return nil
	}
	p.nextToken()

	fn := &ast.FunctionLiteral{Token: tok, Params: params, IsArrow: true}
	if p.curIs(token.LBRACE) {
		fn.Body = p.parseBlockStatement()
	} else {
		expr := p.parseExpression(ASSIGNMENT)
		fn.Body = &ast.BlockStatement{Token: tok, Statements: []ast.Statement{&ast.ReturnStatement{Token: tok, ReturnValue: expr}}}
	}
	return fn
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken
	arr := &ast.ArrayLiteral{Token: tok}
	p.nextToken()
	for !p.curIs(token.RBRACKET) {
		if p.curIs(token.EOF) {
			p.addError("unterminated array literal")
			break
		}
		arr.Elements = append(arr.Elements, p.parseExpression(ASSIGNMENT))
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.curToken
	obj := &ast.ObjectLiteral{Token: tok}
	p.nextToken()
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			p.addError("unterminated object literal")
			break
		}
		if p.curIs(token.SPREAD) {
			p.nextToken()
			val := p.parseExpression(ASSIGNMENT)
			obj.Properties = append(obj.Properties, ast.ObjectProperty{IsSpread: true, Value: val})
		} else {
			var key string
			var keyExpr ast.Expression
			if p.curIs(token.LBRACKET) {
				p.nextToken()
				keyExpr = p.parseExpression(ASSIGNMENT)
				p.expectPeek(token.RBRACKET)
			} else if p.curIs(token.STRING) {
				key = p.curToken.Literal
			} else {
				key = p.curToken.Literal
			}
			p.expectPeek(token.COLON)
			p.nextToken()
			val := p.parseExpression(ASSIGNMENT)
			obj.Properties = append(obj.Properties, ast.ObjectProperty{Key: key, KeyExpr: keyExpr, Value: val})
		}
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return obj
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	class := p.parseExpression(POSTFIX)
	newExpr := &ast.NewExpression{Token: tok, Class: class}
	if ce, ok := class.(*ast.CallExpression); ok {
		newExpr.Class = ce.Callee
		newExpr.Arguments = ce.Arguments
	}
	return newExpr
}

func (p *Parser) parseFunctionExpression() ast.Expression {
	return p.finishFunctionLiteral(p.curToken, false)
}

func (p *Parser) parseAsyncFunctionExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.FUNCTION) && !p.peekIs(token.FN) {
		// allow `async function` or `async (x) -> ...`
	}
	if p.peekIs(token.FUNCTION) || p.peekIs(token.FN) {
		p.nextToken()
		return p.finishFunctionLiteral(tok, true)
	}
	p.nextToken()
	expr := p.parseExpression(UNARY)
	if fn, ok := expr.(*ast.FunctionLiteral); ok {
		fn.IsAsync = true
		return fn
	}
	return expr
}

func (p *Parser) finishFunctionLiteral(tok token.Token, isAsync bool) ast.Expression {
	fn := &ast.FunctionLiteral{Token: tok, IsAsync: isAsync}
	if p.peekIs(token.STAR) {
		p.nextToken()
		fn.IsGenerator = true
	}
	if p.peekIs(token.IDENT) {
		p.nextToken()
		fn.Name = p.curToken.Literal
	}
	if !p.expectPeek(token.LPAREN) {
		return fn
	}
	fn.Params = p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

// parseParamList parses a parenthesized parameter list, enforcing spec
// §4.2's rules: at most one rest param (last), and once a default appears
// every later non-rest param must have one too.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	p.nextToken()
	seenDefault := false
	seenRest := false
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.EOF) {
			p.addError("unterminated parameter list")
			break
		}
		param := ast.Param{}
		if p.curIs(token.SPREAD) {
			if seenRest {
				p.addError("a function may have at most one rest parameter")
			}
			p.nextToken()
			param.Rest = true
			seenRest = true
		} else if seenRest {
			p.addError("a rest parameter must be the last parameter")
		}
		if !p.curIs(token.IDENT) {
			p.addError("expected parameter name, got %s", p.curToken.Type)
		} else {
			param.Name = p.curToken.Literal
		}
		if p.peekIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.DeclaredType = p.curToken.Literal
		}
		if p.peekIs(token.ASSIGN) {
			if param.Rest {
				p.addError("a rest parameter may not have a default value")
			}
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(ASSIGNMENT)
			seenDefault = true
		} else if seenDefault && !param.Rest {
			p.addError("parameter %q must have a default value because a preceding parameter does", param.Name)
		}
		params = append(params, param)
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return params
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.curToken
	args := p.parseExpressionList(token.RPAREN)
	return &ast.CallExpression{Token: tok, Callee: callee, Arguments: args}
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression
	p.nextToken()
	for !p.curIs(end) {
		if p.curIs(token.EOF) {
			p.addError("unterminated expression list, expected %s", end)
			break
		}
		list = append(list, p.parseExpression(ASSIGNMENT))
		p.nextToken()
		if p.curIs(token.COMMA) {
			p.nextToken()
		}
	}
	return list
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return &ast.IndexExpression{Token: tok, Left: left, Index: idx}
	}
	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		val := p.parseExpression(ASSIGNMENT)
		return &ast.SetIndexExpression{Token: tok, Left: left, Index: idx, Value: val}
	}
	return &ast.IndexExpression{Token: tok, Left: left, Index: idx}
}

func (p *Parser) parseGetExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	optional := tok.Type == token.QUESTION_DOT
	p.nextToken()
	// spec §9: keywords are allowed as property names after `.`
	name := p.curToken.Literal
	get := &ast.GetExpression{Token: tok, Object: left, Name: name, Optional: optional}
	if p.peekIs(token.ASSIGN) && !optional {
		p.nextToken()
		p.nextToken()
		val := p.parseExpression(ASSIGNMENT)
		return &ast.SetExpression{Token: tok, Object: left, Name: name, Value: val}
	}
	return get
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	val := p.parseExpression(ASSIGNMENT)
	if id, ok := left.(*ast.Identifier); ok {
		return &ast.AssignExpression{Token: tok, Name: id.Name, Operator: "=", Value: val}
	}
	p.addError("invalid assignment target")
	return val
}

func (p *Parser) parseCompoundAssign(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Literal
	p.nextToken()
	val := p.parseExpression(ASSIGNMENT)
	if id, ok := left.(*ast.Identifier); ok {
		return &ast.AssignExpression{Token: tok, Name: id.Name, Operator: op, Value: val}
	}
	p.addError("invalid assignment target")
	return val
}

func newSubLexer(src string) *lexer.Lexer {
	return lexer.New(src)
}
