// Package parser implements a recursive-descent, Pratt-style parser that
// turns an ALang token stream into the AST defined in internal/ast (spec §4.2).
package parser

import (
	"fmt"
	"strconv"

	"github.com/asultop/alang/internal/ast"
	"github.com/asultop/alang/internal/lexer"
	"github.com/asultop/alang/internal/token"
)

// Precedence levels, lowest to highest (spec §4.2).
const (
	_ int = iota
	LOWEST
	ASSIGNMENT  // = += -= *= /= %= ??= &&= ||=
	CONDITIONAL // ?:
	NULLISH     // ??
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	BIT_OR      // |
	BIT_XOR     // ^
	BIT_AND     // &
	EQUALITY    // == === != !== =~=
	COMPARISON  // < <= > >=
	SHIFT       // << >>
	ADDITIVE    // + -
	MULTIPLICATIVE
	UNARY    // ! - ~ await yield ++ --
	POSTFIX  // ++ -- call get index optional-chain
	PRIMARY
)

var precedences = map[token.TokenType]int{
	token.ASSIGN: ASSIGNMENT, token.PLUS_ASSIGN: ASSIGNMENT, token.MINUS_ASSIGN: ASSIGNMENT,
	token.STAR_ASSIGN: ASSIGNMENT, token.SLASH_ASSIGN: ASSIGNMENT, token.PERCENT_ASSIGN: ASSIGNMENT,
	token.NULLISH_ASSIGN: ASSIGNMENT, token.AND_AND_ASSIGN: ASSIGNMENT, token.OR_OR_ASSIGN: ASSIGNMENT,
	token.QUESTION: CONDITIONAL,
	token.NULLISH:  NULLISH,
	token.OR_OR:    LOGIC_OR,
	token.AND_AND:  LOGIC_AND,
	token.PIPE:     BIT_OR,
	token.CARET:    BIT_XOR,
	token.AMP:      BIT_AND,
	token.EQ: EQUALITY, token.STRICT_EQ: EQUALITY, token.NOT_EQ: EQUALITY,
	token.STRICT_NOT_EQ: EQUALITY, token.INTERFACE_MATCH: EQUALITY,
	token.LT: COMPARISON, token.LT_EQ: COMPARISON, token.GT: COMPARISON, token.GT_EQ: COMPARISON,
	token.SHL: SHIFT, token.SHR: SHIFT,
	token.PLUS: ADDITIVE, token.MINUS: ADDITIVE,
	token.STAR: MULTIPLICATIVE, token.SLASH: MULTIPLICATIVE, token.PERCENT: MULTIPLICATIVE,
	token.LPAREN: POSTFIX, token.LBRACKET: POSTFIX, token.DOT: POSTFIX, token.QUESTION_DOT: POSTFIX,
	token.INC: POSTFIX, token.DEC: POSTFIX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a recursive-descent, error-collecting ALang parser.
type Parser struct {
	l      *lexer.Lexer
	errors []string

	curToken  token.Token
	peekToken token.Token

	prefixFns map[token.TokenType]prefixParseFn
	infixFns  map[token.TokenType]infixParseFn
}

// New constructs a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.INT:      p.parseNumberLiteral,
		token.FLOAT:    p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.NULL:     p.parseNullLiteral,
		token.BANG:     p.parseUnary,
		token.MINUS:    p.parseUnary,
		token.TILDE:    p.parseUnary,
		token.INC:      p.parsePrefixUpdate,
		token.DEC:      p.parsePrefixUpdate,
		token.AWAIT:    p.parseAwait,
		token.YIELD:    p.parseYield,
		token.LPAREN:   p.parseGroupedOrArrow,
		token.LBRACKET: p.parseArrayLiteral,
		token.LBRACE:   p.parseObjectLiteral,
		token.NEW:      p.parseNewExpression,
		token.FUNCTION:  p.parseFunctionExpression,
		token.FN:        p.parseFunctionExpression,
		token.ASYNC:     p.parseAsyncFunctionExpression,
		token.SPREAD:    p.parseSpreadExpression,
	}

	p.infixFns = map[token.TokenType]infixParseFn{
		token.PLUS: p.parseBinary, token.MINUS: p.parseBinary, token.STAR: p.parseBinary,
		token.SLASH: p.parseBinary, token.PERCENT: p.parseBinary,
		token.EQ: p.parseBinary, token.STRICT_EQ: p.parseBinary, token.NOT_EQ: p.parseBinary,
		token.STRICT_NOT_EQ: p.parseBinary, token.INTERFACE_MATCH: p.parseBinary,
		token.LT: p.parseBinary, token.LT_EQ: p.parseBinary, token.GT: p.parseBinary, token.GT_EQ: p.parseBinary,
		token.AMP: p.parseBinary, token.PIPE: p.parseBinary, token.CARET: p.parseBinary,
		token.SHL: p.parseBinary, token.SHR: p.parseBinary,
		token.AND_AND: p.parseLogical, token.OR_OR: p.parseLogical, token.NULLISH: p.parseLogical,
		token.QUESTION:       p.parseConditional,
		token.LPAREN:         p.parseCallExpression,
		token.LBRACKET:       p.parseIndexExpression,
		token.DOT:            p.parseGetExpression,
		token.QUESTION_DOT:   p.parseGetExpression,
		token.INC:            p.parsePostfixUpdate,
		token.DEC:            p.parsePostfixUpdate,
		token.ASSIGN:         p.parseAssignExpression,
		token.PLUS_ASSIGN:    p.parseCompoundAssign,
		token.MINUS_ASSIGN:   p.parseCompoundAssign,
		token.STAR_ASSIGN:    p.parseCompoundAssign,
		token.SLASH_ASSIGN:   p.parseCompoundAssign,
		token.PERCENT_ASSIGN: p.parseCompoundAssign,
		token.NULLISH_ASSIGN: p.parseCompoundAssign,
		token.AND_AND_ASSIGN: p.parseCompoundAssign,
		token.OR_OR_ASSIGN:   p.parseCompoundAssign,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all parse errors collected so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) addError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("%s at %d:%d", msg, p.curToken.Pos.Line, p.curToken.Pos.Column))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(tt token.TokenType) bool  { return p.curToken.Type == tt }
func (p *Parser) peekIs(tt token.TokenType) bool { return p.peekToken.Type == tt }

func (p *Parser) expectPeek(tt token.TokenType) bool {
	if p.peekIs(tt) {
		p.nextToken()
		return true
	}
	p.addError("expected next token to be %s, got %s instead", tt, p.peekToken.Type)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// synchronize implements the error-recovery strategy of spec §4.2: advance
// until a semicolon or a synchronizing keyword so parsing can continue after
// an error inside a single statement.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMICOLON) {
			p.nextToken()
			return
		}
		if token.IsSynchronizingKeyword(p.peekToken.Type) {
			return
		}
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program, collecting all
// parse errors rather than stopping at the first one.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.curToken.Type]
	if !ok {
		p.addError("no prefix parse function for %s found", p.curToken.Type)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func mustFloat(lit string) float64 {
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0
	}
	return v
}
