// Package token defines the lexical token vocabulary for ALang source code.
package token

import "fmt"

// TokenType identifies the lexical category of a Token.
type TokenType int

// Token kinds, grouped the way the lexer emits them.
const (
	ILLEGAL TokenType = iota // unexpected character
	EOF                      // end of file
	COMMENT                  // line, block, or triple-quoted comment

	// Identifiers and literals
	IDENT  // identifiers: x, myVar, MyClass
	INT    // integer literals: 123
	FLOAT  // float literals: 123.45, 1.5e10
	STRING // string literals: "hello", with ${...} interpolation markers resolved by the parser
	TEMPLATE_STRING

	literalEnd

	// Keywords
	LET
	VAR
	CONST
	FUNCTION
	FN
	RETURN
	IF
	ELSE
	WHILE
	DO
	FOR
	FOREACH
	IN
	BREAK
	CONTINUE
	SWITCH
	CASE
	DEFAULT
	CLASS
	EXTENDS
	NEW
	TRUE
	FALSE
	NULL
	AWAIT
	ASYNC
	GO
	TRY
	CATCH
	FINALLY
	THROW
	INTERFACE
	IMPORT
	FROM
	AS
	EXPORT
	STATIC
	MATCH
	YIELD

	keywordEnd

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COLON
	COMMA
	DOT
	SPREAD // ...
	AT     // @ (decorators)

	// Operators
	ASSIGN          // =
	PLUS            // +
	MINUS           // -
	STAR            // *
	SLASH           // /
	PERCENT         // %
	PLUS_ASSIGN     // +=
	MINUS_ASSIGN    // -=
	STAR_ASSIGN     // *=
	SLASH_ASSIGN    // /=
	PERCENT_ASSIGN  // %=
	INC             // ++
	DEC             // --
	EQ              // ==
	STRICT_EQ       // ===
	NOT_EQ          // !=
	STRICT_NOT_EQ   // !==
	LT              // <
	LT_EQ           // <=
	GT              // >
	GT_EQ           // >=
	AND_AND         // &&
	OR_OR           // ||
	NULLISH         // ??
	NULLISH_ASSIGN  // ??=
	AND_AND_ASSIGN  // &&=
	OR_OR_ASSIGN    // ||=
	BANG            // !
	QUESTION        // ?
	QUESTION_DOT    // ?.
	ARROW           // ->
	FAT_ARROW       // <- (reserved; lexed but not used by the parser)
	AMP             // &
	PIPE            // |
	CARET           // ^
	TILDE           // ~
	SHL             // <<
	SHR             // >>
	INTERFACE_MATCH // =~=

	operatorEnd
)

var names = map[TokenType]string{
	ILLEGAL:         "ILLEGAL",
	EOF:             "EOF",
	COMMENT:         "COMMENT",
	IDENT:           "IDENT",
	INT:             "INT",
	FLOAT:           "FLOAT",
	STRING:          "STRING",
	TEMPLATE_STRING: "TEMPLATE_STRING",

	LET: "let", VAR: "var", CONST: "const", FUNCTION: "function", FN: "fn",
	RETURN: "return", IF: "if", ELSE: "else", WHILE: "while", DO: "do",
	FOR: "for", FOREACH: "foreach", IN: "in", BREAK: "break", CONTINUE: "continue",
	SWITCH: "switch", CASE: "case", DEFAULT: "default", CLASS: "class",
	EXTENDS: "extends", NEW: "new", TRUE: "true", FALSE: "false", NULL: "null",
	AWAIT: "await", ASYNC: "async", GO: "go", TRY: "try", CATCH: "catch",
	FINALLY: "finally", THROW: "throw", INTERFACE: "interface", IMPORT: "import",
	FROM: "from", AS: "as", EXPORT: "export", STATIC: "static", MATCH: "match",
	YIELD: "yield",

	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	SEMICOLON: ";", COLON: ":", COMMA: ",", DOT: ".", SPREAD: "...", AT: "@",

	ASSIGN: "=", PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=",
	PERCENT_ASSIGN: "%=", INC: "++", DEC: "--", EQ: "==", STRICT_EQ: "===",
	NOT_EQ: "!=", STRICT_NOT_EQ: "!==", LT: "<", LT_EQ: "<=", GT: ">", GT_EQ: ">=",
	AND_AND: "&&", OR_OR: "||", NULLISH: "??", NULLISH_ASSIGN: "??=",
	AND_AND_ASSIGN: "&&=", OR_OR_ASSIGN: "||=", BANG: "!", QUESTION: "?",
	QUESTION_DOT: "?.", ARROW: "->", FAT_ARROW: "<-", AMP: "&", PIPE: "|",
	CARET: "^", TILDE: "~", SHL: "<<", SHR: ">>", INTERFACE_MATCH: "=~=",
}

func (tt TokenType) String() string {
	if s, ok := names[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsLiteral reports whether tt is one of the literal token kinds.
func (tt TokenType) IsLiteral() bool { return tt > EOF && tt < literalEnd }

// IsKeyword reports whether tt is a reserved keyword.
func (tt TokenType) IsKeyword() bool { return tt > literalEnd && tt < keywordEnd }

// IsOperator reports whether tt is an operator token.
func (tt TokenType) IsOperator() bool { return tt > AT && tt < operatorEnd }

var keywords = map[string]TokenType{
	"let": LET, "var": VAR, "const": CONST, "function": FUNCTION, "fn": FN,
	"return": RETURN, "if": IF, "else": ELSE, "while": WHILE, "do": DO,
	"for": FOR, "foreach": FOREACH, "in": IN, "break": BREAK, "continue": CONTINUE,
	"switch": SWITCH, "case": CASE, "default": DEFAULT, "class": CLASS,
	"extends": EXTENDS, "new": NEW, "true": TRUE, "false": FALSE, "null": NULL,
	"await": AWAIT, "async": ASYNC, "go": GO, "try": TRY, "catch": CATCH,
	"finally": FINALLY, "throw": THROW, "interface": INTERFACE, "import": IMPORT,
	"from": FROM, "as": AS, "export": EXPORT, "static": STATIC, "match": MATCH,
	"yield": YIELD,
}

// LookupIdent classifies an identifier lexeme as a keyword or a plain IDENT.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// IsSynchronizingKeyword reports whether tt is one of the parser's error-recovery
// synchronization points (spec §4.2 error recovery).
func IsSynchronizingKeyword(tt TokenType) bool {
	switch tt {
	case CLASS, FUNCTION, VAR, FOR, IF, WHILE, RETURN, IMPORT, EXPORT:
		return true
	}
	return false
}

// Position is a source location: 1-based line and column, plus the lexeme length in runes.
type Position struct {
	Line   int
	Column int
	Length int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token with its source span.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}

// New constructs a Token, computing Length from the literal's rune count.
func New(tt TokenType, literal string, line, column int) Token {
	length := len([]rune(literal))
	return Token{Type: tt, Literal: literal, Pos: Position{Line: line, Column: column, Length: length}}
}
