package lexer

import (
	"testing"

	"github.com/asultop/alang/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `let x = 1 + 2; print(x === 3);`

	tests := []struct {
		tt  token.TokenType
		lit string
	}{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "1"},
		{token.PLUS, "+"},
		{token.INT, "2"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "print"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.STRICT_EQ, "==="},
		{token.INT, "3"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		got := l.NextToken()
		if got.Type != tt.tt {
			t.Fatalf("test[%d] - wrong type. want=%s got=%s (%q)", i, tt.tt, got.Type, got.Literal)
		}
		if got.Literal != tt.lit {
			t.Fatalf("test[%d] - wrong literal. want=%q got=%q", i, tt.lit, got.Literal)
		}
	}
}

func TestRoundTripLexeme(t *testing.T) {
	// spec §8.1 invariant 1: token lexeme equals the source slice at column/length.
	input := "let total = 12345;"
	lines := []string{input}

	for _, tok := range Tokenize(input) {
		if tok.Type == token.EOF || tok.Type == token.SEMICOLON {
			continue
		}
		line := lines[tok.Pos.Line-1]
		runes := []rune(line)
		start := tok.Pos.Column - 1
		end := start + tok.Pos.Length
		if end > len(runes) {
			t.Fatalf("token %v out of bounds on line %q", tok, line)
		}
		got := string(runes[start:end])
		if got != tok.Literal {
			t.Errorf("token %v: slice %q != literal %q", tok, got, tok.Literal)
		}
	}
}

func TestInterfaceMatchOperator(t *testing.T) {
	l := New("c =~= Shape")
	want := []token.TokenType{token.IDENT, token.INTERFACE_MATCH, token.IDENT, token.EOF}
	for _, w := range want {
		got := l.NextToken()
		if got.Type != w {
			t.Fatalf("want %s got %s", w, got.Type)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tA"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	want := "a\nb\tA"
	if tok.Literal != want {
		t.Fatalf("want %q got %q", want, tok.Literal)
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	l := New(`"abc`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lexer error for unterminated string")
	}
}

func TestUnterminatedBlockCommentConsumesToEOF(t *testing.T) {
	l := New("/* never closed\nmore text")
	tok := l.NextToken()
	if tok.Type != token.EOF {
		t.Fatalf("expected EOF after unterminated block comment, got %s", tok.Type)
	}
	if len(l.Errors()) != 0 {
		t.Fatalf("unterminated block comment must not be an error, got %v", l.Errors())
	}
}

func TestCompositeOperators(t *testing.T) {
	src := "++ -- += -= *= /= %= == === != !== <= >= && || ?? ??= &&= ||= << >> ?. -> ...  @ =~="
	want := []token.TokenType{
		token.INC, token.DEC, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN, token.EQ, token.STRICT_EQ, token.NOT_EQ,
		token.STRICT_NOT_EQ, token.LT_EQ, token.GT_EQ, token.AND_AND, token.OR_OR,
		token.NULLISH, token.NULLISH_ASSIGN, token.AND_AND_ASSIGN, token.OR_OR_ASSIGN,
		token.SHL, token.SHR, token.QUESTION_DOT, token.ARROW, token.SPREAD, token.AT,
		token.INTERFACE_MATCH, token.EOF,
	}
	l := New(src)
	for i, w := range want {
		got := l.NextToken()
		if got.Type != w {
			t.Fatalf("op[%d]: want %s got %s (%q)", i, w, got.Type, got.Literal)
		}
	}
}
