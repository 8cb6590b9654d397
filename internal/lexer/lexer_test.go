package lexer

import (
	"testing"

	"github.com/funvibe/monadic/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `bind('x', some(1.5)); x += 10 // trailing
	y = [1, 2] != nil && !ok || a <= b
	/* block */ "a\"b" % 0x1F`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.IDENT, "bind"},
		{token.LPAREN, "("},
		{token.STRING, `'x'`},
		{token.COMMA, ","},
		{token.IDENT, "some"},
		{token.LPAREN, "("},
		{token.FLOAT, "1.5"},
		{token.RPAREN, ")"},
		{token.RPAREN, ")"},
		{token.ILLEGAL, ";"},
		{token.IDENT, "x"},
		{token.PLUS_ASSIGN, "+="},
		{token.INT, "10"},
		{token.IDENT, "y"},
		{token.ASSIGN, "="},
		{token.LBRACKET, "["},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.RBRACKET, "]"},
		{token.NOT_EQ, "!="},
		{token.NIL, "nil"},
		{token.AND, "&&"},
		{token.BANG, "!"},
		{token.IDENT, "ok"},
		{token.OR, "||"},
		{token.IDENT, "a"},
		{token.LTE, "<="},
		{token.IDENT, "b"},
		{token.STRING, `"a\"b"`},
		{token.PERCENT, "%"},
		{token.INT, "0x1F"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestLiteralValues(t *testing.T) {
	toks := New(`'it\'s' 42 3.25 1_000 true null`).Tokens()
	if got := toks[0].Literal.(string); got != "it's" {
		t.Errorf("string literal = %q, want %q", got, "it's")
	}
	if got := toks[1].Literal.(int64); got != 42 {
		t.Errorf("int literal = %d, want 42", got)
	}
	if got := toks[2].Literal.(float64); got != 3.25 {
		t.Errorf("float literal = %g, want 3.25", got)
	}
	if got := toks[3].Literal.(int64); got != 1000 {
		t.Errorf("underscore int literal = %d, want 1000", got)
	}
	if toks[4].Type != token.TRUE || toks[5].Type != token.NIL {
		t.Errorf("keywords lexed as %s %s", toks[4].Type, toks[5].Type)
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Errorf("Tokens() must end with EOF")
	}
}

func TestUnterminatedString(t *testing.T) {
	tok := New(`"abc`).NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for unterminated string, got %s", tok.Type)
	}
}

func TestLineTracking(t *testing.T) {
	l := New("a\n  b")
	a := l.NextToken()
	b := l.NextToken()
	if a.Line != 1 || b.Line != 2 || b.Column != 3 {
		t.Errorf("positions: a=%d:%d b=%d:%d", a.Line, a.Column, b.Line, b.Column)
	}
}
