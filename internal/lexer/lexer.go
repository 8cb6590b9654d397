package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/monadic/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

// Tokens lexes the whole input. The returned slice always ends with EOF.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

// operator describes the tokens a punctuation character can start: the
// token it forms alone and the ones it forms with the next character.
type operator struct {
	single token.TokenType
	pairs  map[rune]token.TokenType
}

var operators = map[rune]operator{
	'=': {token.ASSIGN, map[rune]token.TokenType{'=': token.EQ}},
	'+': {token.PLUS, map[rune]token.TokenType{'=': token.PLUS_ASSIGN}},
	'-': {token.MINUS, map[rune]token.TokenType{'=': token.MINUS_ASSIGN}},
	'*': {token.ASTERISK, map[rune]token.TokenType{'=': token.ASTERISK_ASSIGN}},
	'/': {token.SLASH, map[rune]token.TokenType{'=': token.SLASH_ASSIGN}},
	'%': {token.PERCENT, map[rune]token.TokenType{'=': token.PERCENT_ASSIGN}},
	'!': {token.BANG, map[rune]token.TokenType{'=': token.NOT_EQ}},
	'<': {token.LT, map[rune]token.TokenType{'=': token.LTE}},
	'>': {token.GT, map[rune]token.TokenType{'=': token.GTE}},
	'&': {token.ILLEGAL, map[rune]token.TokenType{'&': token.AND}},
	'|': {token.ILLEGAL, map[rune]token.TokenType{'|': token.OR}},
	',': {single: token.COMMA},
	'(': {single: token.LPAREN},
	')': {single: token.RPAREN},
	'[': {single: token.LBRACKET},
	']': {single: token.RBRACKET},
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	if op, ok := operators[l.ch]; ok {
		var tok token.Token
		if pair, ok := op.pairs[l.peekChar()]; ok {
			tok = l.twoCharToken(pair)
		} else {
			tok = newToken(op.single, l.ch, l.line, l.column)
		}
		l.readChar()
		return tok
	}

	line, col := l.line, l.column
	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Line: line, Column: col}
	case l.ch == '"' || l.ch == '\'':
		start := l.position
		content, ok := l.readString(l.ch)
		lexeme := l.input[start:min(l.position+1, len(l.input))]
		l.readChar()
		if !ok {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "unterminated string literal", Line: line, Column: col}
		}
		return token.Token{Type: token.STRING, Lexeme: lexeme, Literal: content, Line: line, Column: col}
	case isLetter(l.ch):
		ident := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
	case isDigit(l.ch):
		return l.readNumber()
	}

	tok := newToken(token.ILLEGAL, l.ch, line, col)
	l.readChar()
	return tok
}

func (l *Lexer) twoCharToken(t token.TokenType) token.Token {
	line, col := l.line, l.column
	ch := l.ch
	l.readChar()
	literal := string(ch) + string(l.ch)
	return token.Token{Type: t, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

// readString reads a quoted string starting at the opening quote and leaves
// l.ch on the closing quote.
func (l *Lexer) readString(quote rune) (string, bool) {
	var out strings.Builder
	for {
		l.readChar()
		switch l.ch {
		case 0:
			return out.String(), false
		case quote:
			return out.String(), true
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteRune('\n')
			case 't':
				out.WriteRune('\t')
			case 'r':
				out.WriteRune('\r')
			case '0':
				out.WriteRune(0)
			case 0:
				return out.String(), false
			default:
				// \\, \', \" and unknown escapes keep the escaped char
				out.WriteRune(l.ch)
			}
		default:
			out.WriteRune(l.ch)
		}
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	startLine, startCol := l.line, l.column
	position := l.position
	base := 10
	isFloat := false

	// Check for base prefixes: 0x, 0b, 0o
	if l.ch == '0' {
		peek := l.peekChar()
		if peek == 'x' || peek == 'X' {
			l.readChar()
			l.readChar()
			base = 16
		} else if peek == 'b' || peek == 'B' {
			l.readChar()
			l.readChar()
			base = 2
		} else if peek == 'o' || peek == 'O' {
			l.readChar()
			l.readChar()
			base = 8
		}
	}

	for {
		if base == 16 {
			if !isHexDigit(l.ch) {
				break
			}
		} else if !isDigit(l.ch) && l.ch != '_' {
			break
		}
		l.readChar()
	}

	if base == 10 && l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar() // .
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lexeme := l.input[position:l.position]
	literalText := strings.ReplaceAll(lexeme, "_", "")

	if isFloat {
		val, err := strconv.ParseFloat(literalText, 64)
		if err != nil {
			return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: err.Error(), Line: startLine, Column: startCol}
		}
		return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
	}

	// strconv.ParseInt(s, 0, 64) auto-detects base
	val, err := strconv.ParseInt(literalText, 0, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "integer literal out of range", Line: startLine, Column: startCol}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: val, Line: startLine, Column: startCol}
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || (ch >= 0x80 && unicode.IsLetter(ch))
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func newToken(tokenType token.TokenType, ch rune, line, col int) token.Token {
	literal := string(ch)
	return token.Token{Type: tokenType, Lexeme: literal, Literal: literal, Line: line, Column: col}
}

// skipWhitespace skips blanks, newlines and comments. Statements are already
// split by the script scanner, so newlines carry no meaning here.
func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
		}
		if l.ch == '/' {
			if l.peekChar() == '/' {
				for l.ch != '\n' && l.ch != 0 {
					l.readChar()
				}
				continue
			} else if l.peekChar() == '*' {
				l.readChar() // consume /
				l.readChar() // consume *
				for l.ch != 0 {
					if l.ch == '*' && l.peekChar() == '/' {
						l.readChar() // consume *
						l.readChar() // consume /
						break
					}
					l.readChar()
				}
				continue
			}
		}
		break
	}
}
