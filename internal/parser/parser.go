package parser

import (
	"github.com/funvibe/monadic/internal/ast"
	"github.com/funvibe/monadic/internal/diagnostics"
	"github.com/funvibe/monadic/internal/lexer"
	"github.com/funvibe/monadic/internal/token"
)

// MaxRecursionDepth bounds nesting inside one statement.
const MaxRecursionDepth = 200

const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	EQUALS      // ==
	LESSGREATER // > or <
	SUM         // +
	PRODUCT     // *
	PREFIX      // -X or !X
	CALL        // myFunction(X)
	INDEX       // array[index]
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:          ASSIGN,
	token.PLUS_ASSIGN:     ASSIGN,
	token.MINUS_ASSIGN:    ASSIGN,
	token.ASTERISK_ASSIGN: ASSIGN,
	token.SLASH_ASSIGN:    ASSIGN,
	token.PERCENT_ASSIGN:  ASSIGN,
	token.OR:              LOGIC_OR,
	token.AND:             LOGIC_AND,
	token.EQ:              EQUALS,
	token.NOT_EQ:          EQUALS,
	token.LT:              LESSGREATER,
	token.GT:              LESSGREATER,
	token.LTE:             LESSGREATER,
	token.GTE:             LESSGREATER,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.PERCENT:         PRODUCT,
	token.LPAREN:          CALL,
	token.LBRACKET:        INDEX,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a Pratt parser for the expression language of a single
// script statement. Script structure (';', braces, if/else) is handled
// by the script package before statements reach the parser.
type Parser struct {
	l      *lexer.Lexer
	errors []*diagnostics.DiagnosticError
	depth  int

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NIL, p.parseNil)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACKET, p.parseListLiteral)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, tt := range []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(token.ASSIGN, p.parseAssignExpression)
	for _, tt := range []token.TokenType{
		token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.ASTERISK_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN,
	} {
		p.registerInfix(tt, p.parseCompoundAssignExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	if p.peekToken.Type == token.ILLEGAL {
		p.illegalError(p.peekToken)
		return
	}
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP004, p.peekToken, t, describe(p.peekToken)))
}

func (p *Parser) illegalError(tok token.Token) {
	if msg, ok := tok.Literal.(string); ok && msg != tok.Lexeme {
		p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP006, tok, msg))
		return
	}
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP005, tok, tok.Lexeme))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	if tok.Type == token.ILLEGAL {
		p.illegalError(tok)
		return
	}
	p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP003, tok, describe(tok)))
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of statement"
	}
	return string(tok.Type) + " " + tok.Lexeme
}

// ParseStatement parses one whole statement. It returns nil when the
// input holds nothing but blanks and comments.
func (p *Parser) ParseStatement() *ast.ExpressionStatement {
	if p.curTokenIs(token.EOF) {
		return nil
	}
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	if !p.peekTokenIs(token.EOF) {
		p.nextToken()
		if p.curTokenIs(token.ILLEGAL) {
			p.illegalError(p.curToken)
		} else {
			p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP001, p.curToken, describe(p.curToken)))
		}
		return nil
	}
	return stmt
}

// ParseStatement lexes and parses src as a single statement. A nil
// statement with a nil error means src was empty.
func ParseStatement(src string) (*ast.ExpressionStatement, error) {
	p := New(lexer.New(src))
	stmt := p.ParseStatement()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	return stmt, nil
}

// ParseExpression parses src as a single non-empty expression, as used
// for branch conditions.
func ParseExpression(src string) (ast.Expression, error) {
	stmt, err := ParseStatement(src)
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, diagnostics.NewError(diagnostics.ErrP006, token.Token{}, "empty expression")
	}
	return stmt.Expression, nil
}
