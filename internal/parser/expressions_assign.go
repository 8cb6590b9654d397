package parser

import (
	"github.com/funvibe/monadic/internal/ast"
	"github.com/funvibe/monadic/internal/diagnostics"
	"github.com/funvibe/monadic/internal/token"
)

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	name, ok := left.(*ast.Identifier)
	if !ok {
		p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, p.curToken))
		return nil
	}

	tok := p.curToken
	p.nextToken() // consume '='
	// Right-associative: a = b = 1
	value := p.parseExpression(ASSIGN - 1)
	if value == nil {
		return nil
	}

	return &ast.AssignExpression{Token: tok, Name: name, Value: value}
}

var compoundOperators = map[token.TokenType]token.TokenType{
	token.PLUS_ASSIGN:     token.PLUS,
	token.MINUS_ASSIGN:    token.MINUS,
	token.ASTERISK_ASSIGN: token.ASTERISK,
	token.SLASH_ASSIGN:    token.SLASH,
	token.PERCENT_ASSIGN:  token.PERCENT,
}

// parseCompoundAssignExpression handles +=, -=, *=, /=, %=
// Desugars `x += y` to `x = x + y`
func (p *Parser) parseCompoundAssignExpression(left ast.Expression) ast.Expression {
	compoundTok := p.curToken
	opType, ok := compoundOperators[compoundTok.Type]
	if !ok {
		return nil
	}

	name, ok := left.(*ast.Identifier)
	if !ok {
		p.errors = append(p.errors, diagnostics.NewError(diagnostics.ErrP002, compoundTok))
		return nil
	}

	p.nextToken() // consume the compound assignment operator
	right := p.parseExpression(ASSIGN - 1)
	if right == nil {
		return nil
	}

	opToken := token.Token{Type: opType, Lexeme: string(opType), Line: compoundTok.Line, Column: compoundTok.Column}
	assignTok := token.Token{Type: token.ASSIGN, Lexeme: "=", Line: compoundTok.Line, Column: compoundTok.Column}
	return &ast.AssignExpression{
		Token: assignTok,
		Name:  name,
		Value: &ast.InfixExpression{Token: opToken, Left: name, Operator: string(opType), Right: right},
	}
}
