package diagnostics

import (
	"fmt"

	"github.com/funvibe/monadic/internal/token"
)

type ErrorCode string

// Statement parser errors.
const (
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected identifier on left side of assignment
	ErrP003 ErrorCode = "P003" // no prefix parse function
	ErrP004 ErrorCode = "P004" // expected next token
	ErrP005 ErrorCode = "P005" // illegal token
	ErrP006 ErrorCode = "P006" // generic syntax error
)

// Script structure errors.
const (
	ErrS001 ErrorCode = "S001" // unsupported control construct
	ErrS002 ErrorCode = "S002" // unterminated block
	ErrS003 ErrorCode = "S003" // unbalanced brace
	ErrS004 ErrorCode = "S004" // missing condition
	ErrS005 ErrorCode = "S005" // orphan else / else if
	ErrS006 ErrorCode = "S006" // statement syntax
)

// Evaluation errors.
const (
	ErrE001 ErrorCode = "E001" // monadic type mismatch
	ErrE002 ErrorCode = "E002" // unit result type mismatch
	ErrE003 ErrorCode = "E003" // combine without delay
	ErrE004 ErrorCode = "E004" // operation not implemented
	ErrE005 ErrorCode = "E005" // statement runtime error
	ErrE006 ErrorCode = "E006" // capability failure
	ErrE007 ErrorCode = "E007" // unknown capability
)

var errorMessages = map[ErrorCode]string{
	ErrP001: "unexpected token %s",
	ErrP002: "expected identifier on left side of assignment",
	ErrP003: "no prefix parse function for %s found",
	ErrP004: "expected next token to be %s, got %s instead",
	ErrP005: "illegal token %s",
	ErrP006: "%s",
	ErrS001: "unsupported control construct: %s",
	ErrS002: "unterminated block",
	ErrS003: "unbalanced closing brace",
	ErrS004: "missing condition",
	ErrS005: "else without preceding if",
	ErrS006: "statement syntax error: %s",
	ErrE001: "monadic type mismatch: %s",
	ErrE002: "unit result type mismatch: %s",
	ErrE003: "combine requires delay",
	ErrE004: "not implemented: %s",
	ErrE005: "statement error: %s",
	ErrE006: "%s",
	ErrE007: "unknown capability %q",
}

// DiagnosticError is a coded error tied to a source position.
type DiagnosticError struct {
	Code  ErrorCode
	Token token.Token
	File  string
	Args  []interface{}
	Err   error // underlying cause, if any
}

func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Args: args}
}

// Message renders the code's template without position information.
func (e *DiagnosticError) Message() string {
	template, ok := errorMessages[e.Code]
	if !ok {
		return fmt.Sprint(e.Args...)
	}
	if len(e.Args) == 0 {
		return template
	}
	return fmt.Sprintf(template, e.Args...)
}

func (e *DiagnosticError) Error() string {
	pos := ""
	if e.Token.Line > 0 {
		pos = fmt.Sprintf("%d:%d: ", e.Token.Line, e.Token.Column)
	}
	if e.File != "" {
		pos = e.File + ":" + pos
		if e.Token.Line == 0 {
			pos = e.File + ": "
		}
	}
	return fmt.Sprintf("%serror [%s]: %s", pos, e.Code, e.Message())
}

func (e *DiagnosticError) Unwrap() error { return e.Err }
