package evaluator

import (
	"errors"
	"fmt"

	"github.com/funvibe/monadic/internal/token"
)

// ErrRuntime is matched by every error raised while evaluating a
// statement body (unknown identifier, bad operand, failing builtin).
var ErrRuntime = errors.New("runtime error")

type RuntimeError struct {
	Token   token.Token
	Message string
	Err     error // cause, e.g. an error returned by a builtin
}

func (e *RuntimeError) Error() string {
	if e.Token.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
	}
	return e.Message
}

func (e *RuntimeError) Is(target error) bool { return target == ErrRuntime }
func (e *RuntimeError) Unwrap() error        { return e.Err }

var tokenless token.Token

func newError(tok token.Token, format string, a ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, a...)}
}

// IsTruthy reports whether obj selects a branch: false, nil, zero
// numbers, "" and empty lists are false; everything else is true.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case nil:
		return false
	case *Boolean:
		return o.Value
	case *Nil:
		return false
	case *Integer:
		return o.Value != 0
	case *Float:
		return o.Value != 0
	case *String:
		return o.Value != ""
	case *List:
		return len(o.Elements) > 0
	case *Record:
		return len(o.Fields) > 0
	default:
		return true
	}
}

func getTypeName(obj Object) string {
	if obj == nil {
		return NIL_OBJ
	}
	return string(obj.Type())
}
