package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrStatementSyntax wraps parse errors of a single statement or condition.
	ErrStatementSyntax = errors.New("statement syntax error")
	// ErrStatement wraps runtime errors raised inside a statement.
	ErrStatement = errors.New("statement error")
)

// Operation names used in Error.Op besides the monad operations.
const (
	OpParse     = "parse"
	OpCompile   = "compile"
	OpStatement = "statement"
	OpCondition = "condition"
	OpCancel    = "cancel"
)

// Error is the terminal failure of an evaluation. Op names the engine
// step or capability operation that failed and Statement the script text
// being evaluated, when known.
type Error struct {
	Op        string
	Statement string
	Err       error
}

func (e *Error) Error() string {
	if e.Statement != "" {
		return fmt.Sprintf("%s: %q: %v", e.Op, e.Statement, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// wrap attaches op and statement to err, leaving an existing *Error
// untouched so failures raised deep inside continuations keep their
// original location.
func wrap(op, statement string, err error) error {
	if err == nil {
		return nil
	}
	var ee *Error
	if errors.As(err, &ee) {
		return err
	}
	return &Error{Op: op, Statement: statement, Err: err}
}
