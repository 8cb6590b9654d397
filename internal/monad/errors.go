package monad

import (
	"errors"
	"fmt"

	"github.com/funvibe/monadic/internal/evaluator"
)

var (
	ErrCombineWithoutDelay   = errors.New("combine requires delay")
	ErrZeroNotImplemented    = errors.New("zero not implemented")
	ErrCombineNotImplemented = errors.New("combine not implemented")
	ErrUnitNotImplemented    = errors.New("unit not implemented")
	ErrBindNotImplemented    = errors.New("bind not implemented")
	ErrDoNotImplemented      = errors.New("do_ not implemented")

	// ErrTypeMismatch is matched by every TypeError.
	ErrTypeMismatch = errors.New("monadic type mismatch")
	// ErrUnitTypeMismatch is matched by TypeErrors raised on the value
	// of a unit or unit2 statement.
	ErrUnitTypeMismatch = errors.New("unit result type mismatch")
)

// Operation names used in TypeError.Op.
const (
	OpUnit    = "unit"
	OpUnit2   = "unit2"
	OpBind    = "bind"
	OpDo      = "do_"
	OpZero    = "zero"
	OpCombine = "combine"
	OpDelay   = "delay"
	OpRun     = "run"
)

// TypeError reports a value that crossed a capability boundary with the
// wrong type tag.
type TypeError struct {
	Op       string
	Expected evaluator.ObjectType
	Actual   evaluator.ObjectType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Op, e.Expected, e.Actual)
}

func (e *TypeError) Is(target error) bool {
	switch target {
	case ErrTypeMismatch:
		return true
	case ErrUnitTypeMismatch:
		return e.Op == OpUnit || e.Op == OpUnit2
	}
	return false
}
