package engine

import (
	"errors"
	"strings"

	"github.com/funvibe/monadic/internal/diagnostics"
	"github.com/funvibe/monadic/internal/monad"
	"github.com/funvibe/monadic/internal/script"
	"github.com/funvibe/monadic/internal/token"
)

// Diagnose maps an evaluation failure to a coded diagnostic positioned
// in src. It returns nil for a nil error.
func Diagnose(src string, err error) *diagnostics.DiagnosticError {
	if err == nil {
		return nil
	}

	var se *script.Error
	if errors.As(err, &se) {
		d := &diagnostics.DiagnosticError{Token: position(src, se.Offset), Err: err}
		switch {
		case errors.Is(se, script.ErrUnsupportedConstruct):
			d.Code, d.Args = diagnostics.ErrS001, []interface{}{se.Text}
		case errors.Is(se, script.ErrUnterminatedBlock):
			d.Code = diagnostics.ErrS002
		case errors.Is(se, script.ErrUnbalancedBrace):
			d.Code = diagnostics.ErrS003
		case errors.Is(se, script.ErrMissingCondition):
			d.Code = diagnostics.ErrS004
		case errors.Is(se, script.ErrOrphanBranch):
			d.Code = diagnostics.ErrS005
		default:
			d.Code, d.Args = diagnostics.ErrE006, []interface{}{se.Error()}
		}
		return d
	}

	var (
		ee   *Error
		stmt string
	)
	if errors.As(err, &ee) {
		stmt = ee.Statement
	}
	d := &diagnostics.DiagnosticError{Token: statementPosition(src, stmt), Err: err}

	var (
		te *monad.TypeError
		pe *diagnostics.DiagnosticError
	)
	switch {
	case errors.Is(err, ErrStatementSyntax):
		msg := err.Error()
		if errors.As(err, &pe) {
			msg = pe.Message()
		}
		d.Code, d.Args = diagnostics.ErrS006, []interface{}{quoted(stmt, msg)}
	case errors.Is(err, monad.ErrCombineWithoutDelay):
		d.Code = diagnostics.ErrE003
	case errors.As(err, &te) && errors.Is(err, monad.ErrUnitTypeMismatch):
		d.Code, d.Args = diagnostics.ErrE002, []interface{}{te.Error()}
	case errors.As(err, &te):
		d.Code, d.Args = diagnostics.ErrE001, []interface{}{te.Error()}
	case errors.Is(err, monad.ErrZeroNotImplemented),
		errors.Is(err, monad.ErrCombineNotImplemented),
		errors.Is(err, monad.ErrUnitNotImplemented),
		errors.Is(err, monad.ErrBindNotImplemented),
		errors.Is(err, monad.ErrDoNotImplemented):
		op := ""
		if ee != nil {
			op = ee.Op
		}
		d.Code, d.Args = diagnostics.ErrE004, []interface{}{op}
	case errors.Is(err, ErrStatement):
		msg := err.Error()
		if ee != nil {
			msg = quoted(stmt, innermost(ee.Err))
		}
		d.Code, d.Args = diagnostics.ErrE005, []interface{}{msg}
	default:
		d.Code, d.Args = diagnostics.ErrE006, []interface{}{err.Error()}
	}
	return d
}

func quoted(stmt, msg string) string {
	if stmt == "" {
		return msg
	}
	return "in \"" + stmt + "\": " + msg
}

// innermost drops the ErrStatement prefix from a wrapped statement error.
func innermost(err error) string {
	if w, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range w.Unwrap() {
			if e != ErrStatement {
				return e.Error()
			}
		}
	}
	return err.Error()
}

// position converts a byte offset into a 1-based line and column.
func position(src string, offset int) token.Token {
	if offset < 0 || offset > len(src) {
		return token.Token{}
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndex(before, "\n")
	return token.Token{Line: line, Column: col}
}

func statementPosition(src, stmt string) token.Token {
	if stmt == "" {
		return token.Token{}
	}
	if i := strings.Index(src, stmt); i >= 0 {
		return position(src, i)
	}
	return token.Token{}
}
