// Package monad defines the protocol a monadic type implements to be
// driven by the script engine.
//
// Every capability provides unit, bind and do_ plus a type tag. The
// remaining operations (unit2, zero, combine, delay, run) are optional
// interfaces; Describe detects them once and records what is present.
package monad

import (
	"github.com/funvibe/monadic/internal/evaluator"
)

// Cont receives the unwrapped value of a bound monadic value and
// returns the monadic value of the rest of the script.
type Cont func(v evaluator.Object) (evaluator.Object, error)

// Rest evaluates the rest of the script.
type Rest func() (evaluator.Object, error)

// Capability is the required part of a monad implementation.
type Capability interface {
	// Tag is the ObjectType every monadic value of this capability has.
	Tag() evaluator.ObjectType
	// Unit wraps a plain value.
	Unit(v evaluator.Object) (evaluator.Object, error)
	// Bind unwraps m and passes the value to k.
	Bind(m evaluator.Object, k Cont) (evaluator.Object, error)
	// Do sequences m before rest, discarding m's value.
	Do(m evaluator.Object, rest Rest) (evaluator.Object, error)
}

// Unit2er lifts a value that is already monadic. Without it unit2 is
// the identity.
type Unit2er interface {
	Unit2(m evaluator.Object) (evaluator.Object, error)
}

// Zeroer supplies the result of a script that does not end in unit or
// unit2.
type Zeroer interface {
	Zero() (evaluator.Object, error)
}

// Combiner joins the value of a unit statement with the rest of the
// script. The second argument is whatever Delay returned for the rest:
// a monadic value when Delay forces eagerly, or an *evaluator.Thunk.
type Combiner interface {
	Combine(m evaluator.Object, rest evaluator.Object) (evaluator.Object, error)
}

// Delayer wraps a computation. It decides whether the rest of the
// script runs before or inside Combine.
type Delayer interface {
	Delay(f *evaluator.Thunk) (evaluator.Object, error)
}

// Runner post-processes the whole script's delayed result.
type Runner interface {
	Run(m evaluator.Object) (evaluator.Object, error)
}

// BuiltinProvider registers script-visible helper functions, such as
// constructors for the capability's values.
type BuiltinProvider interface {
	Builtins() []*evaluator.Builtin
}

// Unimplemented can be embedded by capabilities that cannot support
// every required operation. The errors surface only when a script
// actually uses the form.
type Unimplemented struct{}

func (Unimplemented) Unit(evaluator.Object) (evaluator.Object, error) {
	return nil, ErrUnitNotImplemented
}

func (Unimplemented) Bind(evaluator.Object, Cont) (evaluator.Object, error) {
	return nil, ErrBindNotImplemented
}

func (Unimplemented) Do(evaluator.Object, Rest) (evaluator.Object, error) {
	return nil, ErrDoNotImplemented
}
