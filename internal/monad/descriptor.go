package monad

import (
	"fmt"

	"github.com/funvibe/monadic/internal/evaluator"
)

// Descriptor records which optional operations a capability provides.
// It is built once, up front, so a misconfigured capability fails
// before any script runs.
type Descriptor struct {
	Capability Capability

	unit2    Unit2er
	zero     Zeroer
	combine  Combiner
	delay    Delayer
	run      Runner
	builtins BuiltinProvider
}

// Describe inspects c. A capability with Combine but no Delay is
// rejected with ErrCombineWithoutDelay.
func Describe(c Capability) (*Descriptor, error) {
	if c == nil {
		return nil, fmt.Errorf("monad: nil capability")
	}
	d := &Descriptor{Capability: c}
	d.unit2, _ = c.(Unit2er)
	d.zero, _ = c.(Zeroer)
	d.combine, _ = c.(Combiner)
	d.delay, _ = c.(Delayer)
	d.run, _ = c.(Runner)
	d.builtins, _ = c.(BuiltinProvider)

	if d.combine != nil && d.delay == nil {
		return nil, fmt.Errorf("%s: %w", c.Tag(), ErrCombineWithoutDelay)
	}
	return d, nil
}

// Tag is the monadic type every capability value must carry.
func (d *Descriptor) Tag() evaluator.ObjectType { return d.Capability.Tag() }

// HasUnit2, HasZero, HasCombine, HasDelay and HasRun report which
// optional operations the capability implements.
func (d *Descriptor) HasUnit2() bool   { return d.unit2 != nil }
func (d *Descriptor) HasZero() bool    { return d.zero != nil }
func (d *Descriptor) HasCombine() bool { return d.combine != nil }
func (d *Descriptor) HasDelay() bool   { return d.delay != nil }
func (d *Descriptor) HasRun() bool     { return d.run != nil }

// Unit, Bind and Do forward to the required operations.
func (d *Descriptor) Unit(v evaluator.Object) (evaluator.Object, error) {
	return d.Capability.Unit(v)
}

func (d *Descriptor) Bind(m evaluator.Object, k Cont) (evaluator.Object, error) {
	return d.Capability.Bind(m, k)
}

func (d *Descriptor) Do(m evaluator.Object, rest Rest) (evaluator.Object, error) {
	return d.Capability.Do(m, rest)
}

// Unit2 lifts m, or returns it unchanged when the capability has no Unit2.
func (d *Descriptor) Unit2(m evaluator.Object) (evaluator.Object, error) {
	if d.unit2 == nil {
		return m, nil
	}
	return d.unit2.Unit2(m)
}

// Zero fails with ErrZeroNotImplemented when the capability has no Zero.
func (d *Descriptor) Zero() (evaluator.Object, error) {
	if d.zero == nil {
		return nil, ErrZeroNotImplemented
	}
	return d.zero.Zero()
}

// Combine fails with ErrCombineNotImplemented when the capability has no Combine.
func (d *Descriptor) Combine(m, rest evaluator.Object) (evaluator.Object, error) {
	if d.combine == nil {
		return nil, ErrCombineNotImplemented
	}
	return d.combine.Combine(m, rest)
}

// Delay wraps f. Callers check HasDelay first; without a Delay the
// computation is forced immediately.
func (d *Descriptor) Delay(f *evaluator.Thunk) (evaluator.Object, error) {
	if d.delay == nil {
		return f.Force()
	}
	return d.delay.Delay(f)
}

// Run is the identity when the capability has no Run.
func (d *Descriptor) Run(m evaluator.Object) (evaluator.Object, error) {
	if d.run == nil {
		return m, nil
	}
	return d.run.Run(m)
}

// Builtins returns the capability's helper functions, if any.
func (d *Descriptor) Builtins() []*evaluator.Builtin {
	if d.builtins == nil {
		return nil
	}
	return d.builtins.Builtins()
}

// CheckType verifies that v carries the capability's tag. op names the
// operation for the error message.
func (d *Descriptor) CheckType(op string, v evaluator.Object) error {
	if v != nil && v.Type() == d.Tag() {
		return nil
	}
	return &TypeError{Op: op, Expected: d.Tag(), Actual: typeOf(v)}
}

func typeOf(v evaluator.Object) evaluator.ObjectType {
	if v == nil {
		return evaluator.NIL_OBJ
	}
	return v.Type()
}
