package capability

import (
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

const MAYBE_OBJ evaluator.ObjectType = "MAYBE"

// MaybeValue is an optional value.
type MaybeValue struct {
	Value  evaluator.Object
	IsSome bool
}

var None = &MaybeValue{}

func Some(v evaluator.Object) *MaybeValue { return &MaybeValue{Value: v, IsSome: true} }

func (m *MaybeValue) Type() evaluator.ObjectType { return MAYBE_OBJ }
func (m *MaybeValue) Inspect() string {
	if !m.IsSome {
		return "None"
	}
	return "Some(" + m.Value.Inspect() + ")"
}

func (m *MaybeValue) Equal(other evaluator.Object) bool {
	o, ok := other.(*MaybeValue)
	if !ok || m.IsSome != o.IsSome {
		return false
	}
	return !m.IsSome || evaluator.ObjectsEqual(m.Value, o.Value)
}

// Maybe short-circuits on None. Combining two Somes adds their values,
// so scripts with several unit statements need addable values.
type Maybe struct{}

func (Maybe) Tag() evaluator.ObjectType { return MAYBE_OBJ }

func (Maybe) Unit(v evaluator.Object) (evaluator.Object, error) { return Some(v), nil }

func (Maybe) Bind(m evaluator.Object, k monad.Cont) (evaluator.Object, error) {
	mv := m.(*MaybeValue)
	if !mv.IsSome {
		return mv, nil
	}
	return k(mv.Value)
}

func (Maybe) Do(m evaluator.Object, rest monad.Rest) (evaluator.Object, error) {
	mv := m.(*MaybeValue)
	if !mv.IsSome {
		return mv, nil
	}
	return rest()
}

func (Maybe) Zero() (evaluator.Object, error) { return None, nil }

func (Maybe) Combine(m, rest evaluator.Object) (evaluator.Object, error) {
	r, err := forced(rest)
	if err != nil {
		return nil, err
	}
	a, b := m.(*MaybeValue), r.(*MaybeValue)
	switch {
	case a.IsSome && b.IsSome:
		sum, err := evaluator.Add(a.Value, b.Value)
		if err != nil {
			return nil, err
		}
		return Some(sum), nil
	case a.IsSome:
		return a, nil
	default:
		return b, nil
	}
}

func (Maybe) Delay(f *evaluator.Thunk) (evaluator.Object, error) { return f.Force() }

func (Maybe) Builtins() []*evaluator.Builtin {
	return []*evaluator.Builtin{
		builtin(config.SomeFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.SomeFuncName, args, 1); err != nil {
				return nil, err
			}
			return Some(args[0]), nil
		}),
		builtin(config.NoneFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.NoneFuncName, args, 0); err != nil {
				return nil, err
			}
			return None, nil
		}),
		builtin(config.IsSomeFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.IsSomeFuncName, args, 1); err != nil {
				return nil, err
			}
			m, ok := args[0].(*MaybeValue)
			if !ok {
				return nil, wrongType(config.IsSomeFuncName, MAYBE_OBJ, args[0])
			}
			return &evaluator.Boolean{Value: m.IsSome}, nil
		}),
		builtin(config.FromMaybeFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.FromMaybeFuncName, args, 2); err != nil {
				return nil, err
			}
			m, ok := args[0].(*MaybeValue)
			if !ok {
				return nil, wrongType(config.FromMaybeFuncName, MAYBE_OBJ, args[0])
			}
			if !m.IsSome {
				return args[1], nil
			}
			return m.Value, nil
		}),
	}
}
