package capability

import (
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

const STATE_OBJ evaluator.ObjectType = "STATE"

// StateFunc maps an incoming state to the outgoing state and a value.
type StateFunc func(s evaluator.Object) (state, value evaluator.Object, err error)

// StateValue is a stateful computation. Nothing runs until RunState.
type StateValue struct {
	Fn StateFunc
}

func (s *StateValue) Type() evaluator.ObjectType { return STATE_OBJ }
func (s *StateValue) Inspect() string            { return "<state>" }

// GetState yields the current state as its value.
func GetState() *StateValue {
	return &StateValue{Fn: func(s evaluator.Object) (evaluator.Object, evaluator.Object, error) {
		return s, s, nil
	}}
}

// SetState replaces the state, yielding nil.
func SetState(next evaluator.Object) *StateValue {
	return &StateValue{Fn: func(evaluator.Object) (evaluator.Object, evaluator.Object, error) {
		return next, evaluator.NIL, nil
	}}
}

// RunState applies m to the initial state.
func RunState(m evaluator.Object, initial evaluator.Object) (state, value evaluator.Object, err error) {
	sv, ok := m.(*StateValue)
	if !ok {
		return nil, nil, wrongType(config.RunStateFuncName, STATE_OBJ, m)
	}
	return sv.Fn(initial)
}

// State threads a value through a sequence of stateful computations.
// It has no zero and no combine, so a script must end in unit or unit2
// and may use unit only once.
type State struct{}

func (State) Tag() evaluator.ObjectType { return STATE_OBJ }

func (State) Unit(v evaluator.Object) (evaluator.Object, error) {
	return &StateValue{Fn: func(s evaluator.Object) (evaluator.Object, evaluator.Object, error) {
		return s, v, nil
	}}, nil
}

func (State) Bind(m evaluator.Object, k monad.Cont) (evaluator.Object, error) {
	first := m.(*StateValue)
	return &StateValue{Fn: func(s evaluator.Object) (evaluator.Object, evaluator.Object, error) {
		s1, v, err := first.Fn(s)
		if err != nil {
			return nil, nil, err
		}
		next, err := k(v)
		if err != nil {
			return nil, nil, err
		}
		return RunState(next, s1)
	}}, nil
}

func (State) Do(m evaluator.Object, rest monad.Rest) (evaluator.Object, error) {
	return State{}.Bind(m, func(evaluator.Object) (evaluator.Object, error) { return rest() })
}

func (State) Builtins() []*evaluator.Builtin {
	return []*evaluator.Builtin{
		builtin(config.GetStateFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.GetStateFuncName, args, 0); err != nil {
				return nil, err
			}
			return GetState(), nil
		}),
		builtin(config.SetStateFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.SetStateFuncName, args, 1); err != nil {
				return nil, err
			}
			return SetState(args[0]), nil
		}),
		// run_state(m, s) returns [state, value].
		builtin(config.RunStateFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.RunStateFuncName, args, 2); err != nil {
				return nil, err
			}
			s, v, err := RunState(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return evaluator.NewList([]evaluator.Object{s, v}), nil
		}),
	}
}
