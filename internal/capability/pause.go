package capability

import (
	"fmt"

	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

const PAUSE_OBJ evaluator.ObjectType = "PAUSE"

// Step is the outcome of running a coroutine until it pauses or ends:
// *Continue when it finished, *Paused when it yielded.
type Step interface {
	isStep()
}

// Continue carries the coroutine's result.
type Continue struct {
	Result evaluator.Object
}

// Paused carries the rest of the coroutine.
type Paused struct {
	Next *Process
}

func (*Continue) isStep() {}
func (*Paused) isStep()   {}

// Process is a coroutine. Each call to Step runs it to its next yield.
type Process struct {
	step func() (Step, error)
}

func NewProcess(step func() (Step, error)) *Process { return &Process{step: step} }

func (p *Process) Type() evaluator.ObjectType { return PAUSE_OBJ }
func (p *Process) Inspect() string            { return "<process>" }

func (p *Process) Step() (Step, error) { return p.step() }

// Done is a process that finishes immediately with v.
func Done(v evaluator.Object) *Process {
	return NewProcess(func() (Step, error) { return &Continue{Result: v}, nil })
}

// Yield pauses once and then finishes with v.
func Yield(v evaluator.Object) *Process {
	return NewProcess(func() (Step, error) { return &Paused{Next: Done(v)}, nil })
}

// RunToEnd steps p until it finishes.
func RunToEnd(p *Process) (evaluator.Object, error) {
	for {
		s, err := p.Step()
		if err != nil {
			return nil, err
		}
		switch s := s.(type) {
		case *Continue:
			return s.Result, nil
		case *Paused:
			p = s.Next
		}
	}
}

// Race steps both processes in lock step and returns the result of the
// first to finish. p1 wins a tie.
func Race(p1, p2 *Process) (evaluator.Object, error) {
	for {
		s1, err := p1.Step()
		if err != nil {
			return nil, err
		}
		s2, err := p2.Step()
		if err != nil {
			return nil, err
		}
		if c, ok := s1.(*Continue); ok {
			return c.Result, nil
		}
		if c, ok := s2.(*Continue); ok {
			return c.Result, nil
		}
		p1, p2 = s1.(*Paused).Next, s2.(*Paused).Next
	}
}

// Pause composes coroutines: bind runs the bound process and, if it
// yields, pauses the whole composition at the same point.
type Pause struct{}

func (Pause) Tag() evaluator.ObjectType { return PAUSE_OBJ }

func (Pause) Unit(v evaluator.Object) (evaluator.Object, error) { return Done(v), nil }

func (Pause) Bind(m evaluator.Object, k monad.Cont) (evaluator.Object, error) {
	return bindProcess(m.(*Process), k), nil
}

func (Pause) Do(m evaluator.Object, rest monad.Rest) (evaluator.Object, error) {
	return bindProcess(m.(*Process), func(evaluator.Object) (evaluator.Object, error) { return rest() }), nil
}

func bindProcess(p *Process, k monad.Cont) *Process {
	return NewProcess(func() (Step, error) {
		s, err := p.Step()
		if err != nil {
			return nil, err
		}
		switch s := s.(type) {
		case *Continue:
			r, err := k(s.Result)
			if err != nil {
				return nil, err
			}
			next, ok := r.(*Process)
			if !ok {
				return nil, wrongType("bind continuation", PAUSE_OBJ, r)
			}
			return next.Step()
		case *Paused:
			return &Paused{Next: bindProcess(s.Next, k)}, nil
		}
		return nil, fmt.Errorf("unknown coroutine step %T", s)
	})
}

func (Pause) Builtins() []*evaluator.Builtin {
	return []*evaluator.Builtin{
		builtin(config.YieldFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.YieldFuncName, args, 1); err != nil {
				return nil, err
			}
			return Yield(args[0]), nil
		}),
	}
}
