// Package engine evaluates monadic scripts against a capability.
//
// A script is split into slots (statements and fused if/else chains),
// each statement is parsed once, and evaluation walks the slots in
// continuation-passing style: bind and do_ hand the rest of the script to
// the capability as a continuation, and consecutive unit statements are
// joined with combine, the rest of the script wrapped through delay.
package engine

import (
	"context"
	"io"
	"log"

	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

// Engine is immutable after New and may run concurrent evaluations.
type Engine struct {
	desc     *monad.Descriptor
	eval     *evaluator.Evaluator
	tracer   Tracer
	builtins []*evaluator.Builtin
	out      io.Writer
}

type Option func(*Engine)

// WithTracer adds a receiver for capability-boundary events.
func WithTracer(t Tracer) Option {
	return func(e *Engine) {
		if t == nil {
			return
		}
		if m, ok := e.tracer.(multiTracer); ok {
			e.tracer = append(m, t)
			return
		}
		e.tracer = multiTracer{t}
	}
}

// WithLogger logs every capability-boundary event to l.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		return func(*Engine) {}
	}
	return WithTracer(LogTracer{Logger: l})
}

// WithBuiltins makes extra functions visible to scripts. They take
// precedence over the capability's own helpers.
func WithBuiltins(b ...*evaluator.Builtin) Option {
	return func(e *Engine) { e.builtins = append(e.builtins, b...) }
}

// WithOutput redirects the print builtin.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// New validates the capability and prepares an engine for it.
func New(c monad.Capability, opts ...Option) (*Engine, error) {
	desc, err := monad.Describe(c)
	if err != nil {
		return nil, err
	}
	e := &Engine{desc: desc}
	for _, opt := range opts {
		opt(e)
	}

	e.eval = evaluator.New()
	if e.out != nil {
		e.eval.Out = e.out
	}
	for _, b := range desc.Builtins() {
		e.eval.Register(b)
	}
	for _, b := range e.builtins {
		e.eval.Register(b)
	}
	e.eval.Lift = e.lift
	return e, nil
}

// Descriptor exposes what the capability supports.
func (e *Engine) Descriptor() *monad.Descriptor { return e.desc }

// BuiltinNames lists the functions visible to scripts.
func (e *Engine) BuiltinNames() []string { return e.eval.BuiltinNames() }

// lift backs unit(v) used inside an expression.
func (e *Engine) lift(v evaluator.Object) (evaluator.Object, error) {
	m, err := e.desc.Unit(v)
	if err != nil {
		return nil, err
	}
	if err := e.desc.CheckType(monad.OpUnit, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Evaluate compiles and runs src. vars may be nil.
func (e *Engine) Evaluate(src string, vars *evaluator.Context) (evaluator.Object, error) {
	return e.EvaluateContext(context.Background(), src, vars)
}

// EvaluateContext is Evaluate with cancellation, checked before each slot.
func (e *Engine) EvaluateContext(ctx context.Context, src string, vars *evaluator.Context) (evaluator.Object, error) {
	prog, err := e.Compile(src)
	if err != nil {
		return nil, err
	}
	return e.RunContext(ctx, prog, vars)
}

// Run evaluates a compiled program.
func (e *Engine) Run(prog *Program, vars *evaluator.Context) (evaluator.Object, error) {
	return e.RunContext(context.Background(), prog, vars)
}

// RunContext evaluates a compiled program, applying the capability's
// delay and run around the whole script when present.
func (e *Engine) RunContext(ctx context.Context, prog *Program, vars *evaluator.Context) (evaluator.Object, error) {
	ev := newEvaluation(ctx, e)
	if vars == nil {
		vars = evaluator.NewContext()
	}

	top := func() (evaluator.Object, error) {
		return ev.evalSteps(prog.steps, vars)
	}

	var (
		result evaluator.Object
		err    error
	)
	if e.desc.HasDelay() {
		result, err = ev.delay("", top)
	} else {
		result, err = top()
	}
	if err != nil {
		return nil, err
	}
	if e.desc.HasRun() {
		result, err = e.desc.Run(result)
		if err != nil {
			return nil, wrap(monad.OpRun, "", err)
		}
		ev.trace(monad.OpRun, "", result)
	}
	return result, nil
}
