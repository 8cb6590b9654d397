package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

// evaluation is the state of one Run. Continuations captured by the
// capability may outlive RunContext (a paused coroutine resumes later),
// so nothing here is released when the run returns.
type evaluation struct {
	ctx context.Context
	e   *Engine
	d   *monad.Descriptor
	id  uuid.UUID
	seq atomic.Int64
}

func newEvaluation(ctx context.Context, e *Engine) *evaluation {
	return &evaluation{ctx: ctx, e: e, d: e.desc, id: uuid.New()}
}

func (ev *evaluation) trace(op, statement string, v evaluator.Object) {
	if ev.e.tracer == nil {
		return
	}
	var vt evaluator.ObjectType
	if v != nil {
		vt = v.Type()
	}
	ev.e.tracer.Trace(Event{
		EvalID:    ev.id,
		Seq:       ev.seq.Add(1),
		Op:        op,
		Statement: statement,
		ValueType: vt,
		Time:      time.Now(),
	})
}

// evalSteps evaluates a script or a selected branch body. An empty body
// yields zero.
func (ev *evaluation) evalSteps(steps []step, vars *evaluator.Context) (evaluator.Object, error) {
	if len(steps) == 0 {
		return ev.zero("")
	}
	return ev.evalFrom(steps, 0, vars)
}

func (ev *evaluation) evalFrom(steps []step, i int, vars *evaluator.Context) (evaluator.Object, error) {
	if err := ev.ctx.Err(); err != nil {
		return nil, &Error{Op: OpCancel, Statement: steps[i].text, Err: err}
	}

	st := steps[i]
	res, err := ev.evalStep(st, vars)
	if err != nil {
		return nil, err
	}

	if i == len(steps)-1 {
		switch r := res.(type) {
		case evaluator.UnitResult:
			return ev.unit(steps, i, vars, r.Value)
		case evaluator.Unit2Result:
			return ev.unit2(steps, i, vars, r.Value)
		default:
			return ev.zero(st.text)
		}
	}

	switch r := res.(type) {
	case evaluator.NoResult:
		return ev.evalFrom(steps, i+1, r.Context)
	case evaluator.UnitResult:
		return ev.unit(steps, i, vars, r.Value)
	case evaluator.Unit2Result:
		return ev.unit2(steps, i, vars, r.Value)
	case evaluator.BindResult:
		if err := ev.d.CheckType(monad.OpBind, r.Value); err != nil {
			return nil, wrap(monad.OpBind, st.text, err)
		}
		ev.trace(monad.OpBind, st.text, r.Value)
		m, err := ev.d.Bind(r.Value, func(v evaluator.Object) (evaluator.Object, error) {
			return ev.evalFrom(steps, i+1, vars.With(r.Name, v))
		})
		if err != nil {
			return nil, wrap(monad.OpBind, st.text, err)
		}
		return m, nil
	case evaluator.DoResult:
		if err := ev.d.CheckType(monad.OpDo, r.Value); err != nil {
			return nil, wrap(monad.OpDo, st.text, err)
		}
		ev.trace(monad.OpDo, st.text, r.Value)
		m, err := ev.d.Do(r.Value, func() (evaluator.Object, error) {
			return ev.evalFrom(steps, i+1, vars)
		})
		if err != nil {
			return nil, wrap(monad.OpDo, st.text, err)
		}
		return m, nil
	}
	return nil, &Error{Op: OpStatement, Statement: st.text, Err: fmt.Errorf("unexpected result %T", res)}
}

// evalStep evaluates one slot to an EvalResult. A chain evaluates the
// body of its first truthy arm as a nested script on a copy of vars and
// reports the outcome as a unit2 of that value; when no arm is taken the
// chain is a plain statement.
func (ev *evaluation) evalStep(st step, vars *evaluator.Context) (evaluator.EvalResult, error) {
	if st.arms == nil {
		res, err := ev.e.eval.EvalStatement(st.stmt, vars)
		if err != nil {
			return nil, &Error{Op: OpStatement, Statement: st.text, Err: fmt.Errorf("%w: %w", ErrStatement, err)}
		}
		return res, nil
	}

	for _, a := range st.arms {
		if a.cond != nil {
			ok, err := ev.e.eval.EvalCondition(a.cond, vars)
			if err != nil {
				return nil, &Error{Op: OpCondition, Statement: a.source, Err: fmt.Errorf("%w: %w", ErrStatement, err)}
			}
			if !ok {
				continue
			}
		}
		v, err := ev.evalSteps(a.body, vars.Copy())
		if err != nil {
			return nil, err
		}
		return evaluator.Unit2Result{Value: v}, nil
	}
	return evaluator.NoResult{Context: vars}, nil
}

func (ev *evaluation) unit(steps []step, i int, vars *evaluator.Context, v evaluator.Object) (evaluator.Object, error) {
	text := steps[i].text
	m, err := ev.d.Unit(v)
	if err != nil {
		return nil, wrap(monad.OpUnit, text, err)
	}
	ev.trace(monad.OpUnit, text, m)
	return ev.unitHelper(monad.OpUnit, steps, i, vars, m)
}

func (ev *evaluation) unit2(steps []step, i int, vars *evaluator.Context, v evaluator.Object) (evaluator.Object, error) {
	text := steps[i].text
	m, err := ev.d.Unit2(v)
	if err != nil {
		return nil, wrap(monad.OpUnit2, text, err)
	}
	ev.trace(monad.OpUnit2, text, m)
	return ev.unitHelper(monad.OpUnit2, steps, i, vars, m)
}

// unitHelper finishes a unit or unit2 statement: the value is the result
// when nothing follows, otherwise it is combined with the (delayed) rest
// of the script.
func (ev *evaluation) unitHelper(op string, steps []step, i int, vars *evaluator.Context, m evaluator.Object) (evaluator.Object, error) {
	text := steps[i].text
	if err := ev.d.CheckType(op, m); err != nil {
		return nil, wrap(op, text, err)
	}
	if i == len(steps)-1 {
		return m, nil
	}
	if !ev.d.HasCombine() {
		return nil, wrap(monad.OpCombine, text, monad.ErrCombineNotImplemented)
	}

	rest, err := ev.delay(text, func() (evaluator.Object, error) {
		return ev.evalFrom(steps, i+1, vars)
	})
	if err != nil {
		return nil, err
	}
	out, err := ev.d.Combine(m, rest)
	if err != nil {
		return nil, wrap(monad.OpCombine, text, err)
	}
	if err := ev.d.CheckType(monad.OpCombine, out); err != nil {
		return nil, wrap(monad.OpCombine, text, err)
	}
	ev.trace(monad.OpCombine, text, out)
	return out, nil
}

func (ev *evaluation) delay(text string, f func() (evaluator.Object, error)) (evaluator.Object, error) {
	d, err := ev.d.Delay(evaluator.NewThunk(f))
	if err != nil {
		return nil, wrap(monad.OpDelay, text, err)
	}
	ev.trace(monad.OpDelay, text, d)
	return d, nil
}

func (ev *evaluation) zero(text string) (evaluator.Object, error) {
	z, err := ev.d.Zero()
	if err != nil {
		return nil, wrap(monad.OpZero, text, err)
	}
	if err := ev.d.CheckType(monad.OpZero, z); err != nil {
		return nil, wrap(monad.OpZero, text, err)
	}
	ev.trace(monad.OpZero, text, z)
	return z, nil
}
