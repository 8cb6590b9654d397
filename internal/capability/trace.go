package capability

import (
	"fmt"
	"io"

	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

// The trace capabilities are integers that print each operation they
// perform. Running the same script through both shows the difference
// between a delay that defers the rest of a script and one that runs it
// at once.

// DelayTrace returns the delayed thunk from delay; combine forces it and
// run forces the whole script.
type DelayTrace struct {
	Out io.Writer
}

func (DelayTrace) Tag() evaluator.ObjectType { return evaluator.INTEGER_OBJ }

func (t DelayTrace) Unit(v evaluator.Object) (evaluator.Object, error) { return traceUnit(t.Out, v) }

func (DelayTrace) Bind(m evaluator.Object, k monad.Cont) (evaluator.Object, error) { return k(m) }

func (DelayTrace) Do(m evaluator.Object, rest monad.Rest) (evaluator.Object, error) { return rest() }

func (t DelayTrace) Combine(m, rest evaluator.Object) (evaluator.Object, error) {
	fmt.Fprintf(t.Out, "combine: (%s, ?)\n", m.Inspect())
	r, err := forced(rest)
	if err != nil {
		return nil, err
	}
	return evaluator.Add(m, r)
}

func (t DelayTrace) Delay(f *evaluator.Thunk) (evaluator.Object, error) {
	fmt.Fprintln(t.Out, "delay")
	return f, nil
}

func (t DelayTrace) Run(m evaluator.Object) (evaluator.Object, error) {
	fmt.Fprintln(t.Out, "run")
	return forced(m)
}

// NoDelayTrace runs delayed computations immediately.
type NoDelayTrace struct {
	Out io.Writer
}

func (NoDelayTrace) Tag() evaluator.ObjectType { return evaluator.INTEGER_OBJ }

func (t NoDelayTrace) Unit(v evaluator.Object) (evaluator.Object, error) { return traceUnit(t.Out, v) }

func (NoDelayTrace) Bind(m evaluator.Object, k monad.Cont) (evaluator.Object, error) { return k(m) }

func (NoDelayTrace) Do(m evaluator.Object, rest monad.Rest) (evaluator.Object, error) { return rest() }

func (t NoDelayTrace) Combine(m, rest evaluator.Object) (evaluator.Object, error) {
	fmt.Fprintf(t.Out, "combine: (%s, %s)\n", m.Inspect(), rest.Inspect())
	return evaluator.Add(m, rest)
}

func (t NoDelayTrace) Delay(f *evaluator.Thunk) (evaluator.Object, error) {
	fmt.Fprintln(t.Out, "delay")
	return f.Force()
}

func (t NoDelayTrace) Run(m evaluator.Object) (evaluator.Object, error) {
	fmt.Fprintln(t.Out, "run")
	return m, nil
}

func traceUnit(out io.Writer, v evaluator.Object) (evaluator.Object, error) {
	if _, ok := v.(*evaluator.Integer); !ok {
		return nil, wrongType("unit", evaluator.INTEGER_OBJ, v)
	}
	fmt.Fprintf(out, "return %s\n", v.Inspect())
	return v, nil
}
