package capability

import (
	"fmt"

	"github.com/funvibe/monadic/internal/evaluator"
)

// RenderOptions controls how Render forces lazy results.
type RenderOptions struct {
	Take         int              // elements shown from a sequence
	InitialState evaluator.Object // state a STATE result is run with; nil runs it with nil
}

// Render turns a script result into text. Sequences are forced up to
// Take elements, state computations are run from InitialState and
// coroutines are stepped to completion; anything else is Inspect.
func Render(v evaluator.Object, opts RenderOptions) (string, error) {
	switch v := v.(type) {
	case *SeqValue:
		return FormatSeq(v, opts.Take)
	case *StateValue:
		initial := opts.InitialState
		if initial == nil {
			initial = evaluator.NIL
		}
		s, r, err := RunState(v, initial)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("State(%s, %s)", s.Inspect(), r.Inspect()), nil
	case *Process:
		r, err := RunToEnd(v)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Done(%s)", r.Inspect()), nil
	case nil:
		return "nil", nil
	}
	return v.Inspect(), nil
}
