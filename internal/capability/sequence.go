package capability

import (
	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/evaluator"
)

const sequenceScript = `
	bind(item_, item);
	bind(acc_, acc);
	unit(prepend(item_, acc_));
`

// Sequence turns a list of monadic values into one monadic value holding
// the list of their inner values. It is written as a script so it works
// for any capability e runs.
func Sequence(e *engine.Engine, items []evaluator.Object) (evaluator.Object, error) {
	prog, err := e.Compile(sequenceScript)
	if err != nil {
		return nil, err
	}
	acc, err := e.Evaluate("unit([]);", nil)
	if err != nil {
		return nil, err
	}
	for i := len(items) - 1; i >= 0; i-- {
		vars := evaluator.NewContext().With("item", items[i]).With("acc", acc)
		acc, err = e.Run(prog, vars)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// ReplicateM runs m n times and collects the results.
func ReplicateM(e *engine.Engine, n int, m evaluator.Object) (evaluator.Object, error) {
	items := make([]evaluator.Object, n)
	for i := range items {
		items[i] = m
	}
	return Sequence(e, items)
}
