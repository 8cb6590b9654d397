package capability

import (
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

// List is the nondeterminism monad over script lists: bind runs the rest
// of the script once per element and concatenates the results.
type List struct{}

func (List) Tag() evaluator.ObjectType { return evaluator.LIST_OBJ }

func (List) Unit(v evaluator.Object) (evaluator.Object, error) {
	return evaluator.NewList([]evaluator.Object{v}), nil
}

func (List) Bind(m evaluator.Object, k monad.Cont) (evaluator.Object, error) {
	var out []evaluator.Object
	for _, el := range m.(*evaluator.List).Elements {
		r, err := k(el)
		if err != nil {
			return nil, err
		}
		l, ok := r.(*evaluator.List)
		if !ok {
			return nil, wrongType("bind continuation", evaluator.LIST_OBJ, r)
		}
		out = append(out, l.Elements...)
	}
	return evaluator.NewList(out), nil
}

// Do repeats the rest of the script once per element of m.
func (List) Do(m evaluator.Object, rest monad.Rest) (evaluator.Object, error) {
	return List{}.Bind(m, func(evaluator.Object) (evaluator.Object, error) { return rest() })
}

func (List) Zero() (evaluator.Object, error) { return evaluator.NewList(nil), nil }

func (List) Combine(m, rest evaluator.Object) (evaluator.Object, error) {
	r, err := forced(rest)
	if err != nil {
		return nil, err
	}
	a, b := m.(*evaluator.List), r.(*evaluator.List)
	out := make([]evaluator.Object, 0, len(a.Elements)+len(b.Elements))
	out = append(out, a.Elements...)
	return evaluator.NewList(append(out, b.Elements...)), nil
}

func (List) Delay(f *evaluator.Thunk) (evaluator.Object, error) { return f.Force() }
