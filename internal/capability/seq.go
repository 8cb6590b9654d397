package capability

import (
	"fmt"
	"strings"

	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/monad"
)

const SEQ_OBJ evaluator.ObjectType = "SEQ"

// SeqNode is one forced element of a sequence. Next is never nil.
type SeqNode struct {
	Item evaluator.Object
	Next *SeqValue
}

// SeqValue is a lazy sequence: forcing it produces the first node, or
// nil when the sequence is empty. Forcing is not memoized, so a sequence
// built by a script re-runs that script each time it is walked.
type SeqValue struct {
	force func() (*SeqNode, error)
}

func NewSeq(force func() (*SeqNode, error)) *SeqValue { return &SeqValue{force: force} }

func (s *SeqValue) Type() evaluator.ObjectType { return SEQ_OBJ }
func (s *SeqValue) Inspect() string            { return "<seq>" }

// Force evaluates the sequence up to its first node.
func (s *SeqValue) Force() (*SeqNode, error) { return s.force() }

func EmptySeq() *SeqValue {
	return NewSeq(func() (*SeqNode, error) { return nil, nil })
}

func SeqOf(items ...evaluator.Object) *SeqValue {
	if len(items) == 0 {
		return EmptySeq()
	}
	return NewSeq(func() (*SeqNode, error) {
		return &SeqNode{Item: items[0], Next: SeqOf(items[1:]...)}, nil
	})
}

// Append concatenates a and b without forcing either until walked.
func Append(a, b *SeqValue) *SeqValue {
	return NewSeq(func() (*SeqNode, error) {
		n, err := a.Force()
		if err != nil {
			return nil, err
		}
		if n == nil {
			return b.Force()
		}
		return &SeqNode{Item: n.Item, Next: Append(n.Next, b)}, nil
	})
}

// Take keeps at most n leading elements of s.
func Take(n int64, s *SeqValue) *SeqValue {
	return NewSeq(func() (*SeqNode, error) {
		if n <= 0 {
			return nil, nil
		}
		node, err := s.Force()
		if err != nil || node == nil {
			return nil, err
		}
		return &SeqNode{Item: node.Item, Next: Take(n-1, node.Next)}, nil
	})
}

// Iter calls f on each element in order. It does not return for an
// infinite sequence unless f fails.
func Iter(s *SeqValue, f func(evaluator.Object) error) error {
	for {
		node, err := s.Force()
		if err != nil || node == nil {
			return err
		}
		if err := f(node.Item); err != nil {
			return err
		}
		s = node.Next
	}
}

// ToList forces every element of a finite sequence.
func ToList(s *SeqValue) (*evaluator.List, error) {
	var out []evaluator.Object
	err := Iter(s, func(v evaluator.Object) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return evaluator.NewList(out), nil
}

// Seq builds lazy sequences. unit is a single element and combine
// appends lazily, so a script can describe an infinite sequence through
// unit2 of a recursive sequence.
type Seq struct{}

func (Seq) Tag() evaluator.ObjectType { return SEQ_OBJ }

func (Seq) Unit(v evaluator.Object) (evaluator.Object, error) { return SeqOf(v), nil }

// Bind maps every element of m to a sequence through k and concatenates
// the results. Elements are bound only as the result is walked.
func (Seq) Bind(m evaluator.Object, k monad.Cont) (evaluator.Object, error) {
	return flatMap(m.(*SeqValue), k), nil
}

func (Seq) Do(m evaluator.Object, rest monad.Rest) (evaluator.Object, error) {
	return flatMap(m.(*SeqValue), func(evaluator.Object) (evaluator.Object, error) { return rest() }), nil
}

func flatMap(s *SeqValue, k monad.Cont) *SeqValue {
	return NewSeq(func() (*SeqNode, error) {
		node, err := s.Force()
		if err != nil || node == nil {
			return nil, err
		}
		r, err := k(node.Item)
		if err != nil {
			return nil, err
		}
		inner, ok := r.(*SeqValue)
		if !ok {
			return nil, wrongType("bind continuation", SEQ_OBJ, r)
		}
		return Append(inner, flatMap(node.Next, k)).Force()
	})
}

func (Seq) Zero() (evaluator.Object, error) { return EmptySeq(), nil }

func (Seq) Combine(m, rest evaluator.Object) (evaluator.Object, error) {
	r, err := forced(rest)
	if err != nil {
		return nil, err
	}
	return Append(m.(*SeqValue), r.(*SeqValue)), nil
}

func (Seq) Delay(f *evaluator.Thunk) (evaluator.Object, error) { return f.Force() }

func (Seq) Builtins() []*evaluator.Builtin {
	return []*evaluator.Builtin{
		builtin(config.SeqEmptyFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.SeqEmptyFuncName, args, 0); err != nil {
				return nil, err
			}
			return EmptySeq(), nil
		}),
		builtin(config.SeqUnitFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.SeqUnitFuncName, args, 1); err != nil {
				return nil, err
			}
			return SeqOf(args[0]), nil
		}),
		builtin(config.SeqTakeFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.SeqTakeFuncName, args, 2); err != nil {
				return nil, err
			}
			n, ok := args[0].(*evaluator.Integer)
			if !ok {
				return nil, wrongType(config.SeqTakeFuncName, evaluator.INTEGER_OBJ, args[0])
			}
			s, ok := args[1].(*SeqValue)
			if !ok {
				return nil, wrongType(config.SeqTakeFuncName, SEQ_OBJ, args[1])
			}
			return Take(n.Value, s), nil
		}),
		builtin(config.SeqToListFuncName, func(args ...evaluator.Object) (evaluator.Object, error) {
			if err := checkArgs(config.SeqToListFuncName, args, 1); err != nil {
				return nil, err
			}
			s, ok := args[0].(*SeqValue)
			if !ok {
				return nil, wrongType(config.SeqToListFuncName, SEQ_OBJ, args[0])
			}
			return ToList(s)
		}),
	}
}

const counterScript = `
	if (start > end) {
		unit2(seq_empty());
	} else if (start == end) {
		unit(start);
	} else {
		unit2(rec);
	}
`

// Counter returns the sequence start, start+1, ..., end, described by a
// script that recurses through unit2. e must run the Seq capability.
func Counter(e *engine.Engine, start, end int64) (*SeqValue, error) {
	rec := NewSeq(func() (*SeqNode, error) {
		next, err := Counter(e, start+1, end)
		if err != nil {
			return nil, err
		}
		return &SeqNode{Item: &evaluator.Integer{Value: start}, Next: next}, nil
	})
	vars := evaluator.NewContext().
		With("start", &evaluator.Integer{Value: start}).
		With("end", &evaluator.Integer{Value: end}).
		With("rec", rec)
	v, err := e.Evaluate(counterScript, vars)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*SeqValue)
	if !ok {
		return nil, wrongType("counter", SEQ_OBJ, v)
	}
	return s, nil
}

// FormatSeq renders at most limit elements, marking a longer sequence
// with a trailing "...".
func FormatSeq(s *SeqValue, limit int) (string, error) {
	head, err := ToList(Take(int64(limit)+1, s))
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(head.Elements))
	for i, el := range head.Elements {
		if i == limit {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, el.Inspect())
	}
	return fmt.Sprintf("seq[%s]", strings.Join(parts, ", ")), nil
}
