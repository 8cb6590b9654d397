package monad

import (
	"errors"
	"testing"

	"github.com/funvibe/monadic/internal/evaluator"
)

// box is a minimal capability over *evaluator.List values.
type box struct{}

func (box) Tag() evaluator.ObjectType { return evaluator.LIST_OBJ }
func (box) Unit(v evaluator.Object) (evaluator.Object, error) {
	return evaluator.NewList([]evaluator.Object{v}), nil
}
func (box) Bind(m evaluator.Object, k Cont) (evaluator.Object, error) {
	return k(m.(*evaluator.List).Elements[0])
}
func (box) Do(m evaluator.Object, rest Rest) (evaluator.Object, error) { return rest() }

type boxWithCombine struct{ box }

func (boxWithCombine) Combine(m, rest evaluator.Object) (evaluator.Object, error) { return m, nil }

type fullBox struct{ boxWithCombine }

func (fullBox) Zero() (evaluator.Object, error) { return evaluator.NewList(nil), nil }
func (fullBox) Delay(f *evaluator.Thunk) (evaluator.Object, error) {
	return f, nil
}
func (fullBox) Run(m evaluator.Object) (evaluator.Object, error) {
	return m.(*evaluator.Thunk).Force()
}
func (fullBox) Unit2(m evaluator.Object) (evaluator.Object, error) { return m, nil }

type partial struct {
	Unimplemented
}

func (partial) Tag() evaluator.ObjectType { return "PARTIAL" }

func TestDescribeDetectsOptionalOperations(t *testing.T) {
	d, err := Describe(box{})
	if err != nil {
		t.Fatal(err)
	}
	if d.HasUnit2() || d.HasZero() || d.HasCombine() || d.HasDelay() || d.HasRun() {
		t.Errorf("box should have no optional operations")
	}

	d, err = Describe(fullBox{})
	if err != nil {
		t.Fatal(err)
	}
	if !d.HasUnit2() || !d.HasZero() || !d.HasCombine() || !d.HasDelay() || !d.HasRun() {
		t.Errorf("fullBox should have every optional operation")
	}
}

func TestCombineWithoutDelayIsRejected(t *testing.T) {
	_, err := Describe(boxWithCombine{})
	if !errors.Is(err, ErrCombineWithoutDelay) {
		t.Fatalf("expected ErrCombineWithoutDelay, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	d, err := Describe(box{})
	if err != nil {
		t.Fatal(err)
	}
	m := evaluator.NewList(nil)
	got, err := d.Unit2(m)
	if err != nil || got != m {
		t.Errorf("default Unit2 should be the identity")
	}
	if _, err := d.Zero(); !errors.Is(err, ErrZeroNotImplemented) {
		t.Errorf("Zero: expected ErrZeroNotImplemented, got %v", err)
	}
	if _, err := d.Combine(m, m); !errors.Is(err, ErrCombineNotImplemented) {
		t.Errorf("Combine: expected ErrCombineNotImplemented, got %v", err)
	}
	forced, err := d.Delay(evaluator.NewThunk(func() (evaluator.Object, error) { return m, nil }))
	if err != nil || forced != m {
		t.Errorf("Delay without Delayer should force")
	}
	if got, _ := d.Run(m); got != m {
		t.Errorf("Run without Runner should be the identity")
	}
}

func TestUnimplemented(t *testing.T) {
	d, err := Describe(partial{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Unit(evaluator.NIL); !errors.Is(err, ErrUnitNotImplemented) {
		t.Errorf("Unit: %v", err)
	}
	if _, err := d.Bind(evaluator.NIL, nil); !errors.Is(err, ErrBindNotImplemented) {
		t.Errorf("Bind: %v", err)
	}
	if _, err := d.Do(evaluator.NIL, nil); !errors.Is(err, ErrDoNotImplemented) {
		t.Errorf("Do: %v", err)
	}
}

func TestCheckType(t *testing.T) {
	d, _ := Describe(box{})
	if err := d.CheckType(OpBind, evaluator.NewList(nil)); err != nil {
		t.Errorf("list should pass: %v", err)
	}

	err := d.CheckType(OpUnit, &evaluator.Integer{Value: 1})
	if !errors.Is(err, ErrTypeMismatch) || !errors.Is(err, ErrUnitTypeMismatch) {
		t.Errorf("unit mismatch should match both sentinels: %v", err)
	}
	err = d.CheckType(OpBind, nil)
	if !errors.Is(err, ErrTypeMismatch) || errors.Is(err, ErrUnitTypeMismatch) {
		t.Errorf("bind mismatch should only match ErrTypeMismatch: %v", err)
	}
	var te *TypeError
	if !errors.As(err, &te) || te.Actual != evaluator.NIL_OBJ {
		t.Errorf("expected TypeError with NIL actual, got %#v", err)
	}
}
