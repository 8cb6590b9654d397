package evaluator

import (
	"bytes"
	"errors"
	"testing"

	"github.com/funvibe/monadic/internal/parser"
)

func mustEval(t *testing.T, e *Evaluator, input string, ctx *Context) (Object, *Context) {
	t.Helper()
	stmt, err := parser.ParseStatement(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	obj, next, err := e.Eval(stmt.Expression, ctx)
	if err != nil {
		t.Fatalf("eval %q: %v", input, err)
	}
	return obj, next
}

func TestEvalExpressions(t *testing.T) {
	ctx := NewContext().
		With("x", &Integer{Value: 4}).
		With("xs", NewList([]Object{&Integer{Value: 1}, &Integer{Value: 2}}))

	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "7"},
		{"10 / 5", "2"},
		{"7 / 2", "3.5"},
		{"7 % 3", "1"},
		{"1.5 + 1", "2.5"},
		{"-x", "-4"},
		{"x >= 4 && x < 5", "true"},
		{"!x || false", "false"},
		{"'a' + 'b'", `"ab"`},
		{"'step ' + x", `"step 4"`},
		{"xs + [3]", "[1, 2, 3]"},
		{"xs[-1]", "2"},
		{"'héllo'[1]", `"é"`},
		{"1 == 1.0", "true"},
		{"[1, 2] == xs", "true"},
		{"nil == null", "true"},
		{"len(xs) + len('abc')", "5"},
		{"head(tail(xs))", "2"},
		{"append(xs, 3)", "[1, 2, 3]"},
		{"prepend(0, xs)", "[0, 1, 2]"},
		{"concat(xs, [], xs)", "[1, 2, 1, 2]"},
		{"range(3)", "[0, 1, 2]"},
		{"range(2, 4)", "[2, 3]"},
		{"str(x) + '!'", `"4!"`},
		{"abs(-2.5)", "2.5"},
		{"min(3, 1, 2)", "1"},
		{"max(xs)", "2"},
		{"type_of(xs)", `"LIST"`},
		{"yaml_decode('a: [1, 2.5, true]')['a']", "[1, 2.5, true]"},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			obj, _ := mustEval(t, e, tt.input, ctx)
			if got := obj.Inspect(); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestAssignmentThreadsContext(t *testing.T) {
	e := New()
	ctx := NewContext().With("x", &Integer{Value: 1})

	_, next := mustEval(t, e, "x += 2", ctx)
	v, _ := next.Get("x")
	if v.Inspect() != "3" {
		t.Errorf("x = %s, want 3", v.Inspect())
	}
	if old, _ := ctx.Get("x"); old.Inspect() != "1" {
		t.Errorf("original context was mutated: x = %s", old.Inspect())
	}

	_, next = mustEval(t, e, "y = x = 5", next)
	if got := next.Names(); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("names = %v, want [x y]", got)
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []string{
		"missing",
		"1 / 0",
		"'a' - 1",
		"[1][5]",
		"len(1)",
		"head([])",
		"bind(x, 1) + 1",
		"unit(1)",
		"1(2)",
	}
	e := New()
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			stmt, err := parser.ParseStatement(input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			_, _, err = e.Eval(stmt.Expression, NewContext())
			if !errors.Is(err, ErrRuntime) {
				t.Errorf("expected ErrRuntime, got %v", err)
			}
		})
	}
}

func TestEvalStatementClassifies(t *testing.T) {
	e := New()
	ctx := NewContext().With("m", &Integer{Value: 7})

	tests := []struct {
		input string
		check func(t *testing.T, r EvalResult)
	}{
		{"unit(1 + 1)", func(t *testing.T, r EvalResult) {
			u, ok := r.(UnitResult)
			if !ok || u.Value.Inspect() != "2" {
				t.Errorf("got %#v", r)
			}
		}},
		{"unit2(m)", func(t *testing.T, r EvalResult) {
			if u, ok := r.(Unit2Result); !ok || u.Value.Inspect() != "7" {
				t.Errorf("got %#v", r)
			}
		}},
		{"bind(x, m)", func(t *testing.T, r EvalResult) {
			if b, ok := r.(BindResult); !ok || b.Name != "x" || b.Value.Inspect() != "7" {
				t.Errorf("got %#v", r)
			}
		}},
		{"bind('y', m)", func(t *testing.T, r EvalResult) {
			if b, ok := r.(BindResult); !ok || b.Name != "y" {
				t.Errorf("got %#v", r)
			}
		}},
		{"do_(m)", func(t *testing.T, r EvalResult) {
			if _, ok := r.(DoResult); !ok {
				t.Errorf("got %#v", r)
			}
		}},
		{"monad_do(m)", func(t *testing.T, r EvalResult) {
			if _, ok := r.(DoResult); !ok {
				t.Errorf("got %#v", r)
			}
		}},
		{"z = m * 2", func(t *testing.T, r EvalResult) {
			n, ok := r.(NoResult)
			if !ok {
				t.Fatalf("got %#v", r)
			}
			if z, _ := n.Context.Get("z"); z == nil || z.Inspect() != "14" {
				t.Errorf("z = %v", z)
			}
		}},
		{"// nothing", func(t *testing.T, r EvalResult) {
			if _, ok := r.(NoResult); !ok {
				t.Errorf("got %#v", r)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, err := parser.ParseStatement(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			r, err := e.EvalStatement(stmt, ctx)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, r)
		})
	}
}

func TestSpecialFormArity(t *testing.T) {
	e := New()
	for _, input := range []string{"unit()", "bind(x)", "do_(1, 2)", "bind(1, 2)"} {
		stmt, err := parser.ParseStatement(input)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := e.EvalStatement(stmt, NewContext()); !errors.Is(err, ErrRuntime) {
			t.Errorf("%s: expected ErrRuntime, got %v", input, err)
		}
	}
}

func TestLiftAndPrint(t *testing.T) {
	var out bytes.Buffer
	e := New()
	e.Out = &out
	e.Lift = func(v Object) (Object, error) { return NewList([]Object{v}), nil }

	obj, _ := mustEval(t, e, "concat(unit(1), unit(2))", NewContext())
	if obj.Inspect() != "[1, 2]" {
		t.Errorf("lifted = %s", obj.Inspect())
	}

	mustEval(t, e, "print('n =', 3, [1])", NewContext())
	if out.String() != "n = 3 [1]\n" {
		t.Errorf("print wrote %q", out.String())
	}
}

func TestThunkCall(t *testing.T) {
	e := New()
	calls := 0
	ctx := NewContext().With("f", NewThunk(func() (Object, error) {
		calls++
		return &Integer{Value: 9}, nil
	}))
	obj, _ := mustEval(t, e, "f() + f()", ctx)
	if obj.Inspect() != "18" || calls != 2 {
		t.Errorf("got %s after %d calls", obj.Inspect(), calls)
	}
}

func TestDecodeContextKeepsOrder(t *testing.T) {
	ctx, err := DecodeContext([]byte("b: 1\na: [x, 2]\nc: {k: v}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := ctx.Inspect(); got != `{b: 1, a: ["x", 2], c: {k: "v"}}` {
		t.Errorf("context = %s", got)
	}
	if _, err := DecodeContext([]byte("- 1\n- 2\n")); err == nil {
		t.Error("expected error for non-mapping context")
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		obj  Object
		want bool
	}{
		{TRUE, true}, {FALSE, false}, {NIL, false},
		{&Integer{Value: 0}, false}, {&Integer{Value: 2}, true},
		{&Float{Value: 0}, false}, {&String{Value: ""}, false},
		{&String{Value: "x"}, true}, {NewList(nil), false},
		{&Builtin{Name: "f"}, true},
	}
	for _, tt := range tests {
		if got := IsTruthy(tt.obj); got != tt.want {
			t.Errorf("IsTruthy(%s) = %v, want %v", tt.obj.Inspect(), got, tt.want)
		}
	}
}

func TestToGoFromGoRoundTrip(t *testing.T) {
	obj := NewRecord(map[string]Object{
		"n":  &Integer{Value: 2},
		"xs": NewList([]Object{&String{Value: "a"}, NIL}),
	})
	back, err := FromGo(ToGo(obj))
	if err != nil {
		t.Fatal(err)
	}
	if !ObjectsEqual(obj, back) {
		t.Errorf("round trip: %s != %s", obj.Inspect(), back.Inspect())
	}
}
