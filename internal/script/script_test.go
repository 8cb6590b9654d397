package script

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildTreeLeaves(t *testing.T) {
	block, err := BuildTree(`
		bind('x', some(1));
		;;
		y = "a;b{c}";
		unit(x + y);
		trailing text is ignored`)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, n := range block.Children {
		leaf, ok := n.(*Leaf)
		if !ok {
			t.Fatalf("expected *Leaf, got %T", n)
		}
		got = append(got, leaf.Text)
	}
	want := []string{`bind('x', some(1))`, `y = "a;b{c}"`, `unit(x + y)`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("leaves = %q, want %q", got, want)
	}
}

func TestBuildTreeBranches(t *testing.T) {
	block, err := BuildTree(`
		if (n == 0) { unit(0); }
		else if (n == 1) { unit(1); dropped }
		elseif(n == 2) { unit(2); }
		else { x = 1; unit2(none()); }`)
	if err != nil {
		t.Fatal(err)
	}
	if len(block.Children) != 4 {
		t.Fatalf("expected 4 children, got %d", len(block.Children))
	}
	ifb, ok := block.Children[0].(*IfBranch)
	if !ok || ifb.Condition != "(n == 0)" || len(ifb.Children) != 1 {
		t.Errorf("if branch = %#v", block.Children[0])
	}
	// text before '}' without ';' is not a statement
	eib, ok := block.Children[1].(*ElseIfBranch)
	if !ok || eib.Condition != "(n == 1)" || len(eib.Children) != 1 || eib.Children[0].(*Leaf).Text != "unit(1)" {
		t.Errorf("else if branch = %#v", block.Children[1])
	}
	if eib2, ok := block.Children[2].(*ElseIfBranch); !ok || eib2.Condition != "(n == 2)" {
		t.Errorf("elseif branch = %#v", block.Children[2])
	}
	if eb, ok := block.Children[3].(*ElseBranch); !ok || len(eb.Children) != 2 {
		t.Errorf("else branch = %#v", block.Children[3])
	}
}

func TestBuildTreeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"while loop", "while (x) { unit(1); }", ErrUnsupportedConstruct},
		{"bare block", "{ unit(1); }", ErrUnsupportedConstruct},
		{"keyword prefix", "iffy { unit(1); }", ErrUnsupportedConstruct},
		{"else with text", "if (a) { unit(1); } else unit(2) { }", ErrUnsupportedConstruct},
		{"unterminated", "if (a) { unit(1);", ErrUnterminatedBlock},
		{"nested unterminated", "if (a) { if (b) { unit(1); }", ErrUnterminatedBlock},
		{"stray brace", "unit(1); }", ErrUnbalancedBrace},
		{"if without condition", "if { unit(1); }", ErrMissingCondition},
		{"else if without condition", "if (a) { } else if { }", ErrMissingCondition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTree(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("expected *Error, got %T", err)
			}
		})
	}
}

func TestUnsupportedConstructNamesText(t *testing.T) {
	_, err := BuildTree("foreach (xs as x) { unit(x); }")
	var serr *Error
	if !errors.As(err, &serr) || serr.Text != "foreach (xs as x)" {
		t.Fatalf("got %v", err)
	}
}

func TestFlattenFusesChains(t *testing.T) {
	slots, err := Parse(`
		a = 1;
		if (a) { unit(1); }
		else if (b) { unit(2); }
		else { unit(3); }
		if (c) { unit(4); }
		if (d) { unit(5); } else { if (e) { unit(6); } }
		unit(7);`)
	if err != nil {
		t.Fatal(err)
	}

	kinds := make([]SlotKind, len(slots))
	for i, s := range slots {
		kinds[i] = s.Kind
	}
	want := []SlotKind{SlotStatement, SlotChain, SlotChain, SlotChain, SlotStatement}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}

	chain := slots[1]
	if len(chain.Arms) != 3 || chain.Arms[0].Condition != "(a)" || chain.Arms[1].Condition != "(b)" || !chain.Arms[2].IsElse {
		t.Errorf("first chain arms = %#v", chain.Arms)
	}
	if len(slots[2].Arms) != 1 {
		t.Errorf("lone if should be its own chain, got %d arms", len(slots[2].Arms))
	}
	nested := slots[3].Arms[1].Body
	if len(nested) != 1 || nested[0].Kind != SlotChain || nested[0].Arms[0].Condition != "(e)" {
		t.Errorf("nested chain = %#v", nested)
	}
	if got := slots[1].String(); got != "if (a) {...} else if (b) {...} else {...}" {
		t.Errorf("String() = %q", got)
	}
}

func TestFlattenOrphanBranches(t *testing.T) {
	for _, input := range []string{
		"else { unit(1); }",
		"unit(0); else if (a) { unit(1); }",
		"if (a) { } else { } else { }",
		"if (a) { } x = 1; else { }",
	} {
		if _, err := Parse(input); !errors.Is(err, ErrOrphanBranch) {
			t.Errorf("%q: expected ErrOrphanBranch, got %v", input, err)
		}
	}
}

func TestEmptyScript(t *testing.T) {
	for _, input := range []string{"", "   ", "// Do nothing;"} {
		slots, err := Parse(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if input == "// Do nothing;" {
			if len(slots) != 1 || slots[0].Text != "// Do nothing" {
				t.Errorf("comment slot = %#v", slots)
			}
			continue
		}
		if len(slots) != 0 {
			t.Errorf("%q: expected no slots, got %d", input, len(slots))
		}
	}
}

func TestEmptyStatementsDropped(t *testing.T) {
	slots, err := Parse("unit(1);; ; if (a) { ; } ;")
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %#v", slots)
	}
	if slots[0].Text != "unit(1)" {
		t.Errorf("first slot = %#v", slots[0])
	}
	if slots[1].Kind != SlotChain || len(slots[1].Arms) != 1 || len(slots[1].Arms[0].Body) != 0 {
		t.Errorf("chain slot = %#v", slots[1])
	}
}
