package parser_test

import (
	"errors"
	"testing"

	"github.com/funvibe/monadic/internal/ast"
	"github.com/funvibe/monadic/internal/diagnostics"
	"github.com/funvibe/monadic/internal/parser"
)

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b * c", "(a + (b * c))"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b % c", "((a * b) % c)"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a || b && c", "(a || (b && c))"},
		{"(a + b) * c", "((a + b) * c)"},
		{"x = y = 1 + 2", "x = y = (1 + 2)"},
		{"x += 2 * 3", "x = (x + (2 * 3))"},
		{"n %= 2", "n = (n % 2)"},
		{"add(a, b * c)[0]", "(add(a, (b * c))[0])"},
		{"[1, 'two', 3.5,]", `[1, "two", 3.5]`},
		{"unit(x >= 10)", "unit((x >= 10))"},
		{"f()", "f()"},
		{"bind('n', some(1))", `bind("n", some(1))`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, err := parser.ParseStatement(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := stmt.String(); got != tt.expected {
				t.Errorf("expected=%q, got=%q", tt.expected, got)
			}
		})
	}
}

func TestEmptyStatement(t *testing.T) {
	for _, input := range []string{"", "   ", "// only a comment", "/* block */"} {
		stmt, err := parser.ParseStatement(input)
		if err != nil || stmt != nil {
			t.Errorf("%q: expected (nil, nil), got (%v, %v)", input, stmt, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
	}{
		{"1 2", diagnostics.ErrP001},
		{"(1 + 2) = 3", diagnostics.ErrP002},
		{"f(1) += 1", diagnostics.ErrP002},
		{"* 3", diagnostics.ErrP003},
		{"f(", diagnostics.ErrP003},
		{"(1 + 2", diagnostics.ErrP004},
		{"a[1", diagnostics.ErrP004},
		{"a # b", diagnostics.ErrP005},
		{"x = 1; y = 2", diagnostics.ErrP005},
		{`"open`, diagnostics.ErrP006},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parser.ParseStatement(tt.input)
			if err == nil {
				t.Fatalf("expected error %s, got none", tt.code)
			}
			var diag *diagnostics.DiagnosticError
			if !errors.As(err, &diag) {
				t.Fatalf("expected *DiagnosticError, got %T", err)
			}
			if diag.Code != tt.code {
				t.Errorf("expected code %s, got %s (%v)", tt.code, diag.Code, err)
			}
		})
	}
}

func TestParseExpressionRejectsEmpty(t *testing.T) {
	if _, err := parser.ParseExpression("  "); err == nil {
		t.Fatal("expected error for empty condition")
	}
	expr, err := parser.ParseExpression("counter < 10")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := expr.(*ast.InfixExpression); !ok {
		t.Errorf("expected infix expression, got %T", expr)
	}
}

func TestCalls(t *testing.T) {
	stmt, err := parser.ParseStatement("unit(max(a, len(xs)) + 1)")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, call := range ast.Calls(stmt) {
		name, _ := call.Callee()
		names = append(names, name)
	}
	want := []string{"unit", "max", "len"}
	if len(names) != len(want) {
		t.Fatalf("calls = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
