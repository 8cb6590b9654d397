package cli

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/evaluator"
)

type fakePrompter struct {
	lines   []string
	prompts []string
	history []string
}

func (f *fakePrompter) Prompt(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	return line, nil
}

func (f *fakePrompter) AppendHistory(item string) { f.history = append(f.history, item) }

func newTestSession(t *testing.T) (*session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	r, err := newRunner(&options{noColor: true}, config.Default(), &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	s, err := newSession(r, evaluator.NewContext())
	if err != nil {
		t.Fatal(err)
	}
	return s, &out, &errOut
}

func TestReplSession(t *testing.T) {
	s, out, errOut := newTestSession(t)
	p := &fakePrompter{lines: []string{
		"if (1 > 0) {",
		"  unit(1);",
		"} else {",
		"  unit(0);",
		"}",
		":cap list",
		"unit(5)",
		":set y 7",
		"unit(y)",
		":ctx",
		":reset",
		":ctx",
		":quit",
		"unit(99)",
	}}
	s.loop(context.Background(), p)

	want := "Some(1)\ncapability: list\n[5]\n[7]\n  y: INTEGER = 7\ncontext reset\n(empty context)\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors: %s", errOut.String())
	}
	if len(p.lines) != 1 {
		t.Errorf(":quit should stop reading, %d line(s) left", len(p.lines))
	}
	wantPrompts := []string{config.DefaultPrompt, config.ContinuePrompt, config.ContinuePrompt, config.ContinuePrompt, config.ContinuePrompt}
	if !reflect.DeepEqual(p.prompts[:5], wantPrompts) {
		t.Errorf("prompts = %q", p.prompts[:5])
	}
	if len(p.history) != 3 || !strings.Contains(p.history[0], "} else {") {
		t.Errorf("history = %q", p.history)
	}
}

func TestReplErrorsKeepSession(t *testing.T) {
	s, out, errOut := newTestSession(t)
	p := &fakePrompter{lines: []string{
		"unit(missing);",
		":cap nope",
		":bogus",
		"unit(2);",
	}}
	s.loop(context.Background(), p)

	if !strings.Contains(errOut.String(), "error [E005]") || !strings.Contains(errOut.String(), "error [E007]") {
		t.Errorf("stderr:\n%s", errOut.String())
	}
	if !strings.Contains(out.String(), "Unknown command: :bogus") {
		t.Errorf("stdout:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "Some(2)\n\n") {
		t.Errorf("session should continue with maybe after errors:\n%s", out.String())
	}
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"unit(1);", false},
		{"if (x) {", true},
		{"if (x) { unit(1); }", false},
		{"unit([1,", true},
		{"unit('{');", false},
		{`unit("\"{");`, false},
		{"unit(1); }", false},
	}
	for _, tt := range tests {
		if got := needsMoreInput(tt.input); got != tt.want {
			t.Errorf("needsMoreInput(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTerminate(t *testing.T) {
	tests := map[string]string{
		"unit(1)":              "unit(1);",
		"unit(1);":             "unit(1);",
		"if (x) { unit(1); }":  "if (x) { unit(1); }",
		"  ":                   "  ",
		"unit(1); unit(2)  \n": "unit(1); unit(2)  \n;",
	}
	for in, want := range tests {
		if got := terminate(in); got != want {
			t.Errorf("terminate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestComplete(t *testing.T) {
	s, _, _ := newTestSession(t)
	got := s.complete("bind(x, so")
	if !reflect.DeepEqual(got, []string{"bind(x, some"}) {
		t.Errorf("complete = %q", got)
	}
	if got := s.complete("unit(1); "); got != nil {
		t.Errorf("complete after space = %q", got)
	}
	got = s.complete("un")
	if !reflect.DeepEqual(got, []string{"unit", "unit2"}) {
		t.Errorf("complete(un) = %q", got)
	}
}
