package term

import (
	"bytes"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"no color", map[string]string{"NO_COLOR": "1"}},
		{"dumb", map[string]string{"TERM": "dumb"}},
		{"not a terminal", map[string]string{"TERM": "xterm-256color"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ColorEnabled(&bytes.Buffer{}, env(tt.env)) {
				t.Error("color should be disabled")
			}
		})
	}
}

func TestPalette(t *testing.T) {
	off := Palette{}
	if got := off.Red("x"); got != "x" {
		t.Errorf("disabled palette colored %q", got)
	}

	on := Palette{Enabled: true}
	if got := on.Green("ok"); got != "\033[32mok\033[0m" {
		t.Errorf("Green = %q", got)
	}
	if got := on.Yellow(""); got != "" {
		t.Errorf("empty text wrapped: %q", got)
	}
}

func TestDiagnostic(t *testing.T) {
	line := "a.mds:2:1: error [S001]: unsupported control construct: while (x)"
	if got := (Palette{}).Diagnostic(line); got != line {
		t.Errorf("disabled palette changed the line: %q", got)
	}
	want := "a.mds:2:1: \033[31m\033[1merror [S001]\033[0m\033[0m: unsupported control construct: while (x)"
	if got := (Palette{Enabled: true}).Diagnostic(line); got != want {
		t.Errorf("Diagnostic = %q\nwant %q", got, want)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil is not a terminal")
	}
}
