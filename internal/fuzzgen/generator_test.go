package fuzzgen

import (
	"strings"
	"testing"
)

func TestGeneratorIsDeterministic(t *testing.T) {
	data := []byte{0, 3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9}
	a := NewFromData(data).GenerateScript()
	b := NewFromData(data).GenerateScript()
	if a != b {
		t.Fatalf("same input gave different scripts:\n%s\n---\n%s", a, b)
	}
	if New(42).GenerateScript() != New(42).GenerateScript() {
		t.Fatal("same seed gave different scripts")
	}
}

func TestExhaustedSourceStillTerminates(t *testing.T) {
	got := NewFromData(nil).GenerateScript()
	if got != "bind(v1, none());\n\t" {
		t.Errorf("script from empty input = %q", got)
	}
}

func TestGeneratedScriptsBalance(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		s := New(seed).GenerateScript()
		if strings.Count(s, "{") != strings.Count(s, "}") {
			t.Fatalf("seed %d: unbalanced braces:\n%s", seed, s)
		}
		if !strings.HasSuffix(strings.TrimSpace(s), ";") && !strings.HasSuffix(strings.TrimSpace(s), "}") {
			t.Fatalf("seed %d: unterminated last statement:\n%s", seed, s)
		}
	}
}
