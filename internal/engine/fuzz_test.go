package engine_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/funvibe/monadic/internal/capability"
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/fuzzgen"
)

// FuzzEvaluate runs generated Maybe scripts twice on one compiled
// program: both runs must agree, results must carry the capability's
// tag and failures must map to a diagnostic.
func FuzzEvaluate(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{4, 2, 1, 0, 3, 5, 6, 4, 4, 1})
	f.Add([]byte("monadic"))

	c, err := capability.Lookup(config.MaybeCapability, io.Discard)
	if err != nil {
		f.Fatal(err)
	}
	e, err := engine.New(c)
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		src := fuzzgen.NewFromData(data).GenerateScript()
		prog, err := e.Compile(src)
		if err != nil {
			t.Fatalf("generated script does not compile: %v\n%s", err, src)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		first, err1 := e.RunContext(ctx, prog, nil)
		second, err2 := e.RunContext(ctx, prog, nil)

		if (err1 == nil) != (err2 == nil) {
			t.Fatalf("runs disagree: %v / %v\n%s", err1, err2, src)
		}
		if err1 != nil {
			if d := engine.Diagnose(src, err1); d == nil || d.Code == "" {
				t.Fatalf("no diagnostic for %v", err1)
			}
			return
		}
		if first.Inspect() != second.Inspect() {
			t.Fatalf("runs disagree: %s / %s\n%s", first.Inspect(), second.Inspect(), src)
		}
		if first.Type() != capability.MAYBE_OBJ {
			t.Fatalf("result %s has type %s\n%s", first.Inspect(), first.Type(), src)
		}
	})
}
