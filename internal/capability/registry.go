// Package capability contains the monadic types scripts can target:
// optional values, lists, state transformers, lazy sequences, pausable
// coroutines and two tracing integers that show how delay and run shape
// an evaluation.
package capability

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/monad"
)

var ErrUnknownCapability = errors.New("unknown capability")

type factory func(out io.Writer) monad.Capability

var registry = map[string]factory{
	config.MaybeCapability:        func(io.Writer) monad.Capability { return Maybe{} },
	config.ListCapability:         func(io.Writer) monad.Capability { return List{} },
	config.StateCapability:        func(io.Writer) monad.Capability { return State{} },
	config.SeqCapability:          func(io.Writer) monad.Capability { return Seq{} },
	config.PauseCapability:        func(io.Writer) monad.Capability { return Pause{} },
	config.DelayTraceCapability:   func(out io.Writer) monad.Capability { return DelayTrace{Out: out} },
	config.NoDelayTraceCapability: func(out io.Writer) monad.Capability { return NoDelayTrace{Out: out} },
}

// Lookup returns the capability registered under name. out receives
// whatever the capability writes itself (the trace capabilities); nil
// means standard output.
func Lookup(name string, out io.Writer) (monad.Capability, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCapability, name)
	}
	if out == nil {
		out = os.Stdout
	}
	return f(out), nil
}

// Names lists the registered capabilities in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
