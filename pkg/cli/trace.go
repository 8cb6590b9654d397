package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/funvibe/monadic/internal/tracestore"
)

// handleTrace implements "monadic trace": with no argument it lists the
// recorded evaluations, with an evaluation id it prints its events.
func handleTrace(o *options, stdout, stderr io.Writer) int {
	cfg, err := o.loadConfig(".")
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
	if cfg.TraceDB == "" {
		fmt.Fprintln(stderr, "Error: no trace database (set --trace-db or trace_db in monadic.yaml)")
		return exitUsage
	}

	store, err := tracestore.Open(cfg.TraceDB)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
	defer store.Close()

	if len(o.args) == 0 {
		ids, err := store.Evaluations()
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitFailure
		}
		for _, id := range ids {
			fmt.Fprintln(stdout, id)
		}
		return exitOK
	}

	id, err := uuid.Parse(o.args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid evaluation id %q: %v\n", o.args[0], err)
		return exitUsage
	}
	events, err := store.Events(id)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
	for _, ev := range events {
		fmt.Fprintf(stdout, "%3d %-8s %-8s %s\n", ev.Seq, ev.Op, ev.ValueType, ev.Statement)
	}
	return exitOK
}
