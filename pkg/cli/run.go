package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/funvibe/monadic/internal/capability"
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/diagnostics"
	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/evaluator"
	"github.com/funvibe/monadic/internal/term"
	"github.com/funvibe/monadic/internal/token"
	"github.com/funvibe/monadic/internal/tracestore"
)

// runner evaluates scripts for the run, repl and watch commands.
type runner struct {
	cfg     *config.Config
	opts    *options
	stdout  io.Writer
	stderr  io.Writer
	palette term.Palette
	store   *tracestore.Store // nil without a trace database
	logger  *log.Logger       // nil unless verbose
	state   evaluator.Object  // initial state for STATE results
}

func newRunner(o *options, cfg *config.Config, stdout, stderr io.Writer) (*runner, error) {
	r := &runner{cfg: cfg, opts: o, stdout: stdout, stderr: stderr}
	if !o.noColor {
		r.palette = term.For(stderr)
	}

	state, err := o.initialState()
	if err != nil {
		return nil, err
	}
	r.state = state

	if cfg.Verbose {
		r.logger = log.New(stderr, "[trace] ", 0)
	}
	if cfg.TraceDB != "" {
		if r.store, err = tracestore.Open(cfg.TraceDB); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *runner) Close() error {
	if r.store == nil {
		return nil
	}
	if err := r.store.Err(); err != nil {
		fmt.Fprintf(r.stderr, "[WARN] trace events were lost: %v\n", err)
	}
	return r.store.Close()
}

// engine builds an engine for the named capability. Capability output
// and print go to stdout.
func (r *runner) engine(name string) (*engine.Engine, error) {
	c, err := capability.Lookup(name, r.stdout)
	if err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrE007, token.Token{}, name)
	}
	opts := []engine.Option{engine.WithOutput(r.stdout)}
	if r.store != nil {
		opts = append(opts, engine.WithTracer(r.store))
	}
	if r.logger != nil {
		opts = append(opts, engine.WithLogger(r.logger))
	}
	return engine.New(c, opts...)
}

// evaluate runs src and prints the rendered result, or the diagnostic
// on failure. It reports whether evaluation succeeded.
func (r *runner) evaluate(ctx context.Context, file string, e *engine.Engine, src string, vars *evaluator.Context) bool {
	v, err := e.EvaluateContext(ctx, src, vars)
	if err == nil {
		var text string
		text, err = capability.Render(v, capability.RenderOptions{Take: r.cfg.Take, InitialState: r.state})
		if err == nil {
			fmt.Fprintln(r.stdout, text)
			return true
		}
	}
	r.report(file, src, err)
	return false
}

func (r *runner) report(file, src string, err error) {
	d := engine.Diagnose(src, err)
	d.File = file
	fmt.Fprintln(r.stderr, r.palette.Diagnostic(d.Error()))
}

// reportError prints a failure that happened outside evaluation.
func (r *runner) reportError(err error) {
	if d, ok := err.(*diagnostics.DiagnosticError); ok {
		fmt.Fprintln(r.stderr, r.palette.Diagnostic(d.Error()))
		return
	}
	fmt.Fprintln(r.stderr, r.palette.Red("Error:"), err)
}

// readScript returns the script named by the arguments: -e text, a
// file, or standard input for "-" or no argument.
func readScript(o *options, stdin io.Reader) (name, src string, err error) {
	if o.eval != "" {
		return "<eval>", o.eval, nil
	}
	if len(o.args) == 0 || o.args[0] == "-" {
		if term.IsTerminal(stdin) {
			return "", "", fmt.Errorf("no script given (pass a file, -e or pipe one on stdin)")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	path := o.args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading script: %w", err)
	}
	return filepath.Clean(path), string(data), nil
}

// handleRun implements "monadic run".
func handleRun(ctx context.Context, o *options, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := o.loadConfig(".")
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
	r, err := newRunner(o, cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}
	defer r.Close()

	name, src, err := readScript(o, stdin)
	if err != nil {
		r.reportError(err)
		return exitUsage
	}
	if o.watch && (o.eval != "" || name == "<stdin>") {
		r.reportError(fmt.Errorf("--watch needs a script file"))
		return exitUsage
	}

	vars, err := o.initialContext(cfg)
	if err != nil {
		r.reportError(err)
		return exitUsage
	}
	e, err := r.engine(cfg.Capability)
	if err != nil {
		r.reportError(err)
		return exitFailure
	}

	ok := r.evaluate(ctx, name, e, src, vars)
	if !o.watch {
		if !ok {
			return exitFailure
		}
		return exitOK
	}

	fmt.Fprintf(stderr, "[WATCH] watching %s\n", name)
	err = watchFile(ctx, name, stderr, func() {
		data, err := os.ReadFile(name)
		if err != nil {
			r.reportError(err)
			return
		}
		fmt.Fprintf(stderr, "[WATCH] %s changed\n", name)
		r.evaluate(ctx, name, e, string(data), vars)
	})
	if err != nil {
		r.reportError(err)
		return exitFailure
	}
	return exitOK
}
