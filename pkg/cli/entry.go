// Package cli implements the monadic command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/funvibe/monadic/internal/capability"
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/monad"
	"github.com/funvibe/monadic/internal/term"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1 // evaluation or runtime failure
	exitUsage   = 2 // bad flags, unreadable input or configuration
)

// Run is the entry point of the monadic binary.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(exitFailure)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Main(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Main runs the command line in args (without the program name) and
// returns the process exit code.
func Main(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if handleHelp(args, stdout) {
		return exitOK
	}
	if handleVersion(args, stdout) {
		return exitOK
	}

	cmd := ""
	if len(args) > 0 {
		switch args[0] {
		case "run", "repl", "serve", "remote", "trace", "capabilities":
			cmd, args = args[0], args[1:]
		}
	}

	o, err := parseOptions(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Use 'monadic help' for usage")
		return exitUsage
	}

	switch cmd {
	case "run":
		return handleRun(ctx, o, stdin, stdout, stderr)
	case "repl":
		return handleRepl(ctx, o, stdout, stderr)
	case "serve":
		return handleServe(ctx, o, stdout, stderr)
	case "remote":
		return handleRemote(ctx, o, stdin, stdout, stderr)
	case "trace":
		return handleTrace(o, stdout, stderr)
	case "capabilities":
		return handleCapabilities(stdout)
	}

	// Bare invocation: a script argument, -e or piped input runs it; an
	// interactive terminal gets the REPL.
	if len(o.args) == 0 && o.eval == "" && term.IsTerminal(stdin) {
		return handleRepl(ctx, o, stdout, stderr)
	}
	return handleRun(ctx, o, stdin, stdout, stderr)
}

func handleHelp(args []string, stdout io.Writer) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "help", "-h", "-help", "--help":
	default:
		return false
	}
	if len(args) > 1 && args[1] == "capabilities" {
		handleCapabilities(stdout)
		return true
	}
	fmt.Fprint(stdout, usage)
	return true
}

func handleVersion(args []string, stdout io.Writer) bool {
	if len(args) != 1 {
		return false
	}
	switch args[0] {
	case "version", "-version", "--version":
		fmt.Fprintln(stdout, "monadic "+config.Version)
		return true
	}
	return false
}

// handleCapabilities lists the registered capabilities and the optional
// operations each one provides.
func handleCapabilities(stdout io.Writer) int {
	for _, name := range capability.Names() {
		c, err := capability.Lookup(name, io.Discard)
		if err != nil {
			continue
		}
		d, err := monad.Describe(c)
		if err != nil {
			fmt.Fprintf(stdout, "  %-14s invalid: %v\n", name, err)
			continue
		}
		var ops []string
		for _, op := range []struct {
			name string
			has  bool
		}{
			{monad.OpUnit2, d.HasUnit2()},
			{monad.OpZero, d.HasZero()},
			{monad.OpCombine, d.HasCombine()},
			{monad.OpDelay, d.HasDelay()},
			{monad.OpRun, d.HasRun()},
		} {
			if op.has {
				ops = append(ops, op.name)
			}
		}
		fmt.Fprintf(stdout, "  %-14s %-8s %s\n", name, d.Tag(), strings.Join(ops, " "))
	}
	return exitOK
}

const usage = `Usage: monadic <command> [flags] [script]

Commands:
  run <script>      evaluate a script file ("-" or none reads stdin)
  repl              interactive prompt
  serve             serve monadic.Evaluator over gRPC
  remote <script>   evaluate a script on a running server
  trace [eval-id]   list recorded evaluations or print one's events
  capabilities      list capabilities and their optional operations
  help, version

Flags:
  -m, --capability <name>  capability to evaluate with (default maybe)
  -e, --eval <script>      script text instead of a file
  --config <file>          configuration file (default: monadic.yaml, searched upward)
  --context <file>         YAML mapping of initial script variables
  --state <yaml>           initial state used to run a STATE result
  --take <n>               elements printed from a lazy sequence
  --trace-db <file>        record capability events in a SQLite database
  --addr <host:port>       server address for serve and remote
  --watch                  re-run the script when the file changes
  -v, --verbose            log every capability event to stderr
  --no-color               plain diagnostics
`
