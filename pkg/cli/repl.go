package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/monadic/internal/capability"
	"github.com/funvibe/monadic/internal/config"
	"github.com/funvibe/monadic/internal/engine"
	"github.com/funvibe/monadic/internal/evaluator"
)

// prompter is the part of *liner.State the REPL loop uses.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type session struct {
	r       *runner
	capName string
	eng     *engine.Engine
	initial *evaluator.Context
	vars    *evaluator.Context
	input   strings.Builder
}

func newSession(r *runner, vars *evaluator.Context) (*session, error) {
	s := &session{r: r, initial: vars, vars: vars.Copy()}
	if err := s.setCapability(r.cfg.Capability); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) setCapability(name string) error {
	e, err := s.r.engine(name)
	if err != nil {
		return err
	}
	s.capName, s.eng = name, e
	return nil
}

func (s *session) prompt() string {
	if s.input.Len() > 0 {
		return config.ContinuePrompt
	}
	return config.DefaultPrompt
}

// loop reads until EOF or :quit. Input accumulates until its braces
// balance, then runs as one script.
func (s *session) loop(ctx context.Context, p prompter) {
	out := s.r.stdout
	for {
		line, err := p.Prompt(s.prompt())
		if err != nil {
			if err == liner.ErrPromptAborted {
				s.input.Reset()
				fmt.Fprintln(out, "^C")
				continue
			}
			if err != io.EOF {
				fmt.Fprintf(s.r.stderr, "Error reading input: %v\n", err)
			}
			fmt.Fprintln(out)
			return
		}

		trimmed := strings.TrimSpace(line)
		if s.input.Len() == 0 {
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				if s.command(trimmed) {
					return
				}
				continue
			}
		}

		if s.input.Len() > 0 {
			s.input.WriteString("\n")
		}
		s.input.WriteString(line)
		src := s.input.String()
		if needsMoreInput(src) {
			continue
		}
		s.input.Reset()
		p.AppendHistory(src)
		s.r.evaluate(ctx, "<repl>", s.eng, terminate(src), s.vars)
	}
}

// command runs a ':' command and reports whether the REPL should exit.
func (s *session) command(line string) bool {
	out := s.r.stdout
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true

	case ":help", ":h":
		fmt.Fprint(out, replHelp)

	case ":cap":
		if len(fields) == 1 {
			fmt.Fprintf(out, "capability: %s (available: %s)\n", s.capName, strings.Join(capability.Names(), ", "))
			return false
		}
		if err := s.setCapability(fields[1]); err != nil {
			s.r.reportError(err)
			return false
		}
		fmt.Fprintf(out, "capability: %s\n", s.capName)

	case ":ctx":
		names := s.vars.Names()
		if len(names) == 0 {
			fmt.Fprintln(out, "(empty context)")
			return false
		}
		sort.Strings(names)
		for _, name := range names {
			v, _ := s.vars.Get(name)
			fmt.Fprintf(out, "  %s: %s = %s\n", name, v.Type(), v.Inspect())
		}

	case ":set":
		rest := strings.TrimSpace(strings.TrimPrefix(line, ":set"))
		name, value, ok := strings.Cut(rest, " ")
		if !ok || name == "" {
			fmt.Fprintln(out, "usage: :set <name> <yaml value>")
			return false
		}
		var raw interface{}
		if err := yaml.Unmarshal([]byte(value), &raw); err != nil {
			s.r.reportError(fmt.Errorf("parsing value: %w", err))
			return false
		}
		v, err := evaluator.FromGo(raw)
		if err != nil {
			s.r.reportError(err)
			return false
		}
		s.vars = s.vars.With(name, v)

	case ":reset":
		s.vars = s.initial.Copy()
		fmt.Fprintln(out, "context reset")

	default:
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", fields[0])
	}
	return false
}

const replHelp = `REPL commands:
  :cap [name]         show or switch the capability
  :ctx                show the script context
  :set <name> <yaml>  add a context variable
  :reset              restore the initial context
  :help               show this help
  :quit               exit (or Ctrl+D)
`

// needsMoreInput reports whether src has an unclosed brace, bracket or
// parenthesis outside string literals.
func needsMoreInput(src string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if quote != 0 {
			switch ch {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			depth--
		}
	}
	return depth > 0
}

// terminate adds the ';' a one-line REPL entry usually leaves out.
func terminate(src string) string {
	t := strings.TrimSpace(src)
	if t == "" || strings.HasSuffix(t, ";") || strings.HasSuffix(t, "}") {
		return src
	}
	return src + ";"
}

func (s *session) complete(line string) []string {
	words := []string{
		config.UnitFormName, config.Unit2FormName, config.BindFormName, config.DoFormName,
		config.IfKeyword, config.ElseKeyword,
	}
	words = append(words, s.eng.BuiltinNames()...)
	words = append(words, s.vars.Names()...)

	start := strings.LastIndexAny(line, " \t(,;{") + 1
	prefix := line[start:]
	if prefix == "" {
		return nil
	}
	var matches []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			matches = append(matches, line[:start]+w)
		}
	}
	sort.Strings(matches)
	return matches
}

// handleRepl implements "monadic repl".
func handleRepl(ctx context.Context, o *options, stdout, stderr io.Writer) int {
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

	vars, err := o.initialContext(cfg)
	if err != nil {
		r.reportError(err)
		return exitUsage
	}
	s, err := newSession(r, vars)
	if err != nil {
		r.reportError(err)
		return exitFailure
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	historyFile := cfg.HistoryPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(stdout, "monadic %s (capability %s), :help for commands\n", config.Version, s.capName)
	s.loop(ctx, line)
	return exitOK
}
