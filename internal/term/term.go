// Package term decides whether output goes to a color terminal and
// wraps text in ANSI escapes when it does.
package term

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// =============================================================================
// Color support detection
// =============================================================================

type fder interface {
	Fd() uintptr
}

// IsTerminal reports whether v is a file attached to a terminal (or a
// Cygwin/MSYS pty).
func IsTerminal(v interface{}) bool {
	f, ok := v.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorEnabled applies the NO_COLOR convention (https://no-color.org/)
// and TERM=dumb on top of the terminal check. getenv is os.Getenv
// outside tests.
func ColorEnabled(w io.Writer, getenv func(string) string) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	if getenv("NO_COLOR") != "" {
		return false
	}
	if getenv("TERM") == "dumb" {
		return false
	}
	return IsTerminal(w)
}

// =============================================================================
// ANSI escape code helpers
// =============================================================================

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Palette colors text only when Enabled.
type Palette struct {
	Enabled bool
}

// For returns the palette suited to w.
func For(w io.Writer) Palette {
	return Palette{Enabled: ColorEnabled(w, nil)}
}

func (p Palette) wrap(code, s string) string {
	if !p.Enabled || s == "" {
		return s
	}
	return code + s + reset
}

func (p Palette) Bold(s string) string   { return p.wrap(bold, s) }
func (p Palette) Dim(s string) string    { return p.wrap(dim, s) }
func (p Palette) Red(s string) string    { return p.wrap(red, s) }
func (p Palette) Green(s string) string  { return p.wrap(green, s) }
func (p Palette) Yellow(s string) string { return p.wrap(yellow, s) }
func (p Palette) Cyan(s string) string   { return p.wrap(cyan, s) }

// Diagnostic highlights the "error [CODE]" part of a formatted
// diagnostic line, leaving the position and message plain.
func (p Palette) Diagnostic(line string) string {
	if !p.Enabled {
		return line
	}
	i := strings.Index(line, "error [")
	if i < 0 {
		return p.Red(line)
	}
	j := strings.Index(line[i:], "]")
	if j < 0 {
		return p.Red(line)
	}
	end := i + j + 1
	return line[:i] + p.Red(p.Bold(line[i:end])) + line[end:]
}
