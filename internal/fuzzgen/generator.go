// Package fuzzgen turns fuzzer input into well-formed monadic scripts,
// so fuzz targets exercise evaluation rather than the syntax checks.
package fuzzgen

import (
	"fmt"
	"math/rand"
	"strings"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
}

// ByteSource uses a byte slice as a source of randomness. An exhausted
// source always answers 0.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 || s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

const (
	MaxDepth      = 3
	MaxStatements = 5
)

// Generator writes scripts over the Maybe helpers (some, none) and
// integer arithmetic. Variables are only read after a bind or an
// assignment made them visible.
type Generator struct {
	src   RandomSource
	depth int
	vars  []string
	next  int
}

func New(seed int64) *Generator {
	return &Generator{src: rand.New(rand.NewSource(seed))}
}

func NewFromData(data []byte) *Generator {
	return &Generator{src: &ByteSource{data: data}}
}

// GenerateScript returns a script whose statements all parse.
func (g *Generator) GenerateScript() string {
	var sb strings.Builder
	g.writeStatements(&sb)
	return sb.String()
}

func (g *Generator) writeStatements(sb *strings.Builder) {
	count := g.src.Intn(MaxStatements) + 1
	for i := 0; i < count; i++ {
		sb.WriteString(g.statement())
		sb.WriteString(g.noise())
	}
}

func (g *Generator) statement() string {
	switch g.src.Intn(7) {
	case 0:
		name := g.fresh()
		s := fmt.Sprintf("bind(%s, %s);", name, g.monadic())
		g.vars = append(g.vars, name)
		return s
	case 1:
		return fmt.Sprintf("do_(%s);", g.monadic())
	case 2:
		name := g.fresh()
		s := fmt.Sprintf("%s = %s;", name, g.integer())
		g.vars = append(g.vars, name)
		return s
	case 3:
		return fmt.Sprintf("unit2(%s);", g.monadic())
	case 4:
		if g.depth < MaxDepth {
			return g.chain()
		}
	}
	return fmt.Sprintf("unit(%s);", g.integer())
}

// chain writes an if / else if / else chain. Names bound inside an arm
// stay inside it.
func (g *Generator) chain() string {
	g.depth++
	defer func() { g.depth-- }()

	var sb strings.Builder
	arms := g.src.Intn(3) + 1
	for i := 0; i < arms; i++ {
		switch {
		case i == 0:
			fmt.Fprintf(&sb, "if (%s) {\n", g.condition())
		case i == arms-1 && g.src.Intn(2) == 0:
			sb.WriteString(" else {\n")
		case g.src.Intn(2) == 0:
			fmt.Fprintf(&sb, " elseif (%s) {\n", g.condition())
		default:
			fmt.Fprintf(&sb, " else if (%s) {\n", g.condition())
		}
		outer := len(g.vars)
		g.writeStatements(&sb)
		g.vars = g.vars[:outer]
		sb.WriteString("}")
	}
	sb.WriteString("\n")
	return sb.String()
}

func (g *Generator) monadic() string {
	switch g.src.Intn(4) {
	case 0:
		return "none()"
	case 1:
		return fmt.Sprintf("unit(%s)", g.integer())
	}
	return fmt.Sprintf("some(%s)", g.integer())
}

func (g *Generator) integer() string {
	if g.depth > MaxDepth {
		return g.atom()
	}
	switch g.src.Intn(4) {
	case 0:
		g.depth++
		defer func() { g.depth-- }()
		ops := []string{"+", "-", "*"}
		return fmt.Sprintf("(%s %s %s)", g.integer(), ops[g.src.Intn(len(ops))], g.integer())
	case 1:
		return fmt.Sprintf("len([%s, %s])", g.atom(), g.atom())
	}
	return g.atom()
}

func (g *Generator) atom() string {
	if len(g.vars) > 0 && g.src.Intn(2) == 0 {
		return g.vars[g.src.Intn(len(g.vars))]
	}
	return fmt.Sprint(g.src.Intn(10))
}

func (g *Generator) condition() string {
	ops := []string{"<", ">", "==", "!="}
	return fmt.Sprintf("%s %s %s", g.integer(), ops[g.src.Intn(len(ops))], g.integer())
}

func (g *Generator) fresh() string {
	g.next++
	return fmt.Sprintf("v%d", g.next)
}

// noise adds whitespace between statements now and then.
func (g *Generator) noise() string {
	switch g.src.Intn(10) {
	case 0:
		return "\n\t"
	case 1:
		return "  "
	}
	return "\n"
}
