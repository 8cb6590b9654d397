package script

import (
	"strings"

	"github.com/funvibe/monadic/internal/config"
)

type frameKind int

const (
	rootFrame frameKind = iota
	ifFrame
	elseIfFrame
	elseFrame
)

type frame struct {
	kind      frameKind
	condition string
	offset    int
	children  []Node
}

func (f *frame) node() Node {
	switch f.kind {
	case ifFrame:
		return &IfBranch{Condition: f.condition, Children: f.children, Offset: f.offset}
	case elseIfFrame:
		return &ElseIfBranch{Condition: f.condition, Children: f.children, Offset: f.offset}
	default:
		return &ElseBranch{Children: f.children, Offset: f.offset}
	}
}

// BuildTree splits script text into a statement tree. ';' ends a
// statement, '{' opens a block whose header must be if, else if, elseif
// or else, and '}' closes it. Quoted strings are copied verbatim, so
// separators inside them are not structure. Text not ended by ';' is
// dropped, both before a '}' and at the end of the input.
func BuildTree(text string) (*Block, error) {
	frames := []*frame{{kind: rootFrame}}
	var buf strings.Builder
	bufStart := 0

	cur := func() *frame { return frames[len(frames)-1] }
	flushLeaf := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			f := cur()
			f.children = append(f.children, &Leaf{Text: s, Offset: bufStart})
		}
		buf.Reset()
	}

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if buf.Len() == 0 {
			bufStart = i
		}
		switch ch {
		case '\'', '"':
			end := skipQuoted(text, i)
			buf.WriteString(text[i:end])
			i = end - 1
		case ';':
			flushLeaf()
		case '{':
			f, err := classify(buf.String(), bufStart, i)
			if err != nil {
				return nil, err
			}
			frames = append(frames, f)
			buf.Reset()
		case '}':
			if len(frames) == 1 {
				return nil, &Error{Offset: i, Err: ErrUnbalancedBrace}
			}
			buf.Reset()
			closed := cur()
			frames = frames[:len(frames)-1]
			parent := cur()
			parent.children = append(parent.children, closed.node())
		default:
			buf.WriteByte(ch)
		}
	}

	if len(frames) > 1 {
		return nil, &Error{Offset: cur().offset, Err: ErrUnterminatedBlock}
	}
	return &Block{Children: frames[0].children}, nil
}

// skipQuoted returns the index just past the string literal starting at
// text[start]. An unterminated literal runs to the end of the text; the
// statement parser reports it.
func skipQuoted(text string, start int) int {
	quote := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(text)
}

// classify turns the text before '{' into a branch frame.
func classify(raw string, start, brace int) (*frame, error) {
	header := strings.TrimSpace(raw)
	start += len(raw) - len(strings.TrimLeft(raw, " \t\r\n"))
	if start > brace {
		start = brace
	}

	branch := func(kind frameKind, cond string) (*frame, error) {
		cond = strings.TrimSpace(cond)
		if cond == "" {
			return nil, &Error{Offset: start, Text: header, Err: ErrMissingCondition}
		}
		return &frame{kind: kind, condition: cond, offset: brace}, nil
	}

	switch {
	case hasKeyword(header, config.IfKeyword):
		return branch(ifFrame, header[len(config.IfKeyword):])
	case hasKeyword(header, config.ElseIfKeyword):
		return branch(elseIfFrame, header[len(config.ElseIfKeyword):])
	case hasKeyword(header, config.ElseKeyword):
		rest := strings.TrimSpace(header[len(config.ElseKeyword):])
		if rest == "" {
			return &frame{kind: elseFrame, offset: brace}, nil
		}
		if hasKeyword(rest, config.IfKeyword) {
			return branch(elseIfFrame, rest[len(config.IfKeyword):])
		}
	}
	return nil, &Error{Offset: start, Text: header, Err: ErrUnsupportedConstruct}
}

// hasKeyword reports whether s starts with kw followed by a word boundary.
func hasKeyword(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	return len(s) == len(kw) || !isIdentByte(s[len(kw)])
}

func isIdentByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
