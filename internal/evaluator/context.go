package evaluator

import "strings"

// Context maps variable names to values for one evaluation step.
// It is immutable: With returns a new context and leaves the receiver
// untouched, so continuations captured by a capability (and possibly
// invoked several times) always see the bindings of their own step.
// Names keep first-insertion order. A nil *Context is an empty context.
type Context struct {
	names  []string
	values map[string]Object
}

func NewContext() *Context {
	return &Context{values: map[string]Object{}}
}

// ContextFrom builds a context from vars, ordered by names.
func ContextFrom(names []string, vars map[string]Object) *Context {
	c := NewContext()
	for _, n := range names {
		if v, ok := vars[n]; ok {
			c = c.With(n, v)
		}
	}
	return c
}

func (c *Context) Get(name string) (Object, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.values[name]
	return v, ok
}

// With returns a context where name is bound to v. Rebinding an
// existing name keeps its original position.
func (c *Context) With(name string, v Object) *Context {
	next := c.Copy()
	if _, ok := next.values[name]; !ok {
		next.names = append(next.names, name)
	}
	next.values[name] = v
	return next
}

// Copy returns a detached context with the same bindings.
func (c *Context) Copy() *Context {
	if c == nil {
		return NewContext()
	}
	next := &Context{
		names:  make([]string, len(c.names), len(c.names)+1),
		values: make(map[string]Object, len(c.values)+1),
	}
	copy(next.names, c.names)
	for k, v := range c.values {
		next.values[k] = v
	}
	return next
}

func (c *Context) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

func (c *Context) Inspect() string {
	var b strings.Builder
	b.WriteString("{")
	for i, n := range c.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteString(": ")
		b.WriteString(c.values[n].Inspect())
	}
	b.WriteString("}")
	return b.String()
}
