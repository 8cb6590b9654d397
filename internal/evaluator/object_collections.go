package evaluator

import (
	"sort"
	"strings"
)

// List is an immutable ordered collection.
type List struct {
	Elements []Object
}

func NewList(elements []Object) *List {
	if elements == nil {
		elements = []Object{}
	}
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Len() int { return len(l.Elements) }

// Record is a string-keyed mapping, produced by yaml_decode and by
// initial contexts loaded from YAML.
type Record struct {
	Fields map[string]Object
}

func NewRecord(fields map[string]Object) *Record {
	if fields == nil {
		fields = map[string]Object{}
	}
	return &Record{Fields: fields}
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	keys := r.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + r.Fields[k].Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Keys returns the field names in sorted order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
