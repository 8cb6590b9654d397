package evaluator

// BuiltinFunction is the Go implementation behind a script-visible function.
type BuiltinFunction func(args ...Object) (Object, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function " + b.Name }

// Thunk is a delayed computation. Forcing runs Fn every time; nothing
// is memoized.
type Thunk struct {
	Fn func() (Object, error)
}

func NewThunk(fn func() (Object, error)) *Thunk { return &Thunk{Fn: fn} }

func (t *Thunk) Type() ObjectType { return THUNK_OBJ }
func (t *Thunk) Inspect() string  { return "<thunk>" }

func (t *Thunk) Force() (Object, error) { return t.Fn() }
