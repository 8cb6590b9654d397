package evaluator

// EvalResult is what evaluating one statement slot produced. Exactly one
// of the variants below is returned per slot.
type EvalResult interface {
	evalResult()
}

// NoResult is a plain statement; evaluation continues under Context.
type NoResult struct {
	Context *Context
}

// UnitResult carries the argument of unit(v).
type UnitResult struct {
	Value Object
}

// Unit2Result carries the argument of unit2(m), or the value of a
// selected if/else arm.
type Unit2Result struct {
	Value Object
}

// BindResult carries bind(name, m).
type BindResult struct {
	Name  string
	Value Object
}

// DoResult carries do_(m).
type DoResult struct {
	Value Object
}

func (NoResult) evalResult()    {}
func (UnitResult) evalResult()  {}
func (Unit2Result) evalResult() {}
func (BindResult) evalResult()  {}
func (DoResult) evalResult()    {}
