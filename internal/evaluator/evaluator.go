package evaluator

import (
	"io"
	"os"

	"github.com/funvibe/monadic/internal/ast"
	"github.com/funvibe/monadic/internal/config"
)

// Lifter wraps a plain value into the active monad. It backs unit(v)
// when unit appears inside a larger expression rather than as a whole
// statement.
type Lifter func(v Object) (Object, error)

// Evaluator evaluates single statements of a monadic script. It holds no
// per-evaluation state: the same Evaluator may serve concurrent
// evaluations as long as no builtins are registered meanwhile.
type Evaluator struct {
	builtins map[string]*Builtin
	Lift     Lifter
	Out      io.Writer
}

func New() *Evaluator {
	e := &Evaluator{
		builtins: make(map[string]*Builtin),
		Out:      os.Stdout,
	}
	for _, b := range e.coreBuiltins() {
		e.Register(b)
	}
	for _, b := range YamlBuiltins() {
		e.Register(b)
	}
	return e
}

// Register adds or replaces a script-visible function.
func (e *Evaluator) Register(b *Builtin) {
	e.builtins[b.Name] = b
}

func (e *Evaluator) Builtin(name string) (*Builtin, bool) {
	b, ok := e.builtins[name]
	return b, ok
}

// BuiltinNames lists registered builtins, for REPL completion.
func (e *Evaluator) BuiltinNames() []string {
	names := make([]string, 0, len(e.builtins))
	for n := range e.builtins {
		names = append(names, n)
	}
	return names
}

// IsSpecialForm reports whether name is one of the statement forms the
// engine dispatches to a capability.
func IsSpecialForm(name string) bool {
	switch name {
	case config.UnitFormName, config.Unit2FormName, config.BindFormName,
		config.DoFormName, config.DoFormAliasName:
		return true
	}
	return false
}

// EvalStatement evaluates one statement and classifies it. A nil
// statement (blank or comment-only text) is a plain statement.
func (e *Evaluator) EvalStatement(stmt *ast.ExpressionStatement, ctx *Context) (EvalResult, error) {
	if stmt == nil || stmt.Expression == nil {
		return NoResult{Context: ctx}, nil
	}

	if call, ok := stmt.Expression.(*ast.CallExpression); ok {
		if name, ok := call.Callee(); ok && IsSpecialForm(name) {
			return e.evalSpecialForm(name, call, ctx)
		}
	}

	_, next, err := e.Eval(stmt.Expression, ctx)
	if err != nil {
		return nil, err
	}
	return NoResult{Context: next}, nil
}

func (e *Evaluator) evalSpecialForm(name string, call *ast.CallExpression, ctx *Context) (EvalResult, error) {
	want := 1
	if name == config.BindFormName {
		want = 2
	}
	if len(call.Arguments) != want {
		return nil, newError(call.Token, "%s expects %d argument(s), got %d", name, want, len(call.Arguments))
	}

	switch name {
	case config.UnitFormName, config.Unit2FormName, config.DoFormName, config.DoFormAliasName:
		v, _, err := e.Eval(call.Arguments[0], ctx)
		if err != nil {
			return nil, err
		}
		switch name {
		case config.UnitFormName:
			return UnitResult{Value: v}, nil
		case config.Unit2FormName:
			return Unit2Result{Value: v}, nil
		default:
			return DoResult{Value: v}, nil
		}
	default: // bind
		varName, err := e.bindName(call.Arguments[0], ctx)
		if err != nil {
			return nil, err
		}
		v, _, err := e.Eval(call.Arguments[1], ctx)
		if err != nil {
			return nil, err
		}
		return BindResult{Name: varName, Value: v}, nil
	}
}

// bindName accepts bind(x, m) and bind('x', m). Any other expression must
// evaluate to a string.
func (e *Evaluator) bindName(arg ast.Expression, ctx *Context) (string, error) {
	if id, ok := arg.(*ast.Identifier); ok {
		return id.Value, nil
	}
	v, _, err := e.Eval(arg, ctx)
	if err != nil {
		return "", err
	}
	s, ok := v.(*String)
	if !ok || s.Value == "" {
		return "", newError(arg.GetToken(), "bind name must be an identifier or a non-empty string, got %s", getTypeName(v))
	}
	return s.Value, nil
}

// EvalCondition evaluates a branch condition to a boolean.
func (e *Evaluator) EvalCondition(cond ast.Expression, ctx *Context) (bool, error) {
	v, _, err := e.Eval(cond, ctx)
	if err != nil {
		return false, err
	}
	return IsTruthy(v), nil
}

// Eval evaluates an expression. Assignments produce a new context; the
// returned context is ctx itself when nothing was assigned.
func (e *Evaluator) Eval(node ast.Expression, ctx *Context) (Object, *Context, error) {
	switch node := node.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}, ctx, nil
	case *ast.FloatLiteral:
		return &Float{Value: node.Value}, ctx, nil
	case *ast.StringLiteral:
		return &String{Value: node.Value}, ctx, nil
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value), ctx, nil
	case *ast.NilLiteral:
		return NIL, ctx, nil
	case *ast.Identifier:
		return e.evalIdentifier(node, ctx)
	case *ast.ListLiteral:
		elements, next, err := e.evalExpressions(node.Elements, ctx)
		if err != nil {
			return nil, ctx, err
		}
		return NewList(elements), next, nil
	case *ast.PrefixExpression:
		right, next, err := e.Eval(node.Right, ctx)
		if err != nil {
			return nil, ctx, err
		}
		res, err := e.evalPrefixExpression(node, right)
		return res, next, err
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, ctx)
	case *ast.IndexExpression:
		return e.evalIndexExpression(node, ctx)
	case *ast.AssignExpression:
		v, next, err := e.Eval(node.Value, ctx)
		if err != nil {
			return nil, ctx, err
		}
		if IsSpecialForm(node.Name.Value) {
			return nil, ctx, newError(node.Token, "cannot assign to %s", node.Name.Value)
		}
		return v, next.With(node.Name.Value, v), nil
	case *ast.CallExpression:
		return e.evalCallExpression(node, ctx)
	case nil:
		return NIL, ctx, nil
	}
	return nil, ctx, newError(node.GetToken(), "unsupported expression %T", node)
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, ctx *Context) (Object, *Context, error) {
	if v, ok := ctx.Get(node.Value); ok {
		return v, ctx, nil
	}
	if b, ok := e.builtins[node.Value]; ok {
		return b, ctx, nil
	}
	return nil, ctx, newError(node.Token, "identifier not found: %s", node.Value)
}

func (e *Evaluator) evalExpressions(exps []ast.Expression, ctx *Context) ([]Object, *Context, error) {
	result := make([]Object, 0, len(exps))
	for _, exp := range exps {
		v, next, err := e.Eval(exp, ctx)
		if err != nil {
			return nil, ctx, err
		}
		ctx = next
		result = append(result, v)
	}
	return result, ctx, nil
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, ctx *Context) (Object, *Context, error) {
	if name, ok := node.Callee(); ok && IsSpecialForm(name) {
		if name != config.UnitFormName {
			return nil, ctx, newError(node.Token, "%s must be the whole statement", name)
		}
		if e.Lift == nil {
			return nil, ctx, newError(node.Token, "unit is not available here")
		}
		if len(node.Arguments) != 1 {
			return nil, ctx, newError(node.Token, "unit expects 1 argument(s), got %d", len(node.Arguments))
		}
		v, next, err := e.Eval(node.Arguments[0], ctx)
		if err != nil {
			return nil, ctx, err
		}
		lifted, err := e.Lift(v)
		if err != nil {
			return nil, ctx, &RuntimeError{Token: node.Token, Message: err.Error(), Err: err}
		}
		return lifted, next, nil
	}

	fn, next, err := e.Eval(node.Function, ctx)
	if err != nil {
		return nil, ctx, err
	}
	args, next, err := e.evalExpressions(node.Arguments, next)
	if err != nil {
		return nil, ctx, err
	}
	res, err := e.Apply(fn, args)
	if err != nil {
		if _, ok := err.(*RuntimeError); ok {
			return nil, ctx, err
		}
		return nil, ctx, &RuntimeError{Token: node.Token, Message: node.Function.String() + ": " + err.Error(), Err: err}
	}
	return res, next, nil
}

// Apply calls a builtin or forces a thunk.
func (e *Evaluator) Apply(fn Object, args []Object) (Object, error) {
	switch fn := fn.(type) {
	case *Builtin:
		res, err := fn.Fn(args...)
		if err != nil {
			return nil, err
		}
		if res == nil {
			return NIL, nil
		}
		return res, nil
	case *Thunk:
		if len(args) != 0 {
			return nil, newError(tokenless, "thunk takes no arguments, got %d", len(args))
		}
		return fn.Force()
	}
	return nil, newError(tokenless, "not a function: %s", getTypeName(fn))
}
