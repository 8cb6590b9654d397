package evaluator

import (
	"math"
	"strings"

	"github.com/funvibe/monadic/internal/ast"
)

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, right Object) (Object, error) {
	switch node.Operator {
	case "!":
		return nativeBoolToBooleanObject(!IsTruthy(right)), nil
	case "-":
		switch r := right.(type) {
		case *Integer:
			return &Integer{Value: -r.Value}, nil
		case *Float:
			return &Float{Value: -r.Value}, nil
		}
		return nil, newError(node.Token, "unknown operator: -%s", getTypeName(right))
	}
	return nil, newError(node.Token, "unknown operator: %s%s", node.Operator, getTypeName(right))
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, ctx *Context) (Object, *Context, error) {
	left, next, err := e.Eval(node.Left, ctx)
	if err != nil {
		return nil, ctx, err
	}

	// && and || short-circuit
	switch node.Operator {
	case "&&":
		if !IsTruthy(left) {
			return FALSE, next, nil
		}
		right, next, err := e.Eval(node.Right, next)
		if err != nil {
			return nil, ctx, err
		}
		return nativeBoolToBooleanObject(IsTruthy(right)), next, nil
	case "||":
		if IsTruthy(left) {
			return TRUE, next, nil
		}
		right, next, err := e.Eval(node.Right, next)
		if err != nil {
			return nil, ctx, err
		}
		return nativeBoolToBooleanObject(IsTruthy(right)), next, nil
	}

	right, next, err := e.Eval(node.Right, next)
	if err != nil {
		return nil, ctx, err
	}
	res, err := BinaryOp(node.Operator, left, right)
	if err != nil {
		if re, ok := err.(*RuntimeError); ok && re.Token.Line == 0 {
			re.Token = node.Token
		}
		return nil, ctx, err
	}
	return res, next, nil
}

// BinaryOp applies a non-logical infix operator.
func BinaryOp(op string, left, right Object) (Object, error) {
	switch op {
	case "==":
		return nativeBoolToBooleanObject(ObjectsEqual(left, right)), nil
	case "!=":
		return nativeBoolToBooleanObject(!ObjectsEqual(left, right)), nil
	}

	switch l := left.(type) {
	case *Integer:
		if r, ok := right.(*Integer); ok {
			return evalIntegerInfix(op, l.Value, r.Value)
		}
	case *String:
		if r, ok := right.(*String); ok {
			return evalStringInfix(op, l.Value, r.Value)
		}
	case *List:
		if r, ok := right.(*List); ok && op == "+" {
			return concatLists(l, r), nil
		}
	}

	if lf, rf, ok := numericPair(left, right); ok {
		return evalFloatInfix(op, lf, rf)
	}

	// "step " + 3 renders the non-string side
	if op == "+" {
		_, ls := left.(*String)
		_, rs := right.(*String)
		if ls || rs {
			return &String{Value: Display(left) + Display(right)}, nil
		}
	}

	return nil, newError(tokenless, "type mismatch: %s %s %s", getTypeName(left), op, getTypeName(right))
}

// Add is BinaryOp("+"). Capabilities use it to combine inner values.
func Add(left, right Object) (Object, error) {
	return BinaryOp("+", left, right)
}

func evalIntegerInfix(op string, l, r int64) (Object, error) {
	switch op {
	case "+":
		return &Integer{Value: l + r}, nil
	case "-":
		return &Integer{Value: l - r}, nil
	case "*":
		return &Integer{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, newError(tokenless, "division by zero")
		}
		if l%r == 0 {
			return &Integer{Value: l / r}, nil
		}
		return &Float{Value: float64(l) / float64(r)}, nil
	case "%":
		if r == 0 {
			return nil, newError(tokenless, "division by zero")
		}
		return &Integer{Value: l % r}, nil
	case "<":
		return nativeBoolToBooleanObject(l < r), nil
	case ">":
		return nativeBoolToBooleanObject(l > r), nil
	case "<=":
		return nativeBoolToBooleanObject(l <= r), nil
	case ">=":
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, newError(tokenless, "unknown operator: INTEGER %s INTEGER", op)
}

func evalFloatInfix(op string, l, r float64) (Object, error) {
	switch op {
	case "+":
		return &Float{Value: l + r}, nil
	case "-":
		return &Float{Value: l - r}, nil
	case "*":
		return &Float{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, newError(tokenless, "division by zero")
		}
		return &Float{Value: l / r}, nil
	case "%":
		if r == 0 {
			return nil, newError(tokenless, "division by zero")
		}
		return &Float{Value: math.Mod(l, r)}, nil
	case "<":
		return nativeBoolToBooleanObject(l < r), nil
	case ">":
		return nativeBoolToBooleanObject(l > r), nil
	case "<=":
		return nativeBoolToBooleanObject(l <= r), nil
	case ">=":
		return nativeBoolToBooleanObject(l >= r), nil
	}
	return nil, newError(tokenless, "unknown operator: FLOAT %s FLOAT", op)
}

func evalStringInfix(op string, l, r string) (Object, error) {
	switch op {
	case "+":
		return &String{Value: l + r}, nil
	case "<":
		return nativeBoolToBooleanObject(strings.Compare(l, r) < 0), nil
	case ">":
		return nativeBoolToBooleanObject(strings.Compare(l, r) > 0), nil
	case "<=":
		return nativeBoolToBooleanObject(strings.Compare(l, r) <= 0), nil
	case ">=":
		return nativeBoolToBooleanObject(strings.Compare(l, r) >= 0), nil
	}
	return nil, newError(tokenless, "unknown operator: STRING %s STRING", op)
}

func concatLists(l, r *List) *List {
	elements := make([]Object, 0, len(l.Elements)+len(r.Elements))
	elements = append(elements, l.Elements...)
	elements = append(elements, r.Elements...)
	return NewList(elements)
}

func (e *Evaluator) evalIndexExpression(node *ast.IndexExpression, ctx *Context) (Object, *Context, error) {
	left, next, err := e.Eval(node.Left, ctx)
	if err != nil {
		return nil, ctx, err
	}
	index, next, err := e.Eval(node.Index, next)
	if err != nil {
		return nil, ctx, err
	}

	switch l := left.(type) {
	case *List:
		i, ok := index.(*Integer)
		if !ok {
			return nil, ctx, newError(node.Token, "list index must be INTEGER, got %s", getTypeName(index))
		}
		idx := i.Value
		if idx < 0 {
			idx += int64(len(l.Elements))
		}
		if idx < 0 || idx >= int64(len(l.Elements)) {
			return nil, ctx, newError(node.Token, "index %d out of range [0:%d]", i.Value, len(l.Elements))
		}
		return l.Elements[idx], next, nil
	case *Record:
		k, ok := index.(*String)
		if !ok {
			return nil, ctx, newError(node.Token, "record key must be STRING, got %s", getTypeName(index))
		}
		v, ok := l.Fields[k.Value]
		if !ok {
			return NIL, next, nil
		}
		return v, next, nil
	case *String:
		i, ok := index.(*Integer)
		if !ok {
			return nil, ctx, newError(node.Token, "string index must be INTEGER, got %s", getTypeName(index))
		}
		runes := []rune(l.Value)
		if i.Value < 0 || i.Value >= int64(len(runes)) {
			return nil, ctx, newError(node.Token, "index %d out of range [0:%d]", i.Value, len(runes))
		}
		return &String{Value: string(runes[i.Value])}, next, nil
	}
	return nil, ctx, newError(node.Token, "index operator not supported: %s", getTypeName(left))
}
