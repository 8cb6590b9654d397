package evaluator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/funvibe/monadic/internal/config"
)

func (e *Evaluator) coreBuiltins() []*Builtin {
	return []*Builtin{
		{Name: config.LenFuncName, Fn: builtinLen},
		{Name: config.HeadFuncName, Fn: builtinHead},
		{Name: config.TailFuncName, Fn: builtinTail},
		{Name: config.AppendFuncName, Fn: builtinAppend},
		{Name: config.PrependFuncName, Fn: builtinPrepend},
		{Name: config.ConcatFuncName, Fn: builtinConcat},
		{Name: config.RangeFuncName, Fn: builtinRange},
		{Name: config.StrFuncName, Fn: builtinStr},
		{Name: config.AbsFuncName, Fn: builtinAbs},
		{Name: config.MinFuncName, Fn: builtinMin},
		{Name: config.MaxFuncName, Fn: builtinMax},
		{Name: config.UUIDFuncName, Fn: builtinUUID},
		{Name: config.TypeOfFuncName, Fn: builtinTypeOf},
		{Name: config.PrintFuncName, Fn: e.builtinPrint},
	}
}

func checkArgs(name string, args []Object, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func listArg(name string, obj Object) (*List, error) {
	l, ok := obj.(*List)
	if !ok {
		return nil, fmt.Errorf("%s expects a LIST, got %s", name, getTypeName(obj))
	}
	return l, nil
}

func intArg(name string, obj Object) (int64, error) {
	i, ok := obj.(*Integer)
	if !ok {
		return 0, fmt.Errorf("%s expects an INTEGER, got %s", name, getTypeName(obj))
	}
	return i.Value, nil
}

func builtinLen(args ...Object) (Object, error) {
	if err := checkArgs(config.LenFuncName, args, 1); err != nil {
		return nil, err
	}
	switch arg := args[0].(type) {
	case *List:
		return &Integer{Value: int64(len(arg.Elements))}, nil
	case *String:
		return &Integer{Value: int64(len([]rune(arg.Value)))}, nil
	case *Record:
		return &Integer{Value: int64(len(arg.Fields))}, nil
	}
	return nil, fmt.Errorf("len not supported for %s", getTypeName(args[0]))
}

func builtinHead(args ...Object) (Object, error) {
	if err := checkArgs(config.HeadFuncName, args, 1); err != nil {
		return nil, err
	}
	l, err := listArg(config.HeadFuncName, args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Elements) == 0 {
		return nil, fmt.Errorf("head of empty list")
	}
	return l.Elements[0], nil
}

func builtinTail(args ...Object) (Object, error) {
	if err := checkArgs(config.TailFuncName, args, 1); err != nil {
		return nil, err
	}
	l, err := listArg(config.TailFuncName, args[0])
	if err != nil {
		return nil, err
	}
	if len(l.Elements) == 0 {
		return NewList(nil), nil
	}
	return NewList(append([]Object{}, l.Elements[1:]...)), nil
}

func builtinAppend(args ...Object) (Object, error) {
	if err := checkArgs(config.AppendFuncName, args, 2); err != nil {
		return nil, err
	}
	l, err := listArg(config.AppendFuncName, args[0])
	if err != nil {
		return nil, err
	}
	return concatLists(l, NewList([]Object{args[1]})), nil
}

func builtinPrepend(args ...Object) (Object, error) {
	if err := checkArgs(config.PrependFuncName, args, 2); err != nil {
		return nil, err
	}
	l, err := listArg(config.PrependFuncName, args[1])
	if err != nil {
		return nil, err
	}
	return concatLists(NewList([]Object{args[0]}), l), nil
}

func builtinConcat(args ...Object) (Object, error) {
	out := NewList(nil)
	for _, arg := range args {
		l, err := listArg(config.ConcatFuncName, arg)
		if err != nil {
			return nil, err
		}
		out = concatLists(out, l)
	}
	return out, nil
}

// range(n) is [0, n); range(a, b) is [a, b).
func builtinRange(args ...Object) (Object, error) {
	var from, to int64
	var err error
	switch len(args) {
	case 1:
		to, err = intArg(config.RangeFuncName, args[0])
	case 2:
		if from, err = intArg(config.RangeFuncName, args[0]); err == nil {
			to, err = intArg(config.RangeFuncName, args[1])
		}
	default:
		return nil, fmt.Errorf("range expects 1 or 2 arguments, got %d", len(args))
	}
	if err != nil {
		return nil, err
	}
	elements := []Object{}
	for i := from; i < to; i++ {
		elements = append(elements, &Integer{Value: i})
	}
	return NewList(elements), nil
}

func builtinStr(args ...Object) (Object, error) {
	if err := checkArgs(config.StrFuncName, args, 1); err != nil {
		return nil, err
	}
	return &String{Value: Display(args[0])}, nil
}

func builtinAbs(args ...Object) (Object, error) {
	if err := checkArgs(config.AbsFuncName, args, 1); err != nil {
		return nil, err
	}
	switch arg := args[0].(type) {
	case *Integer:
		if arg.Value < 0 {
			return &Integer{Value: -arg.Value}, nil
		}
		return arg, nil
	case *Float:
		if arg.Value < 0 {
			return &Float{Value: -arg.Value}, nil
		}
		return arg, nil
	}
	return nil, fmt.Errorf("abs expects a number, got %s", getTypeName(args[0]))
}

func builtinMin(args ...Object) (Object, error) { return extremum(config.MinFuncName, "<", args) }
func builtinMax(args ...Object) (Object, error) { return extremum(config.MaxFuncName, ">", args) }

// extremum accepts either several values or a single list.
func extremum(name, op string, args []Object) (Object, error) {
	if len(args) == 1 {
		if l, ok := args[0].(*List); ok {
			args = l.Elements
		}
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s of no values", name)
	}
	best := args[0]
	for _, arg := range args[1:] {
		better, err := BinaryOp(op, arg, best)
		if err != nil {
			return nil, err
		}
		if IsTruthy(better) {
			best = arg
		}
	}
	return best, nil
}

func builtinUUID(args ...Object) (Object, error) {
	if err := checkArgs(config.UUIDFuncName, args, 0); err != nil {
		return nil, err
	}
	return &String{Value: uuid.NewString()}, nil
}

func builtinTypeOf(args ...Object) (Object, error) {
	if err := checkArgs(config.TypeOfFuncName, args, 1); err != nil {
		return nil, err
	}
	return &String{Value: getTypeName(args[0])}, nil
}

func (e *Evaluator) builtinPrint(args ...Object) (Object, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = Display(arg)
	}
	if _, err := fmt.Fprintln(e.Out, strings.Join(parts, " ")); err != nil {
		return nil, err
	}
	return NIL, nil
}
