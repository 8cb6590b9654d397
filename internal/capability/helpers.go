package capability

import (
	"fmt"

	"github.com/funvibe/monadic/internal/evaluator"
)

func checkArgs(name string, args []evaluator.Object, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func typeName(obj evaluator.Object) string {
	if obj == nil {
		return evaluator.NIL_OBJ
	}
	return string(obj.Type())
}

func wrongType(op string, want evaluator.ObjectType, got evaluator.Object) error {
	return fmt.Errorf("%s expects %s, got %s", op, want, typeName(got))
}

// forced returns the value behind a delayed computation, or v itself.
func forced(v evaluator.Object) (evaluator.Object, error) {
	if t, ok := v.(*evaluator.Thunk); ok {
		return t.Force()
	}
	return v, nil
}

func builtin(name string, fn evaluator.BuiltinFunction) *evaluator.Builtin {
	return &evaluator.Builtin{Name: name, Fn: fn}
}
