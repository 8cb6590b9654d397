package evaluator

import (
	"fmt"
	"sort"
)

// FromGo converts plain Go data (as produced by yaml.Unmarshal or
// structpb.Struct.AsMap) to runtime values.
func FromGo(data interface{}) (Object, error) {
	switch v := data.(type) {
	case nil:
		return NIL, nil
	case Object:
		return v, nil
	case bool:
		return nativeBoolToBooleanObject(v), nil
	case int:
		return &Integer{Value: int64(v)}, nil
	case int32:
		return &Integer{Value: int64(v)}, nil
	case int64:
		return &Integer{Value: v}, nil
	case uint64:
		return &Integer{Value: int64(v)}, nil
	case float64:
		// structpb carries every number as a double
		if v == float64(int64(v)) {
			return &Integer{Value: int64(v)}, nil
		}
		return &Float{Value: v}, nil
	case string:
		return &String{Value: v}, nil
	case []interface{}:
		elements := make([]Object, len(v))
		for i, item := range v {
			obj, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			elements[i] = obj
		}
		return NewList(elements), nil
	case map[string]interface{}:
		fields := make(map[string]Object, len(v))
		for k, val := range v {
			obj, err := FromGo(val)
			if err != nil {
				return nil, err
			}
			fields[k] = obj
		}
		return NewRecord(fields), nil
	case map[interface{}]interface{}:
		fields := make(map[string]Object, len(v))
		for k, val := range v {
			obj, err := FromGo(val)
			if err != nil {
				return nil, err
			}
			fields[fmt.Sprintf("%v", k)] = obj
		}
		return NewRecord(fields), nil
	}
	return nil, fmt.Errorf("unsupported value type %T", data)
}

// ToGo converts a runtime value to plain Go data. Values without a data
// representation (builtins, thunks, monadic values) become their Inspect
// string.
func ToGo(obj Object) interface{} {
	switch o := obj.(type) {
	case nil, *Nil:
		return nil
	case *Boolean:
		return o.Value
	case *Integer:
		return o.Value
	case *Float:
		return o.Value
	case *String:
		return o.Value
	case *List:
		out := make([]interface{}, len(o.Elements))
		for i, el := range o.Elements {
			out[i] = ToGo(el)
		}
		return out
	case *Record:
		out := make(map[string]interface{}, len(o.Fields))
		for k, v := range o.Fields {
			out[k] = ToGo(v)
		}
		return out
	}
	return obj.Inspect()
}

// ContextFromMap builds a context from plain Go data with names sorted,
// since Go maps carry no order.
func ContextFromMap(vars map[string]interface{}) (*Context, error) {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	ctx := NewContext()
	for _, n := range names {
		obj, err := FromGo(vars[n])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		ctx = ctx.With(n, obj)
	}
	return ctx, nil
}
