package evaluator

// ObjectsEqual compares two runtime values structurally. Integers and
// floats compare by numeric value. Values of other types (builtins,
// thunks, capability values) are equal only when identical.
func ObjectsEqual(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, bf, ok := numericPair(a, b); ok && (a.Type() != b.Type()) {
		return af == bf
	}
	if a.Type() != b.Type() {
		return false
	}

	switch av := a.(type) {
	case *Integer:
		return av.Value == b.(*Integer).Value
	case *Float:
		return av.Value == b.(*Float).Value
	case *Boolean:
		return av.Value == b.(*Boolean).Value
	case *String:
		return av.Value == b.(*String).Value
	case *Nil:
		return true
	case *List:
		bv := b.(*List)
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !ObjectsEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Record:
		bv, ok := b.(*Record)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for k, v := range av.Fields {
			other, ok := bv.Fields[k]
			if !ok || !ObjectsEqual(v, other) {
				return false
			}
		}
		return true
	default:
		if eq, ok := a.(interface{ Equal(Object) bool }); ok {
			return eq.Equal(b)
		}
		return a == b
	}
}

// numericPair widens two numeric values to float64.
func numericPair(a, b Object) (float64, float64, bool) {
	af, ok := toFloat(a)
	if !ok {
		return 0, 0, false
	}
	bf, ok := toFloat(b)
	if !ok {
		return 0, 0, false
	}
	return af, bf, true
}

func toFloat(obj Object) (float64, bool) {
	switch o := obj.(type) {
	case *Integer:
		return float64(o.Value), true
	case *Float:
		return o.Value, true
	}
	return 0, false
}
