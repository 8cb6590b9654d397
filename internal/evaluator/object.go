package evaluator

type ObjectType string

const (
	INTEGER_OBJ = "INTEGER"
	FLOAT_OBJ   = "FLOAT"
	BOOLEAN_OBJ = "BOOLEAN"
	STRING_OBJ  = "STRING"
	NIL_OBJ     = "NIL"
	LIST_OBJ    = "LIST"
	RECORD_OBJ  = "RECORD"
	BUILTIN_OBJ = "BUILTIN"
	THUNK_OBJ   = "THUNK" // delayed computation
)

// Object is a runtime value. Monadic values defined by capabilities
// implement it too, so they can flow through script contexts.
type Object interface {
	Type() ObjectType
	Inspect() string
}
