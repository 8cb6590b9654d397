package config

const SourceFileExt = ".mds"

// SourceFileExtensions are all recognized script file extensions
var SourceFileExtensions = []string{".mds", ".monadic"}

// Config file names searched by FindConfig, in order.
var ConfigFileNames = []string{"monadic.yaml", "monadic.yml"}

// Special statement forms recognized at the top level of a statement.
const (
	UnitFormName    = "unit"
	Unit2FormName   = "unit2"
	BindFormName    = "bind"
	DoFormName      = "do_"
	DoFormAliasName = "monad_do"
)

// Control keywords recognized by the script tree builder.
const (
	IfKeyword     = "if"
	ElseKeyword   = "else"
	ElseIfKeyword = "elseif"
)

// Built-in function names
const (
	PrintFuncName      = "print"
	LenFuncName        = "len"
	HeadFuncName       = "head"
	TailFuncName       = "tail"
	AppendFuncName     = "append"
	PrependFuncName    = "prepend"
	ConcatFuncName     = "concat"
	RangeFuncName      = "range"
	StrFuncName        = "str"
	AbsFuncName        = "abs"
	MinFuncName        = "min"
	MaxFuncName        = "max"
	UUIDFuncName       = "uuid"
	YamlDecodeFuncName = "yaml_decode"
	TypeOfFuncName     = "type_of"
)

// Helper functions registered by the capabilities.
const (
	SomeFuncName      = "some"
	NoneFuncName      = "none"
	IsSomeFuncName    = "is_some"
	FromMaybeFuncName = "from_maybe"
	GetStateFuncName  = "get_state"
	SetStateFuncName  = "set_state"
	RunStateFuncName  = "run_state"
	SeqEmptyFuncName  = "seq_empty"
	SeqUnitFuncName   = "seq_unit"
	SeqTakeFuncName   = "seq_take"
	SeqToListFuncName = "seq_to_list"
	YieldFuncName     = "yield_"
)

// Capability names accepted by -m and the config file.
const (
	MaybeCapability        = "maybe"
	ListCapability         = "list"
	StateCapability        = "state"
	SeqCapability          = "seq"
	PauseCapability        = "pause"
	DelayTraceCapability   = "trace"
	NoDelayTraceCapability = "trace-nodelay"
)

// Defaults
const (
	DefaultCapability  = MaybeCapability
	DefaultAddr        = "127.0.0.1:7171"
	DefaultHistoryFile = ".monadic_history"
	DefaultTake        = 20 // elements printed from a lazy sequence result
	DefaultPrompt      = "monadic> "
	ContinuePrompt     = "...> "
)

// Service method path of the gRPC evaluator.
const (
	ServiceName      = "monadic.Evaluator"
	EvaluateMethod   = "Evaluate"
	EvaluateFullName = "/" + ServiceName + "/" + EvaluateMethod
)

// Version is reported by "monadic version".
const Version = "0.3.0"
