// Package ast defines the abstract syntax tree shared by the tracefang
// parser, the later compiler passes, and the code generator. A tree is built
// bottom-up through the constructors in new.go, traversed with [Walk], and
// released in a single post-order pass (see release.go). Structure is
// immutable after construction; only the [Dyn] annotation mutates.
package ast

// Kind discriminates the node variants. It doubles as the resolved semantic
// type tag inside [Dyn] (an integer-valued expression resolves to [KindInt],
// a string-valued one to [KindStr]).
type Kind int

// Node kinds.
const (
	KindNone Kind = iota
	KindScript
	KindProbe
	KindIf
	KindUnroll
	KindCall
	KindMethod
	KindAssign
	KindReturn
	KindBreak
	KindContinue
	KindBinop
	KindNot
	KindMap
	KindVar
	KindRec
	KindStr
	KindInt

	// KindStacked marks a value spilled to the probe's stack frame. It is
	// produced by the code generator only, never by the parser, and has no
	// dump representation.
	KindStacked
)

var kindStrs = [...]string{
	KindNone:     "none",
	KindScript:   "script",
	KindProbe:    "probe",
	KindIf:       "if",
	KindUnroll:   "unroll",
	KindCall:     "call",
	KindMethod:   "method",
	KindAssign:   "assign",
	KindReturn:   "return",
	KindBreak:    "break",
	KindContinue: "continue",
	KindBinop:    "binop",
	KindNot:      "not",
	KindMap:      "map",
	KindVar:      "var",
	KindRec:      "rec",
	KindStr:      "str",
	KindInt:      "int",
	KindStacked:  "stacked",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStrs) {
		return "UNKNOWN"
	}

	return kindStrs[k]
}

// Op is a binary operator.
type Op int

// Binary operators, in no particular order. Precedence lives in the parser.
const (
	OpLogOr Op = iota
	OpLogAnd
	OpOr
	OpXor
	OpAnd
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpShl
	OpShr
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

var opStrs = [...]string{
	OpLogOr:  "||",
	OpLogAnd: "&&",
	OpOr:     "|",
	OpXor:    "^",
	OpAnd:    "&",
	OpEq:     "==",
	OpNe:     "!=",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpShl:    "<<",
	OpShr:    ">>",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opStrs) {
		return "UNKNOWN"
	}

	return opStrs[o]
}

// Node is one vertex of the tree. Kind selects which payload pointer is
// valid. Parent is a non-owning back-reference (nil at the script root).
// Next links siblings inside statement, argument, and probe lists; list
// order is meaningful and preserved.
//
// Text carries the string payload of the kinds that have one: the probe
// spec for [KindProbe], the map or variable name for [KindMap]/[KindVar],
// the function name for [KindCall], the operator spelling for [KindAssign],
// and the literal value for [KindStr].
type Node struct {
	Kind   Kind
	Parent *Node
	Next   *Node
	Dyn    *Dyn

	Text string
	Int  int64

	Script *ScriptNode
	Probe  *ProbeNode
	If     *IfNode
	Unroll *UnrollNode
	Call   *CallNode
	Method *MethodNode
	Assign *AssignNode
	Binop  *BinopNode
	Not    *Node
	Map    *MapNode
	Rec    *RecNode
}

// ScriptNode is the payload of a script root: the probe list.
type ScriptNode struct {
	Probes *Node
}

// ProbeNode is the payload of one probe: an optional predicate expression
// and the statement list.
type ProbeNode struct {
	Pred  *Node
	Stmts *Node
}

// IfNode is the payload of an if statement. ThenLast caches the final
// element of the then list; Else may be nil.
type IfNode struct {
	Cond     *Node
	Then     *Node
	ThenLast *Node
	Else     *Node
}

// UnrollNode is the payload of an unroll statement: the iteration count and
// the statement list replicated at code generation time.
type UnrollNode struct {
	Count int64
	Stmts *Node
}

// CallNode is the payload of a function call. Module is empty when the call
// site left resolution to the type checker. NVargs caches the argument list
// length, computed once at construction.
type CallNode struct {
	Module string
	Vargs  *Node
	NVargs int
}

// MethodNode is the payload of a map method invocation. Map is the receiver,
// Call the synthesized inner call carrying the method name.
type MethodNode struct {
	Map  *Node
	Call *Node
}

// AssignNode is the payload of an assignment. Expr may be nil for forms that
// only declare the lvalue.
type AssignNode struct {
	Lval *Node
	Expr *Node
}

// BinopNode is the payload of a binary operation.
type BinopNode struct {
	Op    Op
	Left  *Node
	Right *Node
}

// MapNode is the payload of a map reference: its key record.
type MapNode struct {
	Rec *Node
}

// RecNode is the payload of a record (aggregate key): an ordered tuple of
// expressions. NVargs caches the tuple length.
type RecNode struct {
	Vargs  *Node
	NVargs int
}
