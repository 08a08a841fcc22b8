package ast

// newNode allocates a node of the given kind with its annotation attached.
// Map and var nodes are the exception: their annotation is shared and lives
// in the symbol table, which attaches it once the symbol is registered.
func newNode(kind Kind) *Node {
	n := &Node{Kind: kind}

	if kind != KindMap && kind != KindVar {
		n.Dyn = &Dyn{}
	}

	if kind == KindProbe {
		n.Dyn.Probe = &ProbeDyn{Regs: NewRegisterFile()}
	}

	return n
}

// adopt stamps n as the parent of every element of the sibling chain rooted
// at head and returns the chain length.
func adopt(n *Node, head *Node) int {
	count := 0
	for c := head; c != nil; c = c.Next {
		c.Parent = n
		count++
	}

	return count
}

// NewStr returns a string literal node.
func NewStr(val string) *Node {
	n := newNode(KindStr)
	n.Text = val

	return n
}

// NewInt returns an integer literal node.
func NewInt(val int64) *Node {
	n := newNode(KindInt)
	n.Int = val

	return n
}

// NewRec returns a record node over the argument chain, taking ownership of
// it.
func NewRec(vargs *Node) *Node {
	n := newNode(KindRec)
	n.Rec = &RecNode{Vargs: vargs}
	n.Rec.NVargs = adopt(n, vargs)

	return n
}

// NewMap returns a map reference node. A nil rec defaults to a record with a
// single empty-string key, so every aggregation has a well-defined key even
// in the "no key" case.
func NewMap(name string, rec *Node) *Node {
	n := newNode(KindMap)

	if rec == nil {
		rec = NewRec(NewStr(""))
	}

	n.Text = name
	n.Map = &MapNode{Rec: rec}
	rec.Parent = n

	return n
}

// NewVar returns a scalar variable reference node.
func NewVar(name string) *Node {
	n := newNode(KindVar)
	n.Text = name

	return n
}

// NewNot returns a logical negation over expr.
func NewNot(expr *Node) *Node {
	n := newNode(KindNot)
	n.Not = expr
	expr.Parent = n

	return n
}

// NewBinop returns a binary operation over left and right.
func NewBinop(left *Node, op Op, right *Node) *Node {
	n := newNode(KindBinop)
	n.Binop = &BinopNode{Op: op, Left: left, Right: right}
	left.Parent = n
	right.Parent = n

	return n
}

// NewAssign returns an assignment of expr to lval. Expr may be nil.
func NewAssign(lval, expr *Node) *Node {
	n := newNode(KindAssign)
	n.Text = "="
	n.Assign = &AssignNode{Lval: lval, Expr: expr}
	lval.Parent = n

	if expr != nil {
		expr.Parent = n
	}

	return n
}

// methodModule is the pseudo-module stamped on the inner call of a method
// invocation so downstream passes can tell it apart from free functions.
const methodModule = "method"

// NewMethod returns a map method invocation. The inner call's module is
// overwritten with the method pseudo-module tag.
func NewMethod(mapNode, call *Node) *Node {
	n := newNode(KindMethod)

	call.Call.Module = methodModule
	n.Method = &MethodNode{Map: mapNode, Call: call}
	mapNode.Parent = n
	call.Parent = n

	return n
}

// NewCall returns a function call node over the argument chain. Module may
// be empty, leaving resolution to later passes.
func NewCall(module, fn string, vargs *Node) *Node {
	n := newNode(KindCall)
	n.Text = fn
	n.Call = &CallNode{Module: module, Vargs: vargs}
	n.Call.NVargs = adopt(n, vargs)

	return n
}

// NewIf returns an if statement. Els may be nil. The last element of the
// then list is cached for the code generator's branch patching.
func NewIf(cond, then, els *Node) *Node {
	n := newNode(KindIf)
	n.If = &IfNode{Cond: cond, Then: then, Else: els}
	cond.Parent = n

	for c := then; c != nil; c = c.Next {
		c.Parent = n

		if c.Next == nil {
			n.If.ThenLast = c
		}
	}

	adopt(n, els)

	return n
}

// NewUnroll returns an unroll statement replicating stmts count times.
func NewUnroll(count int64, stmts *Node) *Node {
	n := newNode(KindUnroll)
	n.Unroll = &UnrollNode{Count: count, Stmts: stmts}
	adopt(n, stmts)

	return n
}

// NewReturn returns a return statement node.
func NewReturn() *Node {
	return newNode(KindReturn)
}

// NewBreak returns a break statement node.
func NewBreak() *Node {
	return newNode(KindBreak)
}

// NewContinue returns a continue statement node.
func NewContinue() *Node {
	return newNode(KindContinue)
}

// NewProbe returns a probe with its spec, optional predicate, and statement
// list.
func NewProbe(pspec string, pred, stmts *Node) *Node {
	n := newNode(KindProbe)
	n.Text = pspec
	n.Probe = &ProbeNode{Pred: pred, Stmts: stmts}

	if pred != nil {
		pred.Parent = n
	}

	adopt(n, stmts)

	return n
}

// NewScript returns the script root over the probe chain.
func NewScript(probes *Node) *Node {
	n := newNode(KindScript)
	n.Script = &ScriptNode{Probes: probes}
	adopt(n, probes)

	return n
}
