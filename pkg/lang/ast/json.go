package ast

import "encoding/json"

// jsonNode is the wire shape of an exported node. The schema in
// pkg/lang/spec describes it.
type jsonNode struct {
	Kind     string   `json:"kind"`
	Text     string   `json:"text,omitempty"`
	Value    *int64   `json:"value,omitempty"`
	Op       string   `json:"op,omitempty"`
	Module   string   `json:"module,omitempty"`
	Count    *int64   `json:"count,omitempty"`
	Children []*Node  `json:"children,omitempty"`
	Dyn      *jsonDyn `json:"dyn,omitempty"`
}

type jsonDyn struct {
	Type string `json:"type"`
	Size int64  `json:"size"`
	Loc  string `json:"loc"`
	Reg  *int   `json:"reg,omitempty"`
	Addr *int64 `json:"addr,omitempty"`
}

// MarshalJSON exports the subtree as a nested object tree, children in
// walker order. The export is diagnostic-only and not a stable interchange
// format.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{
		Kind:     n.Kind.String(),
		Children: Children(n),
	}

	switch n.Kind {
	case KindProbe, KindAssign, KindMap, KindVar, KindCall, KindStr:
		out.Text = n.Text
	case KindInt:
		val := n.Int
		out.Value = &val
	case KindBinop:
		out.Op = n.Binop.Op.String()
	case KindUnroll:
		count := n.Unroll.Count
		out.Count = &count
	default:
	}

	if n.Kind == KindCall {
		out.Module = n.Call.Module
	}

	if d := n.Dyn; d != nil && (d.Type != KindNone || d.Size != 0 || d.Loc != LocNowhere) {
		jd := &jsonDyn{Type: d.Type.String(), Size: d.Size, Loc: d.Loc.String()}

		switch d.Loc {
		case LocReg:
			reg := int(d.Reg)
			jd.Reg = &reg
		case LocStack:
			addr := d.Addr
			jd.Addr = &addr
		case LocNowhere, LocVirtual:
		}

		out.Dyn = jd
	}

	return json.Marshal(out)
}

// Children returns n's immediate children in walker order, flattening the
// sibling lists.
func Children(n *Node) []*Node {
	var out []*Node

	appendList := func(head *Node) {
		for c := head; c != nil; c = c.Next {
			out = append(out, c)
		}
	}

	switch n.Kind {
	case KindScript:
		appendList(n.Script.Probes)
	case KindProbe:
		if n.Probe.Pred != nil {
			out = append(out, n.Probe.Pred)
		}

		appendList(n.Probe.Stmts)
	case KindIf:
		out = append(out, n.If.Cond)
		appendList(n.If.Then)
		appendList(n.If.Else)
	case KindUnroll:
		appendList(n.Unroll.Stmts)
	case KindCall:
		appendList(n.Call.Vargs)
	case KindMethod:
		out = append(out, n.Method.Map, n.Method.Call)
	case KindAssign:
		out = append(out, n.Assign.Lval)

		if n.Assign.Expr != nil {
			out = append(out, n.Assign.Expr)
		}
	case KindBinop:
		out = append(out, n.Binop.Left, n.Binop.Right)
	case KindNot:
		out = append(out, n.Not)
	case KindMap:
		out = append(out, n.Map.Rec)
	case KindRec:
		appendList(n.Rec.Vargs)
	default:
	}

	return out
}
