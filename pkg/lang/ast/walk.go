package ast

import "errors"

// ErrInvalidNode is returned when the walker reaches a node of [KindNone],
// which no constructor produces.
var ErrInvalidNode = errors.New("walk reached an uninitialized node")

// VisitFunc is a walker callback. A non-nil error aborts the walk
// immediately and propagates unchanged to the walker's caller.
type VisitFunc func(*Node) error

// Walk traverses the subtree rooted at n. pre, when non-nil, runs before the
// children; its error skips the children and the post call. post, when
// non-nil, runs after the children and its error becomes the node's result.
// Either callback may be nil.
//
// Children are visited in a fixed, kind-specific order: script probes in
// list order; probe predicate then statements; if condition, then list, else
// list; unroll statements; call and record arguments in order; method map
// then call; assignment lvalue then expression; binop left then right;
// negation operand; map key record. Literals, variables, and control
// statements are leaves.
//
// Walk is the single traversal primitive: printing, release, type inference,
// and code generation are all built on it. Callbacks must not mutate
// structural links, only the Dyn annotation.
func Walk(n *Node, pre, post VisitFunc) error {
	if pre != nil {
		if err := pre(n); err != nil {
			return err
		}
	}

	if err := walkChildren(n, pre, post); err != nil {
		return err
	}

	if post != nil {
		return post(n)
	}

	return nil
}

func walkChildren(n *Node, pre, post VisitFunc) error {
	switch n.Kind {
	case KindScript:
		return walkList(n.Script.Probes, pre, post)

	case KindProbe:
		if n.Probe.Pred != nil {
			if err := Walk(n.Probe.Pred, pre, post); err != nil {
				return err
			}
		}

		return walkList(n.Probe.Stmts, pre, post)

	case KindIf:
		if err := Walk(n.If.Cond, pre, post); err != nil {
			return err
		}

		if err := walkList(n.If.Then, pre, post); err != nil {
			return err
		}

		if n.If.Else != nil {
			return walkList(n.If.Else, pre, post)
		}

		return nil

	case KindUnroll:
		return walkList(n.Unroll.Stmts, pre, post)

	case KindCall:
		return walkList(n.Call.Vargs, pre, post)

	case KindMethod:
		if err := Walk(n.Method.Map, pre, post); err != nil {
			return err
		}

		return Walk(n.Method.Call, pre, post)

	case KindAssign:
		if err := Walk(n.Assign.Lval, pre, post); err != nil {
			return err
		}

		if n.Assign.Expr != nil {
			return Walk(n.Assign.Expr, pre, post)
		}

		return nil

	case KindBinop:
		if err := Walk(n.Binop.Left, pre, post); err != nil {
			return err
		}

		return Walk(n.Binop.Right, pre, post)

	case KindNot:
		return Walk(n.Not, pre, post)

	case KindMap:
		return Walk(n.Map.Rec, pre, post)

	case KindRec:
		return walkList(n.Rec.Vargs, pre, post)

	case KindNone:
		return ErrInvalidNode

	default:
		return nil
	}
}

// walkList visits each element of a sibling chain in order, recursing into
// each element's subtree. The next link is read before the element is
// visited so a releasing post callback may sever it.
func walkList(head *Node, pre, post VisitFunc) error {
	for elem := head; elem != nil; {
		next := elem.Next

		if err := Walk(elem, pre, post); err != nil {
			return err
		}

		elem = next
	}

	return nil
}
