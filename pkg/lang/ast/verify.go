package ast

import (
	"errors"
	"fmt"
)

// Structural invariant violations reported by Verify.
var (
	ErrParentLink    = errors.New("child does not point back at its parent")
	ErrCountMismatch = errors.New("cached argument count differs from list length")
	ErrStaleCache    = errors.New("cached list pointer is stale")
	ErrMissingDyn    = errors.New("node has no annotation")
)

// Verify walks the tree and checks the invariants the constructors
// establish: every child's parent link points at the node that owns it,
// cached list counts match actual list lengths, the cached then-last pointer
// is the final element of its list, and every node outside the shared
// map/var case carries an annotation. Map and var nodes are allowed a nil
// annotation here because attachment happens at symbol registration.
func Verify(root *Node) error {
	return Walk(root, verifyNode, nil)
}

func verifyNode(n *Node) error {
	for _, c := range Children(n) {
		if c.Parent != n {
			return fmt.Errorf("%w: %s under %s", ErrParentLink, c.Kind, n.Kind)
		}
	}

	switch n.Kind {
	case KindCall:
		if got := listLen(n.Call.Vargs); got != n.Call.NVargs {
			return fmt.Errorf("%w: call %s has %d args, cached %d",
				ErrCountMismatch, n.Text, got, n.Call.NVargs)
		}
	case KindRec:
		if got := listLen(n.Rec.Vargs); got != n.Rec.NVargs {
			return fmt.Errorf("%w: rec has %d args, cached %d",
				ErrCountMismatch, got, n.Rec.NVargs)
		}
	case KindIf:
		if last := lastOf(n.If.Then); last != n.If.ThenLast {
			return fmt.Errorf("%w: if then-last", ErrStaleCache)
		}
	default:
	}

	if n.Dyn == nil && n.Kind != KindMap && n.Kind != KindVar {
		return fmt.Errorf("%w: %s", ErrMissingDyn, n.Kind)
	}

	return nil
}

func listLen(head *Node) int {
	count := 0
	for c := head; c != nil; c = c.Next {
		count++
	}

	return count
}

func lastOf(head *Node) *Node {
	var last *Node
	for c := head; c != nil; c = c.Next {
		last = c
	}

	return last
}
