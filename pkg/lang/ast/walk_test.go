package ast //nolint:testpackage // Tests need access to internal types.

import (
	"errors"
	"testing"
)

func kindsInPreOrder(t *testing.T, n *Node) []Kind {
	t.Helper()

	var kinds []Kind

	err := Walk(n, func(n *Node) error {
		kinds = append(kinds, n.Kind)

		return nil
	}, nil)
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	return kinds
}

func TestWalk_IfElsePreOrder(t *testing.T) {
	t.Parallel()

	// if (a > 1) { x = 2; } else { x = 3; }
	cond := NewBinop(NewVar("a"), OpGt, NewInt(1))
	then := NewAssign(NewVar("x"), NewInt(2))
	els := NewAssign(NewVar("x"), NewInt(3))
	n := NewIf(cond, then, els)

	want := []Kind{
		KindIf,
		KindBinop, KindVar, KindInt,
		KindAssign, KindVar, KindInt,
		KindAssign, KindVar, KindInt,
	}

	got := kindsInPreOrder(t, n)
	if len(got) != len(want) {
		t.Fatalf("visited %d nodes, want %d: %v", len(got), len(want), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWalk_ProbeVisitsPredBeforeStmts(t *testing.T) {
	t.Parallel()

	pred := NewInt(1)
	stmt := NewReturn()
	probe := NewProbe("kprobe:foo", pred, stmt)

	got := kindsInPreOrder(t, probe)
	want := []Kind{KindProbe, KindInt, KindReturn}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func TestWalk_PostOrderFollowsChildren(t *testing.T) {
	t.Parallel()

	n := NewBinop(NewInt(1), OpAdd, NewInt(2))

	var post []Kind

	err := Walk(n, nil, func(n *Node) error {
		post = append(post, n.Kind)

		return nil
	})
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	want := []Kind{KindInt, KindInt, KindBinop}
	for i := range want {
		if post[i] != want[i] {
			t.Fatalf("post order %v, want %v", post, want)
		}
	}
}

func TestWalk_PreAbortSkipsChildrenAndPost(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	n := NewBinop(NewInt(1), OpAdd, NewInt(2))

	visited := 0
	postRan := false

	err := Walk(n,
		func(n *Node) error {
			visited++
			if n.Kind == KindBinop {
				return errStop
			}

			return nil
		},
		func(n *Node) error {
			if n.Kind == KindBinop {
				postRan = true
			}

			return nil
		})

	if !errors.Is(err, errStop) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	if visited != 1 {
		t.Errorf("children visited after abort: %d visits", visited)
	}

	if postRan {
		t.Error("post callback ran on the aborted node")
	}
}

func TestWalk_AbortStopsSiblingList(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop")
	stmts := stmtChain(NewReturn(), NewBreak(), NewContinue())
	probe := NewProbe("kprobe:foo", nil, stmts)

	visited := 0

	err := Walk(probe, func(n *Node) error {
		if n.Kind == KindBreak {
			return errStop
		}

		visited++

		return nil
	}, nil)

	if !errors.Is(err, errStop) {
		t.Fatalf("expected the callback error, got %v", err)
	}

	// probe, return; break aborted before continue.
	if visited != 2 {
		t.Errorf("visited %d nodes before abort, want 2", visited)
	}
}

func TestWalk_UninitializedNode(t *testing.T) {
	t.Parallel()

	err := Walk(&Node{}, nil, nil)
	if !errors.Is(err, ErrInvalidNode) {
		t.Fatalf("expected ErrInvalidNode, got %v", err)
	}
}

func TestWalk_LeavesHaveNoChildren(t *testing.T) {
	t.Parallel()

	for _, leaf := range []*Node{NewInt(7), NewStr("s"), NewVar("v"), NewBreak()} {
		got := kindsInPreOrder(t, leaf)
		if len(got) != 1 {
			t.Errorf("%s: visited %d nodes, want 1", leaf.Kind, len(got))
		}
	}
}
