package ast //nolint:testpackage // Tests need access to internal types.

import (
	"errors"
	"testing"
)

func verifyFixture() *Node {
	cond := NewBinop(NewVar("pid"), OpEq, NewInt(42))
	stmt := NewIf(cond, NewAssign(NewVar("x"), NewInt(1)), nil)

	return NewScript(NewProbe("kprobe:foo", nil, stmt))
}

func TestVerify_AcceptsConstructedTree(t *testing.T) {
	t.Parallel()

	if err := Verify(verifyFixture()); err != nil {
		t.Errorf("constructed tree must verify: %v", err)
	}
}

func TestVerify_BrokenParentLink(t *testing.T) {
	t.Parallel()

	root := verifyFixture()
	root.Script.Probes.Parent = nil

	if err := Verify(root); !errors.Is(err, ErrParentLink) {
		t.Errorf("got %v, want ErrParentLink", err)
	}
}

func TestVerify_CountMismatch(t *testing.T) {
	t.Parallel()

	call := NewCall("mem", "read", stmtChain(NewInt(1), NewInt(2)))
	call.Call.NVargs = 3

	probe := NewProbe("kprobe:foo", nil, NewAssign(NewVar("x"), call))
	root := NewScript(probe)

	if err := Verify(root); !errors.Is(err, ErrCountMismatch) {
		t.Errorf("got %v, want ErrCountMismatch", err)
	}
}

func TestVerify_StaleThenLast(t *testing.T) {
	t.Parallel()

	root := verifyFixture()
	stmt := root.Script.Probes.Probe.Stmts
	stmt.If.ThenLast = stmt

	if err := Verify(root); !errors.Is(err, ErrStaleCache) {
		t.Errorf("got %v, want ErrStaleCache", err)
	}
}

func TestVerify_MissingAnnotation(t *testing.T) {
	t.Parallel()

	root := verifyFixture()
	root.Script.Probes.Probe.Stmts.Dyn = nil

	if err := Verify(root); !errors.Is(err, ErrMissingDyn) {
		t.Errorf("got %v, want ErrMissingDyn", err)
	}
}

func TestVerify_AllowsUnregisteredSymbols(t *testing.T) {
	t.Parallel()

	// Map and var annotations arrive at symbol registration; their absence
	// is not a structural defect.
	probe := NewProbe("kprobe:foo", nil, NewAssign(NewMap("@m", nil), NewInt(1)))

	if err := Verify(NewScript(probe)); err != nil {
		t.Errorf("tree with unregistered symbols must verify: %v", err)
	}
}
