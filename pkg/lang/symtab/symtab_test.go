package symtab_test

import (
	"errors"
	"testing"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/symtab"
)

func TestTable_SameNameSameRecord(t *testing.T) {
	t.Parallel()

	st := symtab.New()

	first := st.Map("@m")
	second := st.Map("@m")

	if first != second {
		t.Error("two lookups of one map name must alias the same record")
	}

	// A decision made through one handle is visible through the other.
	first.Type = ast.KindInt
	first.Size = 8

	if second.Type != ast.KindInt || second.Size != 8 {
		t.Error("annotation mutation is not shared")
	}
}

func TestTable_NamespacesAreSeparate(t *testing.T) {
	t.Parallel()

	st := symtab.New()

	if st.Map("x") == st.Var("x") {
		t.Error("map and var namespaces must not alias")
	}

	if st.Len() != 2 {
		t.Errorf("table holds %d symbols, want 2", st.Len())
	}
}

func TestTable_AttachSharesAcrossUseSites(t *testing.T) {
	t.Parallel()

	st := symtab.New()

	a := ast.NewVar("x")
	b := ast.NewVar("x")

	if err := st.Attach(a); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := st.Attach(b); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if a.Dyn == nil || a.Dyn != b.Dyn {
		t.Error("both use sites must share one annotation")
	}

	if st.Len() != 1 {
		t.Errorf("table holds %d symbols, want 1", st.Len())
	}
}

func TestTable_AttachRejectsOwnedKinds(t *testing.T) {
	t.Parallel()

	st := symtab.New()

	err := st.Attach(ast.NewInt(1))
	if !errors.Is(err, symtab.ErrNotShared) {
		t.Errorf("got %v, want ErrNotShared", err)
	}
}
