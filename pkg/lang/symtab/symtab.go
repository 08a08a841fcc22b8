// Package symtab implements the per-script symbol table. Map and scalar
// variable nodes do not own their annotation: the table does, and every
// occurrence of the same name within one script aliases the same record, so
// a type or storage decision made at one use site is visible at all of them.
package symtab

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
)

// ErrNotShared is returned when a node of a kind with an exclusively-owned
// annotation is passed to Attach.
var ErrNotShared = errors.New("node kind does not use a shared annotation")

// Table holds the shared annotations of one script's compilation. Maps and
// scalar variables are separate namespaces; lookups are stable for the
// table's lifetime (same name, same record).
type Table struct {
	maps map[string]*ast.Dyn
	vars map[string]*ast.Dyn
}

// New returns an empty table.
func New() *Table {
	return &Table{
		maps: make(map[string]*ast.Dyn),
		vars: make(map[string]*ast.Dyn),
	}
}

// Map returns the shared annotation for the named map, creating it on first
// use.
func (t *Table) Map(name string) *ast.Dyn {
	return lookup(t.maps, name)
}

// Var returns the shared annotation for the named scalar variable, creating
// it on first use.
func (t *Table) Var(name string) *ast.Dyn {
	return lookup(t.vars, name)
}

// Attach resolves n's shared annotation by name and stores it on the node.
// Only map and var nodes qualify.
func (t *Table) Attach(n *ast.Node) error {
	switch n.Kind {
	case ast.KindMap:
		n.Dyn = t.Map(n.Text)
	case ast.KindVar:
		n.Dyn = t.Var(n.Text)
	default:
		return fmt.Errorf("%w: %s", ErrNotShared, n.Kind)
	}

	return nil
}

// Len reports how many symbols the table holds across both namespaces.
func (t *Table) Len() int {
	return len(t.maps) + len(t.vars)
}

func lookup(ns map[string]*ast.Dyn, name string) *ast.Dyn {
	if d, ok := ns[name]; ok {
		return d
	}

	d := &ast.Dyn{}
	ns[name] = d

	return d
}
