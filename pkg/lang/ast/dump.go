package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Dumper renders trees to a diagnostic stream as a connected tree diagram:
// one node per line, branch-drawing prefix, a kind-specific summary, and the
// annotation block. Rendering never mutates the tree and tolerates
// unresolved annotations.
type Dumper struct {
	// Color highlights node summaries. The output is otherwise
	// byte-for-byte stable across runs.
	Color bool
}

// DumpTree renders the whole tree rooted at n to w.
func DumpTree(w io.Writer, n *Node) error {
	return Dumper{}.DumpTree(w, n)
}

// DumpTree renders the whole tree rooted at n to w.
func (d Dumper) DumpTree(w io.Writer, n *Node) error {
	depth := 0

	return Walk(n,
		func(n *Node) error {
			if _, err := io.WriteString(w, prefix(&depth, n)); err != nil {
				return err
			}

			if err := d.DumpNode(w, n); err != nil {
				return err
			}

			_, err := io.WriteString(w, "\n")

			return err
		},
		func(*Node) error {
			depth--

			return nil
		})
}

// DumpNode renders the one-line summary and annotation block of a single
// node, without the tree prefix or a trailing newline.
func (d Dumper) DumpNode(w io.Writer, n *Node) error {
	summary := nodeSummary(n)
	if d.Color {
		summary = color.New(color.FgCyan).Sprint(summary)
	}

	if _, err := io.WriteString(w, summary); err != nil {
		return err
	}

	return dumpDyn(w, n)
}

// nodeSummary is the kind-specific head of a dump line.
func nodeSummary(n *Node) string {
	switch n.Kind {
	case KindProbe, KindAssign, KindMap, KindVar:
		return n.Text + " "

	case KindBinop:
		return n.Binop.Op.String() + " "

	case KindUnroll:
		return fmt.Sprintf("unroll (%d) ", n.Unroll.Count)

	case KindCall:
		module := n.Call.Module
		if module == "" {
			module = "<auto>"
		}

		return module + "." + n.Text + " "

	case KindInt:
		return fmt.Sprintf("%#x ", n.Int)

	case KindStr:
		return escape(n.Text)

	case KindStacked:
		panic("stacked value in dump: code generator produced an undumpable tree")

	default:
		return "<" + n.Kind.String() + "> "
	}
}

func dumpDyn(w io.Writer, n *Node) error {
	dyn := n.Dyn
	if dyn == nil {
		// Map/var node whose symbol has not been registered yet.
		dyn = &Dyn{}
	}

	_, err := fmt.Fprintf(w, "(type:%s/%s size:%#x loc:%s",
		n.Kind, dyn.Type, dyn.Size, dyn.Loc)
	if err != nil {
		return err
	}

	switch dyn.Loc {
	case LocReg:
		_, err = fmt.Fprintf(w, "/%d", dyn.Reg)
	case LocStack:
		_, err = fmt.Fprintf(w, "/-%#x", -dyn.Addr)
	case LocNowhere, LocVirtual:
	}

	if err != nil {
		return err
	}

	_, err = io.WriteString(w, ")")

	return err
}

// hasNext reports whether a following sibling exists at n's level: either a
// literal next link, or n sits in a fixed child slot that the walker visits
// before another child of the same parent.
func hasNext(n *Node) bool {
	if n.Next != nil {
		return true
	}

	p := n.Parent
	if p == nil {
		return false
	}

	switch {
	case p.Kind == KindBinop && n == p.Binop.Left:
		return true
	case p.Kind == KindAssign && n == p.Assign.Lval && p.Assign.Expr != nil:
		return true
	case p.Kind == KindIf && n == p.If.Cond:
		return true
	case p.Kind == KindMethod && n == p.Method.Map:
		return true
	}

	return false
}

// prefix draws the branch prefix for n at the current depth and deepens the
// walk by one level. Each ancestor level contributes a vertical rule when it
// still has a following sibling.
func prefix(depth *int, n *Node) string {
	var b strings.Builder

	for i := 0; i < *depth; i++ {
		p := n
		for j := 0; j < *depth-i; j++ {
			p = p.Parent
		}

		if hasNext(p) {
			b.WriteString("|   ")
		} else {
			b.WriteString("    ")
		}
	}

	if hasNext(n) {
		b.WriteString("|-> ")
	} else {
		b.WriteString("`-> ")
	}

	*depth++

	return b.String()
}

// escape renders s as a double-quoted literal with non-printable characters
// escaped.
func escape(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)

			continue
		}

		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			fmt.Fprintf(&b, `\x%02x`, c)
		}
	}

	b.WriteByte('"')

	return b.String()
}
