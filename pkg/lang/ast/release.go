package ast

// Release returns the whole tree rooted at n to the arena in a single
// post-order pass. Each node's exclusively-owned annotation goes back with
// it; the shared annotations of map and var nodes belong to the symbol table
// and are left untouched.
//
// Release must run exactly once per tree, after every pass referencing it
// has completed. Releasing a subtree while siblings remain reachable from a
// live parent is not supported.
func Release(n *Node, arena *Arena) {
	// The release callback cannot fail.
	_ = Walk(n, nil, func(n *Node) error {
		if n.Kind != KindMap && n.Kind != KindVar && n.Dyn != nil {
			arena.PutDyn(n.Dyn)
		}

		arena.PutNode(n)

		return nil
	})
}
