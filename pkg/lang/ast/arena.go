package ast

// Arena is a free-list allocator for nodes and annotations. It keeps the
// storage of a released tree around for the next compilation instead of
// handing it back to the garbage collector. Not safe for concurrent use.
type Arena struct {
	nodes []*Node
	dyns  []*Dyn
}

// GetNode returns a zeroed node, reusing one from the free list if
// available.
func (a *Arena) GetNode() *Node {
	if count := len(a.nodes); count > 0 {
		n := a.nodes[count-1]
		a.nodes = a.nodes[:count-1]

		return n
	}

	return &Node{}
}

// PutNode clears the node and returns it to the free list.
func (a *Arena) PutNode(n *Node) {
	*n = Node{}
	a.nodes = append(a.nodes, n)
}

// GetDyn returns a zeroed annotation, reusing one from the free list if
// available.
func (a *Arena) GetDyn() *Dyn {
	if count := len(a.dyns); count > 0 {
		d := a.dyns[count-1]
		a.dyns = a.dyns[:count-1]

		return d
	}

	return &Dyn{}
}

// PutDyn clears the annotation and returns it to the free list.
func (a *Arena) PutDyn(d *Dyn) {
	*d = Dyn{}
	a.dyns = append(a.dyns, d)
}

// FreeNodes reports how many nodes the free list currently holds.
func (a *Arena) FreeNodes() int {
	return len(a.nodes)
}

// FreeDyns reports how many annotations the free list currently holds.
func (a *Arena) FreeDyns() int {
	return len(a.dyns)
}
