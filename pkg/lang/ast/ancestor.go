package ast

// AncestorOfKind climbs parent links starting at n itself and returns the
// first node of the given kind, or nil if the root is reached without a
// match.
func AncestorOfKind(n *Node, kind Kind) *Node {
	for ; n != nil && n.Kind != kind; n = n.Parent {
	}

	return n
}

// EnclosingStatement returns the top-level statement containing n, i.e. the
// ancestor whose own parent is a probe. n must be inside a probe; the call
// panics on a detached node.
func EnclosingStatement(n *Node) *Node {
	for ; n != nil; n = n.Parent {
		if n.Parent.Kind == KindProbe {
			return n
		}
	}

	return nil
}

// EnclosingProbe returns the probe containing n, or nil.
func EnclosingProbe(n *Node) *Node {
	return AncestorOfKind(n, KindProbe)
}

// EnclosingScript returns the script root above n, or nil.
func EnclosingScript(n *Node) *Node {
	return AncestorOfKind(n, KindScript)
}

// ProviderOf returns the resolved provider of the probe containing n, or nil
// when n is outside a probe or the probe has not been resolved yet.
func ProviderOf(n *Node) Provider {
	probe := EnclosingProbe(n)
	if probe == nil {
		return nil
	}

	return probe.Dyn.Probe.Provider
}
