package cfg

// NodeSet is a set of CFG nodes, used throughout for post-dominator sets.
type NodeSet map[*Node]bool

func newNodeSet(nodes ...*Node) NodeSet {
	s := make(NodeSet, len(nodes))
	for _, n := range nodes {
		s[n] = true
	}
	return s
}

func (s NodeSet) clone() NodeSet {
	out := make(NodeSet, len(s))
	for n := range s {
		out[n] = true
	}
	return out
}

func (s NodeSet) equal(other NodeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for n := range s {
		if !other[n] {
			return false
		}
	}
	return true
}

func intersect(sets []NodeSet) NodeSet {
	if len(sets) == 0 {
		return NodeSet{}
	}
	out := sets[0].clone()
	for _, s := range sets[1:] {
		for n := range out {
			if !s[n] {
				delete(out, n)
			}
		}
	}
	return out
}

// PostDominators computes, for every node in g, its set of post-dominators
// by the naive fixed-point iteration: pdom(exit) = {exit}; for every other
// node n, pdom(n) = {n} ∪ ⋂ pdom(successors of n), repeated to a fixpoint.
// Unreachable nodes (no path to exit) keep pdom = all nodes, and must not
// be consulted for an immediate post-dominator.
func PostDominators(g *Graph) map[*Node]NodeSet {
	all := newNodeSet(g.Nodes...)

	pdom := make(map[*Node]NodeSet, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.IsExit() {
			pdom[n] = newNodeSet(n)
		} else {
			pdom[n] = all.clone()
		}
	}

	changed := true
	for changed {
		changed = false
		for _, n := range g.Nodes {
			if n.IsExit() {
				continue
			}
			succSets := make([]NodeSet, 0, len(n.next))
			for _, s := range n.next {
				succSets = append(succSets, pdom[s])
			}
			next := intersect(succSets)
			next[n] = true
			if !next.equal(pdom[n]) {
				pdom[n] = next
				changed = true
			}
		}
	}
	return pdom
}

// ImmediatePostDominator computes, for each node with a post-dominator set,
// its unique immediate post-dominator: the m ∈ pdom(n) \ {n} such that
// every other d ∈ pdom(n) \ {n, m} post-dominates m. Nodes with no such m
// (e.g. a dead-ending branch) are omitted from the result rather than
// having one invented.
func ImmediatePostDominator(nodes []*Node, pdom map[*Node]NodeSet) map[*Node]*Node {
	ipd := map[*Node]*Node{}
	for _, n := range nodes {
		candidates := pdom[n].clone()
		delete(candidates, n)
		if len(candidates) == 0 {
			continue
		}

	candidateLoop:
		for m := range candidates {
			for d := range candidates {
				if d == m {
					continue
				}
				if !pdom[m][d] {
					continue candidateLoop
				}
			}
			ipd[n] = m
			break
		}
	}
	return ipd
}
