// Package pdg builds a program-dependence graph from a function's CFG,
// post-dominators, and the two dataflow instantiations (variable def/use
// and reaching definitions): one PDG node per CFG node, with typed CD
// (control-dependence) and DD (data-dependence) edges. Edge direction is
// "dependent -> dependency" — outgoing edges are what a backward slice
// follows.
package pdg

import (
	"github.com/manishshettym/yappy/cfg"
	"github.com/manishshettym/yappy/dataflow"
)

// EdgeType tags a PDG edge as control- or data-dependence.
type EdgeType string

const (
	CD EdgeType = "CD"
	DD EdgeType = "DD"
)

// Edge is one typed dependence edge, from the dependent node to the node
// it depends on.
type Edge struct {
	From *Node
	To   *Node
	Type EdgeType
}

// Node is one PDG node, carrying a reference to its underlying CFG node
// (and, through it, the AST statement it represents).
type Node struct {
	CFGNode  *cfg.Node
	outgoing []*Edge
}

// OutgoingNeighbors returns the nodes n has outgoing edges to — the target
// set of a backward slice traversal rooted at n.
func (n *Node) OutgoingNeighbors() []*Node {
	out := make([]*Node, len(n.outgoing))
	for i, e := range n.outgoing {
		out[i] = e.To
	}
	return out
}

// OutgoingEdges returns n's outgoing edges.
func (n *Node) OutgoingEdges() []*Edge { return n.outgoing }

// Graph is a function's program-dependence graph: one Node per CFG node.
type Graph struct {
	FunctionID string
	byCFGNode  map[*cfg.Node]*Node
	Nodes      []*Node
}

// NodeFor returns the PDG node wrapping cfgNode, or nil.
func (g *Graph) NodeFor(cfgNode *cfg.Node) *Node { return g.byCFGNode[cfgNode] }

func (g *Graph) addEdge(from, to *Node, t EdgeType) {
	from.outgoing = append(from.outgoing, &Edge{From: from, To: to, Type: t})
}

// Build constructs the PDG for cfgGraph. vdu and rd must already have been
// run (via Analysis.Visit) over cfgGraph — Build only reads their stored
// labels.
func Build(cfgGraph *cfg.Graph, vdu, rd *dataflow.Analysis) *Graph {
	g := &Graph{
		FunctionID: cfgGraph.FunctionID,
		byCFGNode:  make(map[*cfg.Node]*Node, len(cfgGraph.Nodes)),
	}
	for _, cn := range cfgGraph.Nodes {
		n := &Node{CFGNode: cn}
		g.byCFGNode[cn] = n
		g.Nodes = append(g.Nodes, n)
	}

	pdom := cfg.PostDominators(cfgGraph)
	ipdom := cfg.ImmediatePostDominator(cfgGraph.Nodes, pdom)

	for _, cn := range cfgGraph.Nodes {
		addDataDependenceEdges(g, cn, vdu, rd)
		addControlDependenceEdges(g, cn, pdom, ipdom)
	}
	return g
}

// addDataDependenceEdges adds, for nodeB, one DD edge to every node A whose
// write to a variable v reaches B and which B then uses: DD: B -> A exists
// iff v ∈ uses(B) and (v, A) ∈ RD_in(B).
func addDataDependenceEdges(g *Graph, cfgNodeB *cfg.Node, vdu, rd *dataflow.Analysis) {
	nodeB := g.byCFGNode[cfgNodeB]

	outVal, ok := vdu.Out(cfgNodeB)
	if !ok {
		return
	}
	uses := outVal.(dataflow.DefUseValue).Uses

	inVal, ok := rd.In(cfgNodeB)
	if !ok {
		return
	}
	rdIn := inVal.(dataflow.RDValue)

	for v := range uses {
		for def := range rdIn {
			if def.Var != v {
				continue
			}
			nodeA := g.byCFGNode[def.Node]
			if nodeA == nil {
				continue
			}
			g.addEdge(nodeB, nodeA, DD)
		}
	}
}

// addControlDependenceEdges adds, for cfgNodeA, a CD edge from every node
// lying on the post-dominator-tree walk from a non-post-dominating
// successor up to (but not including) IPD(A).
func addControlDependenceEdges(g *Graph, cfgNodeA *cfg.Node, pdom map[*cfg.Node]cfg.NodeSet, ipdom map[*cfg.Node]*cfg.Node) {
	nodeA := g.byCFGNode[cfgNodeA]

	ipdA, hasIPD := ipdom[cfgNodeA]
	if !hasIPD {
		return // dead-ending branch: no CD edges for A
	}

	for _, cfgNodeB := range cfgNodeA.Next() {
		if pdom[cfgNodeA][cfgNodeB] {
			continue // B post-dominates A: not a control-dependence edge
		}

		current := cfgNodeB
		for current != ipdA {
			if current != cfgNodeA {
				g.addEdge(g.byCFGNode[current], nodeA, CD)
			}
			next, ok := ipdom[current]
			if !ok {
				break
			}
			current = next
		}
	}
}
