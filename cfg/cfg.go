// Package cfg builds a per-function control-flow graph (nodes are
// statements plus synthetic entry/exit) and computes post-dominators and
// immediate post-dominators over it.
package cfg

import yast "github.com/manishshettym/yappy/ast"

// BlockType classifies a CFG node's shape.
type BlockType string

const (
	BlockEntry       BlockType = "ENTRY"
	BlockExit        BlockType = "EXIT"
	BlockNormal      BlockType = "NORMAL"
	BlockConditional BlockType = "CONDITIONAL"
	BlockLoop        BlockType = "LOOP"
)

// Node owns an instruction (an AST statement, or nil for the synthetic
// entry/exit) and exposes its neighbors. Labeled analysis state (set by
// dataflow visitors) lives in labels, keyed by analysis label.
type Node struct {
	ID          int
	Type        BlockType
	Instruction *yast.Node

	prev []*Node
	next []*Node

	labels map[string]any
}

// Prev returns n's predecessors, in the order edges were added.
func (n *Node) Prev() []*Node { return n.prev }

// Next returns n's successors, in the order edges were added.
func (n *Node) Next() []*Node { return n.next }

// IsExit reports whether n has no successors.
func (n *Node) IsExit() bool { return len(n.next) == 0 }

// SetLabel stores v under label, overwriting any previous value.
func (n *Node) SetLabel(label string, v any) {
	if n.labels == nil {
		n.labels = map[string]any{}
	}
	n.labels[label] = v
}

// Label retrieves the value stored under label, if any.
func (n *Node) Label(label string) (any, bool) {
	v, ok := n.labels[label]
	return v, ok
}

// HasLabel reports whether label has been set on n.
func (n *Node) HasLabel(label string) bool {
	_, ok := n.labels[label]
	return ok
}

// Accesses returns the variable accesses of n's instruction, or nil for a
// synthetic entry/exit node. For a conditional or loop node only its header
// counts (the condition; for a for-loop, its target as writes and its
// iterable as reads): the statements of its bodies are CFG nodes of their own.
func (n *Node) Accesses() []yast.Access {
	if n.Instruction == nil {
		return nil
	}
	switch n.Type {
	case BlockConditional:
		return yast.ExtractAccesses(n.Instruction.ChildByFieldName("condition"))
	case BlockLoop:
		if n.Instruction.Kind() == "while_statement" {
			return yast.ExtractAccesses(n.Instruction.ChildByFieldName("condition"))
		}
		var out []yast.Access
		for _, a := range yast.ExtractAccesses(n.Instruction.ChildByFieldName("left")) {
			out = append(out, yast.Access{Kind: yast.Write, Name: a.Name})
		}
		return append(out, yast.ExtractAccesses(n.Instruction.ChildByFieldName("right"))...)
	}
	return yast.ExtractAccesses(n.Instruction)
}

// Graph is one function's control-flow graph: a dense arena of nodes
// (Nodes), with Entry/Exit synthetic endpoints and edges recorded as
// pointers between arena entries.
type Graph struct {
	FunctionID string
	Entry      *Node
	Exit       *Node
	Nodes      []*Node
}

// NewGraph creates an empty graph (just entry and exit) for functionID.
func NewGraph(functionID string) *Graph {
	g := &Graph{FunctionID: functionID}
	g.Entry = g.addNode(BlockEntry, nil)
	g.Exit = g.addNode(BlockExit, nil)
	return g
}

func (g *Graph) addNode(t BlockType, instr *yast.Node) *Node {
	n := &Node{ID: len(g.Nodes), Type: t, Instruction: instr}
	g.Nodes = append(g.Nodes, n)
	return n
}

// AddEdge records a directed control-flow edge from -> to.
func (g *Graph) AddEdge(from, to *Node) {
	from.next = append(from.next, to)
	to.prev = append(to.prev, from)
}

func (g *Graph) connectAll(from []*Node, to *Node) {
	for _, f := range from {
		g.AddEdge(f, to)
	}
}

// loopCtx threads the innermost enclosing loop's header (continue target)
// and break-node accumulator through recursive descent.
type loopCtx struct {
	loopHead *Node
	breaks   *[]*Node
	parent   *loopCtx
}

// Build constructs the CFG for the top-level function definition funcDef,
// identified by functionID. The grammar is handled by recursive descent
// over statement lists, with a "frontier" of nodes awaiting an edge to
// whatever comes next — this lets branches (if/elif/else) and loops merge
// naturally via ordinary multi-predecessor edges, with no synthetic join
// nodes beyond the function's own entry/exit.
func Build(funcDef *yast.Node, functionID string) *Graph {
	g := NewGraph(functionID)
	body := funcDef.ChildByFieldName("body")
	var stmts []*yast.Node
	if body != nil {
		stmts = body.Children()
	}
	frontier := buildBody(g, stmts, []*Node{g.Entry}, nil)
	g.connectAll(frontier, g.Exit)
	return g
}

func buildBody(g *Graph, stmts []*yast.Node, frontier []*Node, ctx *loopCtx) []*Node {
	for _, stmt := range stmts {
		frontier = buildStmt(g, stmt, frontier, ctx)
	}
	return frontier
}

func buildStmt(g *Graph, stmt *yast.Node, frontier []*Node, ctx *loopCtx) []*Node {
	switch stmt.Kind() {
	case "return_statement":
		node := g.addNode(BlockNormal, stmt)
		g.connectAll(frontier, node)
		g.AddEdge(node, g.Exit)
		return nil

	case "break_statement":
		node := g.addNode(BlockNormal, stmt)
		g.connectAll(frontier, node)
		if ctx != nil {
			*ctx.breaks = append(*ctx.breaks, node)
		}
		return nil

	case "continue_statement":
		node := g.addNode(BlockNormal, stmt)
		g.connectAll(frontier, node)
		if ctx != nil {
			g.AddEdge(node, ctx.loopHead)
		}
		return nil

	case "if_statement":
		return buildIf(g, stmt, frontier, ctx)

	case "for_statement", "while_statement":
		return buildLoop(g, stmt, frontier, ctx)

	default:
		node := g.addNode(BlockNormal, stmt)
		g.connectAll(frontier, node)
		return []*Node{node}
	}
}

func buildIf(g *Graph, stmt *yast.Node, frontier []*Node, ctx *loopCtx) []*Node {
	cond := g.addNode(BlockConditional, stmt)
	g.connectAll(frontier, cond)

	var result []*Node
	if consequence := stmt.ChildByFieldName("consequence"); consequence != nil {
		result = append(result, buildBody(g, consequence.Children(), []*Node{cond}, ctx)...)
	}

	falseEntry := cond
	var elseClause *yast.Node
	for _, c := range stmt.Children() {
		switch c.Kind() {
		case "elif_clause":
			elifCond := g.addNode(BlockConditional, c)
			g.AddEdge(falseEntry, elifCond)
			if consequence := c.ChildByFieldName("consequence"); consequence != nil {
				result = append(result, buildBody(g, consequence.Children(), []*Node{elifCond}, ctx)...)
			}
			falseEntry = elifCond
		case "else_clause":
			elseClause = c
		}
	}

	if elseClause != nil {
		if body := elseClause.ChildByFieldName("body"); body != nil {
			result = append(result, buildBody(g, body.Children(), []*Node{falseEntry}, ctx)...)
		}
	} else {
		result = append(result, falseEntry)
	}
	return dedupe(result)
}

func buildLoop(g *Graph, stmt *yast.Node, frontier []*Node, ctx *loopCtx) []*Node {
	header := g.addNode(BlockLoop, stmt)
	g.connectAll(frontier, header)

	breaks := []*Node{}
	inner := &loopCtx{loopHead: header, breaks: &breaks, parent: ctx}

	var bodyStmts []*yast.Node
	if body := stmt.ChildByFieldName("body"); body != nil {
		bodyStmts = body.Children()
	}
	bodyFrontier := buildBody(g, bodyStmts, []*Node{header}, inner)
	g.connectAll(bodyFrontier, header)

	result := append([]*Node{header}, breaks...)
	return dedupe(result)
}

func dedupe(nodes []*Node) []*Node {
	seen := make(map[*Node]bool, len(nodes))
	out := nodes[:0:0]
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
