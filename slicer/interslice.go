package slicer

import (
	"fmt"

	yast "github.com/manishshettym/yappy/ast"
	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/pdg"
	"github.com/manishshettym/yappy/yerrors"
)

// FuncLookup resolves an entity id to its function-definition AST node and
// the already-built PDG for that function's body. Orchestration (package
// trace) is responsible for parsing files and constructing CFG/dataflow/PDG
// per entity and supplying this callback — the slicer itself is agnostic
// to how functions are located.
type FuncLookup func(id callgraph.EntityID) (def *yast.Node, graph *pdg.Graph, ok bool)

// NodeRef names one PDG node by the function entity it belongs to.
type NodeRef struct {
	Function callgraph.EntityID
	Node     *pdg.Node
}

// SkippedChain records a call chain abandoned because no call-site
// expression could be located in some caller along it (yerrors.CallsiteNotFound).
type SkippedChain struct {
	Chain []callgraph.EntityID
	Err   *yerrors.CallsiteNotFound
}

// Result is the union of an interprocedural backward slice: the target's
// own intraprocedural slice, plus every node contributed by call-site
// slicing in each caller along every call chain reaching the target.
type Result struct {
	Nodes   []NodeRef
	Skipped []SkippedChain
}

// InterproceduralSlice implements C8: it computes the intraprocedural
// slice of the statement at targetLine within target's function, then
// walks every call chain reaching target (per CallChains), and at each
// step locates the call-site of the callee in the caller's body, slices
// that call site intraprocedurally in the caller's PDG, and unions the
// result.
func InterproceduralSlice(cg *callgraph.CallGraph, target callgraph.EntityID, targetLine int, lookup FuncLookup) (*Result, error) {
	targetDef, targetGraph, ok := lookup(target)
	if !ok {
		return nil, &yerrors.MissingDefinition{EntityID: string(target)}
	}
	_ = targetDef

	targetNode := findNodeAtLine(targetGraph, targetLine)
	if targetNode == nil {
		return nil, fmt.Errorf("slicer: no statement of %s starts at line %d", target, targetLine)
	}

	result := &Result{}
	seenPairs := map[NodeRef]bool{}
	addNodes := func(fn callgraph.EntityID, nodes map[*pdg.Node]bool) {
		for n := range nodes {
			ref := NodeRef{Function: fn, Node: n}
			if !seenPairs[ref] {
				seenPairs[ref] = true
				result.Nodes = append(result.Nodes, ref)
			}
		}
	}

	addNodes(target, BackwardSlice(targetNode))

	for _, chain := range CallChains(cg, target) {
		skipped := false
		for i := 0; i < len(chain)-1; i++ {
			callee := chain[i]
			caller := chain[i+1]

			callerDef, callerGraph, ok := lookup(caller)
			if !ok {
				result.Skipped = append(result.Skipped, SkippedChain{
					Chain: chain,
					Err:   &yerrors.CallsiteNotFound{Caller: string(caller), Callee: string(callee)},
				})
				skipped = true
				break
			}

			callSite, found := FindCallSite(callerDef, callgraph.SimpleName(callee))
			if !found {
				result.Skipped = append(result.Skipped, SkippedChain{
					Chain: chain,
					Err:   &yerrors.CallsiteNotFound{Caller: string(caller), Callee: string(callee)},
				})
				skipped = true
				break
			}

			callSiteNode := containingStatementNode(callerGraph, callSite)
			if callSiteNode == nil {
				result.Skipped = append(result.Skipped, SkippedChain{
					Chain: chain,
					Err:   &yerrors.CallsiteNotFound{Caller: string(caller), Callee: string(callee)},
				})
				skipped = true
				break
			}

			addNodes(caller, BackwardSlice(callSiteNode))
		}
		_ = skipped
	}

	return result, nil
}

func findNodeAtLine(g *pdg.Graph, line int) *pdg.Node {
	for _, n := range g.Nodes {
		if n.CFGNode.Instruction != nil && int(n.CFGNode.Instruction.StartLine()) == line {
			return n
		}
	}
	return nil
}

func nodeForStatement(g *pdg.Graph, stmt *yast.Node) *pdg.Node {
	for _, n := range g.Nodes {
		if n.CFGNode.Instruction == stmt {
			return n
		}
	}
	return nil
}

// containingStatementNode walks up from expr to the nearest ancestor (or
// expr itself) that is the Instruction of some PDG node in g — i.e. the
// statement-level granularity the CFG/PDG actually operate at.
func containingStatementNode(g *pdg.Graph, expr *yast.Node) *pdg.Node {
	for cur := expr; cur != nil; cur = cur.Parent {
		if n := nodeForStatement(g, cur); n != nil {
			return n
		}
	}
	return nil
}
