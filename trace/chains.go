package trace

import (
	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/slicer"
)

// ListCallChains implements C9's "call-chain listing" flow: every acyclic
// chain of callers reaching target, as produced by the interprocedural
// slicer's own chain enumeration (4.8.1).
func ListCallChains(cg *callgraph.CallGraph, target callgraph.EntityID) [][]callgraph.EntityID {
	return slicer.CallChains(cg, target)
}
