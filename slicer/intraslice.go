// Package slicer computes backward program slices: intraprocedurally by
// PDG reachability (C7), and interprocedurally by walking call chains and
// unioning per-caller slices at each call site (C8).
package slicer

import (
	"github.com/manishshettym/yappy/pdg"
)

// BackwardSlice returns the set of PDG nodes reachable from target along
// outgoing (CD and DD) edges, inclusive of target itself. Implemented as
// DFS with a visited set, grounded on original_source's
// compute_backward_slice stack-based traversal.
func BackwardSlice(target *pdg.Node) map[*pdg.Node]bool {
	visited := map[*pdg.Node]bool{}
	stack := []*pdg.Node{target}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[n] {
			continue
		}
		visited[n] = true

		for _, next := range n.OutgoingNeighbors() {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return visited
}
