package slicer

import "github.com/manishshettym/yappy/callgraph"

// CallChains enumerates every acyclic call chain reaching target: DFS over
// the inverse call graph, starting at target and walking callers, until a
// root (an entity with no recorded callers) is reached. Each returned
// chain is ordered target-first, root-last,
// "[b, a, main]" shape. Cycles are broken by a per-path visited set, so a
// caller already on the current path is skipped rather than revisited.
func CallChains(cg *callgraph.CallGraph, target callgraph.EntityID) [][]callgraph.EntityID {
	var chains [][]callgraph.EntityID

	var dfs func(current callgraph.EntityID, path []callgraph.EntityID, visited map[callgraph.EntityID]bool)
	dfs = func(current callgraph.EntityID, path []callgraph.EntityID, visited map[callgraph.EntityID]bool) {
		callers := cg.Callers(current)
		if len(callers) == 0 {
			chain := make([]callgraph.EntityID, len(path))
			copy(chain, path)
			chains = append(chains, chain)
			return
		}
		for _, caller := range callers {
			if visited[caller] {
				continue
			}
			visited[caller] = true
			dfs(caller, append(path, caller), visited)
			delete(visited, caller)
		}
	}

	dfs(target, []callgraph.EntityID{target}, map[callgraph.EntityID]bool{target: true})
	return chains
}
