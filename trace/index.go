// Package trace implements orchestration (C9): given a repository and a
// function, build the repo call graph and compute interprocedural
// backward slices rooted at a function's parameters, or list every call
// chain reaching a chosen entity.
package trace

import (
	"strings"

	yast "github.com/manishshettym/yappy/ast"
	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/cfg"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/dataflow"
	"github.com/manishshettym/yappy/internal/cache"
	"github.com/manishshettym/yappy/pdg"
)

// Index resolves entity ids to parsed function definitions and their
// built PDGs, analyzing each function lazily and at most once. It
// implements slicer.FuncLookup via its Lookup method. File parses are
// shared through an LRU cache.ASTCache, since a large call chain can
// revisit the same module many times; a file evicted from it is parsed
// again on its next use.
type Index struct {
	cg    *callgraph.CallGraph
	trees *cache.ASTCache
	cache map[callgraph.EntityID]*entry
}

type entry struct {
	def   *yast.Node
	graph *pdg.Graph
}

// NewIndex creates an Index backed by cg (used to resolve an entity's
// module file), with an AST cache sized per conf.
func NewIndex(cg *callgraph.CallGraph, conf config.Config) *Index {
	trees, err := cache.NewASTCache(conf.CacheSize)
	if err != nil {
		trees, _ = cache.NewASTCache(1)
	}
	return &Index{cg: cg, trees: trees, cache: map[callgraph.EntityID]*entry{}}
}

// seed pre-populates the cache for id with an already-built def/graph
// pair, avoiding a redundant re-parse when the caller has already parsed
// the entry function itself.
func (idx *Index) seed(id callgraph.EntityID, def *yast.Node, graph *pdg.Graph) {
	idx.cache[id] = &entry{def: def, graph: graph}
}

// Lookup implements slicer.FuncLookup: it resolves id to its module file
// via the call graph's entity metadata, parses that file if not already
// cached, locates the matching function_definition by its owner chain,
// and builds (and caches) its CFG/dataflow/PDG.
func (idx *Index) Lookup(id callgraph.EntityID) (*yast.Node, *pdg.Graph, bool) {
	if e, ok := idx.cache[id]; ok {
		return e.def, e.graph, true
	}

	ent := idx.cg.Entity(id)
	if !ent.Module.Exists() {
		return nil, nil, false
	}

	tree, err := idx.trees.Get(ent.Module.File)
	if err != nil {
		return nil, nil, false
	}

	var found *yast.Node
	yast.Walk(tree.Root, func(n *yast.Node) {
		if found != nil || n.Kind() != "function_definition" {
			return
		}
		if ownerEntityID(n, ent.Module.Path) == id {
			found = n
		}
	})
	if found == nil {
		return nil, nil, false
	}

	graph := buildPDGFor(found, string(id))
	idx.cache[id] = &entry{def: found, graph: graph}
	return found, graph, true
}

// buildPDGFor runs the CFG -> dataflow -> PDG pipeline for funcDef,
// identified by functionID.
func buildPDGFor(funcDef *yast.Node, functionID string) *pdg.Graph {
	cfgGraph := cfg.Build(funcDef, functionID)

	vdu := dataflow.VariableDefUseAnalysis()
	vdu.Visit(cfgGraph, dataflow.DefUseValue{Defs: map[string]bool{}, Uses: map[string]bool{}})

	rd := dataflow.ReachingDefinitionAnalysis()
	rd.Visit(cfgGraph, dataflow.EmptyRDValue())

	return pdg.Build(cfgGraph, vdu, rd)
}

// ownerEntityID builds funcDef's dotted entity id by walking its ancestor
// chain of enclosing function/class definitions, prefixed by
// moduleDotted. Mirrors callgraph.PythonEngine's identical walk.
func ownerEntityID(funcDef *yast.Node, moduleDotted string) callgraph.EntityID {
	var chain []string
	for cur := funcDef; cur != nil; cur = cur.Parent {
		if cur.Kind() != "function_definition" && cur.Kind() != "class_definition" {
			continue
		}
		nameNode := cur.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		chain = append([]string{nameNode.Text()}, chain...)
	}
	if moduleDotted == "" {
		return callgraph.EntityID(strings.Join(chain, "."))
	}
	return callgraph.EntityID(moduleDotted + "." + strings.Join(chain, "."))
}
