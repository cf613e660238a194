package pdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yast "github.com/manishshettym/yappy/ast"
	"github.com/manishshettym/yappy/cfg"
	"github.com/manishshettym/yappy/dataflow"
)

const fooSource = `def foo(x, y, z):
    x = x + 1
    y = y + 2
    a = 0
    for i in range(y):
        if i % 2 == 0:
            z = x + 2
        else:
            z = x + 3
        a = y + 1
    k = bar(z)
    return a
`

func buildFooPDG(t *testing.T) (*cfg.Graph, *Graph, *dataflow.Analysis, *dataflow.Analysis) {
	t.Helper()
	tree, err := yast.Parse([]byte(fooSource))
	require.NoError(t, err)
	yast.AnnotateParents(tree)
	def := yast.FindDef(tree, "foo", yast.DefFunction)
	require.NotNil(t, def)

	cfgGraph := cfg.Build(def, "foo")

	vdu := dataflow.VariableDefUseAnalysis()
	vdu.Visit(cfgGraph, dataflow.DefUseValue{Defs: map[string]bool{}, Uses: map[string]bool{}})

	rd := dataflow.ReachingDefinitionAnalysis()
	rd.Visit(cfgGraph, dataflow.EmptyRDValue())

	g := Build(cfgGraph, vdu, rd)
	return cfgGraph, g, vdu, rd
}

func nodeAtLine(cfgGraph *cfg.Graph, line uint32) *cfg.Node {
	for _, n := range cfgGraph.Nodes {
		if n.Instruction != nil && n.Instruction.StartLine() == line {
			return n
		}
	}
	return nil
}

// TestDataDependenceInvariant: every DD edge B->A
// corresponds to some v with v ∈ uses(B) and (v, A) ∈ RD_in(B).
func TestDataDependenceInvariant(t *testing.T) {
	cfgGraph, g, vdu, rd := buildFooPDG(t)
	_ = cfgGraph

	for _, node := range g.Nodes {
		outVal, ok := vdu.Out(node.CFGNode)
		if !ok {
			continue
		}
		uses := outVal.(dataflow.DefUseValue).Uses

		inVal, ok := rd.In(node.CFGNode)
		require.True(t, ok)
		rdIn := inVal.(dataflow.RDValue)

		for _, edge := range node.OutgoingEdges() {
			if edge.Type != DD {
				continue
			}
			found := false
			for v := range uses {
				if rdIn[dataflow.Definition{Var: v, Node: edge.To.CFGNode}] {
					found = true
					break
				}
			}
			assert.True(t, found, "DD edge from node %d must be backed by a reaching definition", node.CFGNode.ID)
		}
	}
}

func TestDataDependenceEdgeFromCallToZAssignments(t *testing.T) {
	cfgGraph, g, _, _ := buildFooPDG(t)

	call := nodeAtLine(cfgGraph, 11) // k = bar(z)
	require.NotNil(t, call)
	callNode := g.NodeFor(call)
	require.NotNil(t, callNode)

	line7 := nodeAtLine(cfgGraph, 7)
	line9 := nodeAtLine(cfgGraph, 9)

	var targets []*cfg.Node
	for _, n := range callNode.OutgoingNeighbors() {
		targets = append(targets, n.CFGNode)
	}
	assert.Contains(t, targets, line7)
	assert.Contains(t, targets, line9)
}
