package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yast "github.com/manishshettym/yappy/ast"
	"github.com/manishshettym/yappy/cfg"
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

func buildFoo(t *testing.T) *cfg.Graph {
	t.Helper()
	tree, err := yast.Parse([]byte(fooSource))
	require.NoError(t, err)
	yast.AnnotateParents(tree)
	def := yast.FindDef(tree, "foo", yast.DefFunction)
	require.NotNil(t, def)
	return cfg.Build(def, "foo")
}

func nodeAtLine(g *cfg.Graph, line uint32) *cfg.Node {
	for _, n := range g.Nodes {
		if n.Instruction != nil && n.Instruction.StartLine() == line {
			return n
		}
	}
	return nil
}

// TestReachingDefinitionsAtCallSite: RD_in at "k = bar(z)" contains
// (z, line 7) and (z, line 9) but not (z, parameter).
func TestReachingDefinitionsAtCallSite(t *testing.T) {
	g := buildFoo(t)

	vdu := VariableDefUseAnalysis()
	vdu.Visit(g, DefUseValue{Defs: map[string]bool{}, Uses: map[string]bool{}})

	rd := ReachingDefinitionAnalysis()
	rd.Visit(g, EmptyRDValue())

	callStmt := nodeAtLine(g, 11)
	require.NotNil(t, callStmt, "expected a CFG node for 'k = bar(z)'")

	in, ok := rd.In(callStmt)
	require.True(t, ok)
	rdIn := in.(RDValue)

	line7 := nodeAtLine(g, 7)
	line9 := nodeAtLine(g, 9)
	require.NotNil(t, line7)
	require.NotNil(t, line9)

	assert.True(t, rdIn[Definition{Var: "z", Node: line7}])
	assert.True(t, rdIn[Definition{Var: "z", Node: line9}])

	for d := range rdIn {
		if d.Var == "z" {
			assert.NotEqual(t, g.Entry, d.Node, "z should not reach from the parameter/entry definition")
		}
	}
}

func TestVariableDefUseLocalEffect(t *testing.T) {
	g := buildFoo(t)
	vdu := VariableDefUseAnalysis()
	vdu.Visit(g, DefUseValue{Defs: map[string]bool{}, Uses: map[string]bool{}})

	assignY := nodeAtLine(g, 3) // y = y + 2
	require.NotNil(t, assignY)

	out, ok := vdu.Out(assignY)
	require.True(t, ok)
	duv := out.(DefUseValue)
	assert.True(t, duv.Defs["y"])
	assert.True(t, duv.Uses["y"])
}
