package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yast "github.com/manishshettym/yappy/ast"
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

func buildFoo(t *testing.T) *Graph {
	t.Helper()
	tree, err := yast.Parse([]byte(fooSource))
	require.NoError(t, err)
	yast.AnnotateParents(tree)
	def := yast.FindDef(tree, "foo", yast.DefFunction)
	require.NotNil(t, def)
	return Build(def, "foo")
}

func TestBuildConnectsEntryAndExit(t *testing.T) {
	g := buildFoo(t)
	assert.NotEmpty(t, g.Entry.Next())
	assert.NotEmpty(t, g.Exit.Prev())
}

// Invariant: every node post-dominates itself, and every
// exit node's post-dominator set is exactly {exit}.
func TestPostDominatorsInvariants(t *testing.T) {
	g := buildFoo(t)
	pdom := PostDominators(g)

	for _, n := range g.Nodes {
		assert.True(t, pdom[n][n], "node %d should post-dominate itself", n.ID)
	}
	assert.True(t, pdom[g.Exit].equal(newNodeSet(g.Exit)))
}

// Invariant: for a node n with IPD m, every other
// post-dominator d of n also post-dominates m.
func TestImmediatePostDominatorInvariant(t *testing.T) {
	g := buildFoo(t)
	pdom := PostDominators(g)
	ipd := ImmediatePostDominator(g.Nodes, pdom)

	for n, m := range ipd {
		others := pdom[n].clone()
		delete(others, n)
		delete(others, m)
		for d := range others {
			assert.True(t, pdom[m][d], "ipd invariant violated for node %d", n.ID)
		}
	}
}

func TestIfStatementBranchesMerge(t *testing.T) {
	g := buildFoo(t)
	pdom := PostDominators(g)

	var condNode *Node
	for _, n := range g.Nodes {
		if n.Type == BlockConditional && n.Instruction != nil && n.Instruction.Kind() == "if_statement" {
			condNode = n
		}
	}
	require.NotNil(t, condNode)
	assert.Len(t, condNode.Next(), 2, "if condition has a then and an else successor")
	assert.True(t, pdom[condNode][condNode])
}
