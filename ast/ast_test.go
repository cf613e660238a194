package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func parseFoo(t *testing.T) *Tree {
	t.Helper()
	tree, err := Parse([]byte(fooSource))
	require.NoError(t, err)
	AnnotateParents(tree)
	return tree
}

func TestParseAndAnnotateParents(t *testing.T) {
	tree := parseFoo(t)
	require.NotNil(t, tree.Root)
	assert.Nil(t, tree.Root.Parent, "root has no parent")

	def := FindDef(tree, "foo", DefFunction)
	require.NotNil(t, def)
	require.NotNil(t, def.Parent)
	assert.Same(t, tree.Root, rootOf(def))
}

func rootOf(n *Node) *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

func TestFindDef(t *testing.T) {
	tree := parseFoo(t)

	def := FindDef(tree, "foo", DefFunction)
	require.NotNil(t, def)
	assert.Equal(t, "function_definition", def.Kind())

	assert.Nil(t, FindDef(tree, "nope", ""))
	assert.Nil(t, FindDef(tree, "foo", DefClass))
}

func TestFindAllDefsReturnsDuplicates(t *testing.T) {
	tree, err := Parse([]byte("def f():\n    return 1\ndef f():\n    return 2\n"))
	require.NoError(t, err)

	defs := FindAllDefs(tree, "f", DefFunction)
	assert.Len(t, defs, 2)
}

func TestExtractArguments(t *testing.T) {
	tree := parseFoo(t)
	def := FindDef(tree, "foo", DefFunction)
	args := ExtractArguments(def)

	require.Len(t, args, 3)
	assert.Equal(t, "x", args[0].Name)
	assert.Equal(t, "y", args[1].Name)
	assert.Equal(t, "z", args[2].Name)
	for _, a := range args {
		assert.Equal(t, ArgPositional, a.Kind)
	}
}

func TestExtractArgumentsVariants(t *testing.T) {
	tree, err := Parse([]byte("def g(a, b: int, c=1, *args, d, e=2, **kwargs):\n    pass\n"))
	require.NoError(t, err)
	def := FindDef(tree, "g", DefFunction)
	args := ExtractArguments(def)

	byName := map[string]Argument{}
	for _, a := range args {
		byName[a.Name] = a
	}

	assert.Equal(t, ArgPositional, byName["a"].Kind)
	assert.Equal(t, "int", byName["b"].Type)
	assert.Equal(t, "1", byName["c"].Default)
	assert.Equal(t, ArgVarArgs, byName["args"].Kind)
	assert.Equal(t, ArgKeywordOnly, byName["d"].Kind)
	assert.Equal(t, ArgKeywordOnly, byName["e"].Kind)
	assert.Equal(t, ArgVarKwargs, byName["kwargs"].Kind)
}

func TestExtractBodyDropsDocstring(t *testing.T) {
	tree, err := Parse([]byte("def f():\n    \"\"\"doc\"\"\"\n    return 1\n"))
	require.NoError(t, err)
	def := FindDef(tree, "f", DefFunction)
	body := ExtractBody(def)
	assert.NotContains(t, body, "doc")
	assert.Contains(t, body, "return 1")
}

func TestExtractAccessesAssignment(t *testing.T) {
	tree, err := Parse([]byte("x = x + 1\n"))
	require.NoError(t, err)
	stmt := tree.Root.Child(0)
	accesses := ExtractAccesses(stmt)

	var writes, reads []string
	for _, a := range accesses {
		if a.IsWrite() {
			writes = append(writes, a.Name)
		} else {
			reads = append(reads, a.Name)
		}
	}
	assert.Equal(t, []string{"x"}, writes)
	assert.Contains(t, reads, "x")
}

func TestExtractAccessesSubscriptIsRead(t *testing.T) {
	tree, err := Parse([]byte("a[i] = v\n"))
	require.NoError(t, err)
	stmt := tree.Root.Child(0)
	accesses := ExtractAccesses(stmt)

	names := map[string]AccessKind{}
	for _, a := range accesses {
		names[a.Name] = a.Kind
	}
	assert.Equal(t, Read, names["a"])
	assert.Equal(t, Read, names["i"])
	assert.Equal(t, Read, names["v"])
}
