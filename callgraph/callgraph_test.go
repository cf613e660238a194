package callgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// TestCallGraphResolvesLocalAndCrossModuleCallees: a.py defines f calling local g
// and imported h from b.py, plus builtin len; classifications are LOCAL,
// EXTERNAL, BUILTIN respectively.
func TestCallGraphResolvesLocalAndCrossModuleCallees(t *testing.T) {
	root := writeRepo(t, map[string]string{
		"a.py": "from b import h\n\ndef g():\n    return 1\n\ndef f():\n    g()\n    h()\n    len([1, 2])\n",
		"b.py": "def h():\n    return 2\n",
	})

	ctx := context.Background()
	g, _, err := Construct(ctx, PythonEngine{}, root, 10, nil)
	require.NoError(t, err)

	callees := g.Callees("a.f")
	require.Len(t, callees, 3)

	kindOf := func(id EntityID) Kind { return g.Entity(id).Kind }
	assert.Equal(t, LOCAL, kindOf("a.g"))
	assert.Equal(t, EXTERNAL, kindOf("b.h"))
	assert.Equal(t, BUILTIN, kindOf(EntityID("len."+builtinMarker)))
}

func TestInverseIsDerivedFromForward(t *testing.T) {
	root := writeRepo(t, map[string]string{
		"a.py": "def g():\n    return 1\n\ndef f():\n    g()\n",
	})
	g, _, err := Construct(context.Background(), PythonEngine{}, root, 10, nil)
	require.NoError(t, err)

	for _, pair := range g.Pairs() {
		for _, callee := range pair.Callees {
			assert.Contains(t, g.Callers(callee), pair.Caller)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	dict := map[string][]string{
		"a.f": {"a.g", "b.h"},
		"a.g": {"len.<builtin>"},
	}
	g := Load(nil, dict)
	assert.Equal(t, dict, g.ToDict())
}

func TestSimpleName(t *testing.T) {
	assert.Equal(t, "foo", SimpleName("a.b.foo"))
	assert.Equal(t, "Foo", SimpleName("a.b.Foo.__init__"))
	assert.Equal(t, "outer", SimpleName("a.outer.<lambda>"))
}
