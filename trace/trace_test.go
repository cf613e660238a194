package trace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/output"
)

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

const callerFile = `def h(x):
    return x + 1


def caller(p):
    q = h(p)
    return q
`

func TestArgumentBackwardTrace(t *testing.T) {
	root := writeRepo(t, map[string]string{"mod.py": callerFile})

	conf := config.Default()
	conf.MaxIter = 10
	result, err := ArgumentBackwardTrace(context.Background(), root, filepath.Join(root, "mod.py"), "caller", conf, output.NewLogger(output.VerbosityDefault))
	require.NoError(t, err)
	require.Len(t, result.Params, 1)

	pt := result.Params[0]
	assert.Equal(t, "p", pt.Param)
	assert.Equal(t, 6, pt.FirstUseLine) // "q = h(p)"
	assert.NotNil(t, pt.Slice)
	assert.NotEmpty(t, pt.Slice.Nodes)
}

func TestListCallChains(t *testing.T) {
	root := writeRepo(t, map[string]string{"mod.py": callerFile})
	ctx := context.Background()

	cg, _, err := callgraph.Construct(ctx, callgraph.PythonEngine{}, root, 10, nil)
	require.NoError(t, err)

	chains := ListCallChains(cg, "mod.h")
	require.NotEmpty(t, chains)
	assert.Equal(t, callgraph.EntityID("mod.h"), chains[0][0])
}
