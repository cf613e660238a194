package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const callgraphTestSource = `def g():
    return 1


def f():
    return g() + len([1, 2])
`

func TestCallgraphCmdFlags(t *testing.T) {
	projectFlag := callgraphCmd.Flags().Lookup("project")
	require.NotNil(t, projectFlag)
	assert.Equal(t, "", projectFlag.DefValue)

	outDirFlag := callgraphCmd.Flags().Lookup("out-dir")
	require.NotNil(t, outDirFlag)
	assert.Equal(t, ".", outDirFlag.DefValue)
}

func TestCallgraphCmdRun(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "mod.py"), []byte(callgraphTestSource), 0o644))

	outDir := t.TempDir()
	callgraphCmd.SetArgs([]string{"--project", root, "--out-dir", outDir})
	require.NoError(t, callgraphCmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "cg.json"))
	assert.FileExists(t, filepath.Join(outDir, "icg.json"))
}
