package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const argtraceTestSource = `def h(x):
    return x + 1


def caller(p):
    q = h(p)
    return q
`

func TestArgtraceCmdFlags(t *testing.T) {
	require.NotNil(t, argtraceCmd.Flags().Lookup("project"))
	require.NotNil(t, argtraceCmd.Flags().Lookup("file"))
	require.NotNil(t, argtraceCmd.Flags().Lookup("function"))
}

func TestArgtraceCmdRun(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "mod.py")
	require.NoError(t, os.WriteFile(file, []byte(argtraceTestSource), 0o644))

	argtraceCmd.SetArgs([]string{"--project", root, "--file", file, "--function", "caller"})
	require.NoError(t, argtraceCmd.Execute())
}
