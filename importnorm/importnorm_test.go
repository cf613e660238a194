package importnorm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manishshettym/yappy/output"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestResolveRelativeModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "__init__.py"), "")
	writeFile(t, filepath.Join(root, "pkg", "sub", "__init__.py"), "")
	mod := filepath.Join(root, "pkg", "sub", "mod.py")
	writeFile(t, mod, "")

	tests := []struct {
		name     string
		module   string
		expected string
	}{
		{"single dot with subpath", ".sibling", "pkg.sub.sibling"},
		{"single dot alone", ".", "pkg.sub"},
		{"double dot goes up one package", "..other", "pkg.other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveRelativeModule(mod, tt.module))
		})
	}
}

func TestResolveModuleToFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pkg", "mod.py"), "")
	writeFile(t, filepath.Join(root, "pkg", "sub", "__init__.py"), "")

	file, ok := resolveModuleToFile(root, "pkg.mod")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "pkg", "mod.py"), file)

	file, ok = resolveModuleToFile(root, "pkg.sub")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "pkg", "sub", "__init__.py"), file)

	_, ok = resolveModuleToFile(root, "pkg.missing")
	assert.False(t, ok)
}

func TestModuleMembers(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "mod.py")
	writeFile(t, file, "def foo():\n    pass\n\n\nclass Bar:\n    pass\n")

	members, err := moduleMembers(file)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"foo", "Bar"}, members)
}

func TestNormalizeRepoRewritesWildcardAndRelativeImports(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	writeFile(t, filepath.Join(repo, "pkg", "__init__.py"), "")
	writeFile(t, filepath.Join(repo, "pkg", "helpers.py"), "def helper():\n    pass\n")
	writeFile(t, filepath.Join(repo, "pkg", "mod.py"), "from .helpers import *\n")

	res, err := NormalizeRepo(repo, "_norm_test", output.NewLogger(output.VerbosityDefault))
	require.NoError(t, err)
	require.Empty(t, res.Skipped)
	defer os.RemoveAll(res.TempRoot)

	rewritten, err := os.ReadFile(filepath.Join(res.TempRoot, "pkg", "mod.py"))
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "from pkg.helpers import helper")

	_, err = os.Stat(repo)
	assert.NoError(t, err, "the original repository must be left untouched")
}
