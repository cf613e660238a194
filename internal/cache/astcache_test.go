package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cacheTestSource = `def f():
    return 1
`

func TestNewASTCacheClampsNonPositiveSize(t *testing.T) {
	c, err := NewASTCache(0)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestGetCachesOnHit(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(file, []byte(cacheTestSource), 0o644))

	c, err := NewASTCache(4)
	require.NoError(t, err)

	first, err := c.Get(file)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	second, err := c.Get(file)
	require.NoError(t, err)
	assert.Same(t, first, second, "a cache hit must return the same parsed tree")
	assert.Equal(t, 1, c.Len())
}

func TestGetMissingFileErrors(t *testing.T) {
	c, err := NewASTCache(4)
	require.NoError(t, err)

	_, err = c.Get(filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}

func TestGetEvictsLeastRecentlyUsed(t *testing.T) {
	dir := t.TempDir()
	fileA := filepath.Join(dir, "a.py")
	fileB := filepath.Join(dir, "b.py")
	fileC := filepath.Join(dir, "c.py")
	for _, f := range []string{fileA, fileB, fileC} {
		require.NoError(t, os.WriteFile(f, []byte(cacheTestSource), 0o644))
	}

	c, err := NewASTCache(2)
	require.NoError(t, err)

	_, err = c.Get(fileA)
	require.NoError(t, err)
	_, err = c.Get(fileB)
	require.NoError(t, err)
	_, err = c.Get(fileC)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
}
