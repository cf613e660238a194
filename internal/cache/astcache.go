// Package cache provides a bounded LRU cache of parsed ASTs, keyed by
// absolute file path, for code that would otherwise reparse the same file
// repeatedly (the orchestration index in package trace resolves the same
// module many times over a large call chain). The call-graph engine parses
// files directly and does not use it.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	yast "github.com/manishshettym/yappy/ast"
)

// ASTCache caches parsed-and-parent-annotated trees by absolute file
// path.
type ASTCache struct {
	trees *lru.Cache[string, *yast.Tree]
}

// NewASTCache creates a cache holding at most size entries. size <= 0 is
// treated as 1 (an LRU of zero capacity is not meaningful).
func NewASTCache(size int) (*ASTCache, error) {
	if size <= 0 {
		size = 1
	}
	trees, err := lru.New[string, *yast.Tree](size)
	if err != nil {
		return nil, err
	}
	return &ASTCache{trees: trees}, nil
}

// Get parses path on a cache miss (annotating parents before caching),
// and returns the cached tree on a hit.
func (c *ASTCache) Get(path string) (*yast.Tree, error) {
	if tree, ok := c.trees.Get(path); ok {
		return tree, nil
	}
	tree, err := yast.ParseFile(path)
	if err != nil {
		return nil, err
	}
	yast.AnnotateParents(tree)
	c.trees.Add(path, tree)
	return tree, nil
}

// Len reports the number of trees currently cached.
func (c *ASTCache) Len() int { return c.trees.Len() }
