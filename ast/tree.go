// Package ast wraps the tree-sitter concrete syntax tree for the source
// language behind a small, opaque labeled-tree interface. Everything
// downstream (call-graph construction, CFG building, dataflow, PDG,
// slicing) depends only on this interface, never on tree-sitter directly.
package ast

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Node is one labeled node of a parsed source file. It is built once, eagerly,
// from the underlying tree-sitter node and never mutated except by
// AnnotateParents, which fills in Parent back-pointers.
type Node struct {
	raw      *sitter.Node
	source   []byte
	children []*Node
	Parent   *Node
}

// Tree is a parsed source file: its root node plus the source bytes every
// node's Text/positions are relative to.
type Tree struct {
	Root   *Node
	Source []byte
	Path   string
}

// Parse parses source text into a Tree. The returned tree's nodes do not yet
// carry Parent back-pointers; call AnnotateParents for that.
func Parse(source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	defer parser.Close()

	raw, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("ast: parse: %w", err)
	}
	defer raw.Close()

	root := buildNode(raw.RootNode(), source)
	return &Tree{Root: root, Source: source}, nil
}

// ParseFile reads and parses a source file from disk.
func ParseFile(path string) (*Tree, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ast: read %s: %w", path, err)
	}
	tree, err := Parse(source)
	if err != nil {
		return nil, fmt.Errorf("ast: parse %s: %w", path, err)
	}
	tree.Path = path
	return tree, nil
}

// buildNode eagerly materializes the tree-sitter subtree rooted at raw into
// our own Node tree. Children are built depth-first so ChildCount/Child are
// O(1) afterwards.
func buildNode(raw *sitter.Node, source []byte) *Node {
	n := &Node{raw: raw, source: source}
	count := int(raw.ChildCount())
	if count == 0 {
		return n
	}
	n.children = make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		n.children = append(n.children, buildNode(raw.Child(i), source))
	}
	return n
}

// AnnotateParents walks tree and sets every non-root node's Parent
// back-pointer. It is idempotent and returns tree for chaining.
func AnnotateParents(tree *Tree) *Tree {
	annotate(tree.Root, nil)
	return tree
}

func annotate(n *Node, parent *Node) {
	n.Parent = parent
	for _, c := range n.children {
		annotate(c, n)
	}
}

// Kind is the tree-sitter node type, e.g. "function_definition", "call".
func (n *Node) Kind() string { return n.raw.Type() }

// Text is the node's source text.
func (n *Node) Text() string { return n.raw.Content(n.source) }

// StartLine is the 1-indexed source line the node begins on.
func (n *Node) StartLine() uint32 { return n.raw.StartPoint().Row + 1 }

// EndLine is the 1-indexed source line the node ends on.
func (n *Node) EndLine() uint32 { return n.raw.EndPoint().Row + 1 }

// StartByte/EndByte delimit the node's source-text span.
func (n *Node) StartByte() uint32 { return n.raw.StartByte() }
func (n *Node) EndByte() uint32   { return n.raw.EndByte() }

// ChildCount is the number of direct children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i'th direct child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns all direct children in source order.
func (n *Node) Children() []*Node { return n.children }

// ChildByFieldName returns the direct child bound to the given grammar field,
// or nil if none matches (mirrors tree-sitter's field lookup).
func (n *Node) ChildByFieldName(name string) *Node {
	field := n.raw.ChildByFieldName(name)
	if field == nil {
		return nil
	}
	for _, c := range n.children {
		if c.raw == field {
			return c
		}
	}
	return nil
}

// Walk calls visit for n and every descendant, pre-order.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.children {
		Walk(c, visit)
	}
}
