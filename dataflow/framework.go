// Package dataflow implements the generic monotone worklist framework
// (parameterised over direction, meet, and transfer) and its two required
// instantiations: variable def/use and reaching-definitions analysis.
package dataflow

import "github.com/manishshettym/yappy/cfg"

// Value is a dataflow lattice element. Hash is used for change detection
// in place of equality, so the framework requires only that lattice
// elements be cheaply hashable.
type Value interface {
	Hash() string
}

// Analysis is one instance of the monotone worklist visitor: label names
// the CFG-node state slots it reads/writes; forward selects direction;
// meet joins the after-values of a node's "before" neighbors; transfer
// computes a node's after-value from its before-value.
type Analysis struct {
	Label    string
	Forward  bool
	Meet     func(previousAfterValues []Value) Value
	Transfer func(node *cfg.Node, before Value) Value
}

func (a *Analysis) beforeLabel() string { return a.Label + "_in" }
func (a *Analysis) afterLabel() string  { return a.Label + "_out" }

// Visit runs the worklist to a fixed point over g, seeded from g.Entry
// (forward analyses) or g.Exit (backward analyses) with initial as the
// before-value where no predecessor/successor has produced one yet.
//
// Algorithm: a deque starts with the seed node. While non-empty, dequeue n;
// collect the after-values of its "before" neighbors (predecessors if
// forward, successors if backward); meet them into a before-value; store
// it; transfer it into an after-value; if the after-value's hash changed,
// enqueue n's "after" neighbors (successors if forward, predecessors if
// backward).
func (a *Analysis) Visit(g *cfg.Graph, initial Value) {
	start := g.Entry
	if !a.Forward {
		start = g.Exit
	}

	queue := []*cfg.Node{start}
	queued := map[*cfg.Node]bool{start: true}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		queued[n] = false

		beforeNodes, afterNodes := a.neighbors(n)

		var previousAfterValues []Value
		for _, b := range beforeNodes {
			if v, ok := b.Label(a.afterLabel()); ok {
				previousAfterValues = append(previousAfterValues, v.(Value))
			}
		}

		beforeValue := initial
		if len(previousAfterValues) > 0 {
			beforeValue = a.Meet(previousAfterValues)
		}
		n.SetLabel(a.beforeLabel(), beforeValue)

		previousHash := ""
		hadPrevious := false
		if v, ok := n.Label(a.afterLabel()); ok {
			previousHash = v.(Value).Hash()
			hadPrevious = true
		}

		afterValue := a.Transfer(n, beforeValue)
		n.SetLabel(a.afterLabel(), afterValue)

		// A node's first after-value always counts as a change, even when
		// its hash is empty (e.g. an empty reaching-definitions set).
		if !hadPrevious || afterValue.Hash() != previousHash {
			for _, next := range afterNodes {
				if !queued[next] {
					queue = append(queue, next)
					queued[next] = true
				}
			}
		}
	}
}

func (a *Analysis) neighbors(n *cfg.Node) (before, after []*cfg.Node) {
	if a.Forward {
		return n.Prev(), n.Next()
	}
	return n.Next(), n.Prev()
}

// In returns the before-value stored on n by this analysis, if any.
func (a *Analysis) In(n *cfg.Node) (Value, bool) {
	v, ok := n.Label(a.beforeLabel())
	if !ok {
		return nil, false
	}
	return v.(Value), true
}

// Out returns the after-value stored on n by this analysis, if any.
func (a *Analysis) Out(n *cfg.Node) (Value, bool) {
	v, ok := n.Label(a.afterLabel())
	if !ok {
		return nil, false
	}
	return v.(Value), true
}
