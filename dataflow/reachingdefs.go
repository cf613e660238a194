package dataflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/manishshettym/yappy/cfg"
)

// Definition is a (variable-name, defining-CFG-node) pair.
type Definition struct {
	Var  string
	Node *cfg.Node
}

// RDValue is a finite set of Definitions reaching a program point.
type RDValue map[Definition]bool

func (v RDValue) Hash() string {
	keys := make([]string, 0, len(v))
	for d := range v {
		keys = append(keys, fmt.Sprintf("%s@%d", d.Var, d.Node.ID))
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func (v RDValue) clone() RDValue {
	out := make(RDValue, len(v))
	for d := range v {
		out[d] = true
	}
	return out
}

// EmptyRDValue is the initial value at function entry: the empty set.
func EmptyRDValue() RDValue { return RDValue{} }

// ReachingDefinitionAnalysis computes, at each program point, the set of
// (variable, defining-node) pairs that may reach it: label "reaching_def",
// forward, meet is set union, and each WRITE of a variable v at a node
// replaces every existing pair for v with the single pair (v, node).
func ReachingDefinitionAnalysis() *Analysis {
	return &Analysis{
		Label:   "reaching_def",
		Forward: true,
		Meet: func(previous []Value) Value {
			union := RDValue{}
			for _, v := range previous {
				for d := range v.(RDValue) {
					union[d] = true
				}
			}
			return union
		},
		Transfer: func(n *cfg.Node, before Value) Value {
			out := before.(RDValue).clone()
			for _, access := range n.Accesses() {
				if !access.IsWrite() {
					continue
				}
				for d := range out {
					if d.Var == access.Name {
						delete(out, d)
					}
				}
				out[Definition{Var: access.Name, Node: n}] = true
			}
			return out
		},
	}
}
