package dataflow

import (
	"sort"
	"strings"

	"github.com/manishshettym/yappy/cfg"
)

// DefUseValue is the local {defs, uses} effect of a single CFG node.
type DefUseValue struct {
	Defs map[string]bool
	Uses map[string]bool
}

func (v DefUseValue) Hash() string {
	return "defs:" + joinSortedKeys(v.Defs) + "|uses:" + joinSortedKeys(v.Uses)
}

func joinSortedKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// VariableDefUseAnalysis answers "what does this single statement read or
// write": label "var_def_use", forward direction. Its after-value is the
// node's local effect only — it is not a forward accumulation. Meet still
// implements a union of incoming {defs, uses}, purely to satisfy the
// framework's interface uniformly; transfer ignores its before-value.
func VariableDefUseAnalysis() *Analysis {
	return &Analysis{
		Label:   "var_def_use",
		Forward: true,
		Meet: func(previous []Value) Value {
			defs := map[string]bool{}
			uses := map[string]bool{}
			for _, v := range previous {
				duv := v.(DefUseValue)
				for d := range duv.Defs {
					defs[d] = true
				}
				for u := range duv.Uses {
					uses[u] = true
				}
			}
			return DefUseValue{Defs: defs, Uses: uses}
		},
		Transfer: func(n *cfg.Node, _ Value) Value {
			defs := map[string]bool{}
			uses := map[string]bool{}
			for _, access := range n.Accesses() {
				if access.IsWrite() {
					defs[access.Name] = true
				} else {
					uses[access.Name] = true
				}
			}
			return DefUseValue{Defs: defs, Uses: uses}
		},
	}
}
