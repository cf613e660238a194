package slicer

import yast "github.com/manishshettym/yappy/ast"

// FindCallSite locates, within callerFuncDef's own body (not descending
// into nested function/class definitions or lambdas), the call expression
// for calleeName. Matching rule: (a) a direct name call whose callee name
// equals calleeName; (b) an attribute call obj.m(...) whose attribute
// equals calleeName; (c) a call whose callable sub-expression is itself a
// call matching (a) or (b), recursively. Candidates are considered in
// source order; the first match wins. Grounded on callgraph.resolveCallee's
// identical field-name walk over "function"/"attribute"/"object".
func FindCallSite(callerFuncDef *yast.Node, calleeName string) (*yast.Node, bool) {
	body := callerFuncDef.ChildByFieldName("body")
	if body == nil {
		return nil, false
	}

	var calls []*yast.Node
	collectOwnScopeCalls(body, &calls)

	for _, call := range calls {
		if matchesCallSite(call, calleeName) {
			return call, true
		}
	}
	return nil, false
}

func collectOwnScopeCalls(n *yast.Node, out *[]*yast.Node) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case "function_definition", "class_definition", "lambda":
		return
	case "call":
		*out = append(*out, n)
	}
	for _, c := range n.Children() {
		collectOwnScopeCalls(c, out)
	}
}

func matchesCallSite(call *yast.Node, name string) bool {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return false
	}
	switch fn.Kind() {
	case "identifier":
		return fn.Text() == name
	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		return attr != nil && attr.Text() == name
	case "call":
		return matchesCallSite(fn, name)
	default:
		return false
	}
}
