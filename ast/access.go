package ast

// AccessKind tags an Access as a read or a write of a variable.
type AccessKind int

const (
	Read AccessKind = iota
	Write
)

// Access is the tagged-variant representation of a single variable touch
// within a statement: either a Read(name) or a Write(name). It replaces the
// heterogeneous upstream shape (a bare name node with a context tag, or a
// (kind, name-node, extra) triple) with one uniform type; ExtractAccesses is
// the single extractor that performs that conversion.
type Access struct {
	Kind AccessKind
	Name string
}

func (a Access) IsWrite() bool { return a.Kind == Write }
func (a Access) IsRead() bool  { return a.Kind == Read }

// ExtractAccesses returns every variable access within stmt: assignment
// targets as writes, everything else (including the right-hand side of
// assignments, conditions, call arguments, return values) as reads. It does
// not descend into nested function/class bodies — those are separate
// statements with their own CFG nodes.
func ExtractAccesses(stmt *Node) []Access {
	var out []Access
	collectAccesses(stmt, false, &out)
	return out
}

// collectAccesses walks n. writeCtx is true while descending into an
// assignment target; identifiers found there are writes, everything else is
// a read.
func collectAccesses(n *Node, writeCtx bool, out *[]Access) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case "function_definition", "class_definition", "lambda":
		// Nested scopes are not part of this statement's local effect.
		return

	case "identifier":
		if writeCtx {
			*out = append(*out, Access{Kind: Write, Name: n.Text()})
		} else {
			*out = append(*out, Access{Kind: Read, Name: n.Text()})
		}
		return

	case "attribute":
		// obj.attr: obj is read (or written, in a writeCtx target); attr is
		// a property name, not a variable.
		if obj := n.ChildByFieldName("object"); obj != nil {
			collectAccesses(obj, writeCtx, out)
		}
		return

	case "subscript":
		// obj[idx] = ...: obj and idx are always reads, even when the
		// subscript itself is an assignment target (you read obj to index
		// into it; you don't bind a name called obj).
		if v := n.ChildByFieldName("value"); v != nil {
			collectAccesses(v, false, out)
		}
		for _, c := range n.Children() {
			if c.Kind() == "[" || c.Kind() == "]" || c == n.ChildByFieldName("value") {
				continue
			}
			collectAccesses(c, false, out)
		}
		return

	case "assignment":
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		collectAccesses(left, true, out)
		collectAccesses(right, false, out)
		return

	case "augmented_assignment":
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		// x += 1 both reads and writes x.
		collectAccesses(left, false, out)
		collectAccesses(left, true, out)
		collectAccesses(right, false, out)
		return

	case "keyword_argument":
		// name=value in a call: name is a parameter label, not a variable.
		if v := n.ChildByFieldName("value"); v != nil {
			collectAccesses(v, false, out)
		}
		return

	case "tuple_pattern", "list_pattern", "pattern_list":
		for _, c := range n.Children() {
			collectAccesses(c, writeCtx, out)
		}
		return
	}

	for _, c := range n.Children() {
		collectAccesses(c, writeCtx, out)
	}
}
