package ast

import "strings"

// DefKind restricts FindDef/FindAllDefs to a particular definition shape.
// The empty DefKind matches both.
type DefKind string

const (
	DefFunction DefKind = "function"
	DefClass    DefKind = "class"
)

func kindMatches(nodeKind string, want DefKind) bool {
	switch want {
	case "":
		return nodeKind == "function_definition" || nodeKind == "class_definition"
	case DefFunction:
		return nodeKind == "function_definition"
	case DefClass:
		return nodeKind == "class_definition"
	default:
		return false
	}
}

func defName(n *Node) (string, bool) {
	if n.Kind() != "function_definition" && n.Kind() != "class_definition" {
		return "", false
	}
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return "", false
	}
	return nameNode.Text(), true
}

// FindDef returns the first function/class definition named name, or nil.
// kind restricts the search to DefFunction or DefClass; the zero value
// matches either.
func FindDef(tree *Tree, name string, kind DefKind) *Node {
	var found *Node
	Walk(tree.Root, func(n *Node) {
		if found != nil {
			return
		}
		if !kindMatches(n.Kind(), kind) {
			return
		}
		if got, ok := defName(n); ok && got == name {
			found = n
		}
	})
	return found
}

// FindAllDefs returns every function/class definition named name, in source
// order. Duplicate names within a file are allowed by the source language
// and are all returned here; callers that want a single definition for a
// duplicated name should use the first result.
func FindAllDefs(tree *Tree, name string, kind DefKind) []*Node {
	var found []*Node
	Walk(tree.Root, func(n *Node) {
		if !kindMatches(n.Kind(), kind) {
			return
		}
		if got, ok := defName(n); ok && got == name {
			found = append(found, n)
		}
	})
	return found
}

// ArgKind classifies a single parameter descriptor.
type ArgKind string

const (
	ArgPositional  ArgKind = "positional"
	ArgKeywordOnly ArgKind = "keyword_only"
	ArgVarArgs     ArgKind = "var_args"   // *args
	ArgVarKwargs   ArgKind = "var_kwargs" // **kwargs
)

// Argument describes one parameter of a function definition.
type Argument struct {
	Name    string
	Type    string // annotation text, empty if none
	Default string // default-value text, empty if none
	Kind    ArgKind
}

// ExtractArguments returns the ordered parameter descriptors of funcDef.
// funcDef must be a function_definition node.
func ExtractArguments(funcDef *Node) []Argument {
	params := funcDef.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var args []Argument
	seenStar := false
	for _, c := range params.Children() {
		switch c.Kind() {
		case "identifier":
			kind := ArgPositional
			if seenStar {
				kind = ArgKeywordOnly
			}
			args = append(args, Argument{Name: c.Text(), Kind: kind})
		case "typed_parameter":
			name, typ := splitTypedParameter(c)
			kind := ArgPositional
			if seenStar {
				kind = ArgKeywordOnly
			}
			args = append(args, Argument{Name: name, Type: typ, Kind: kind})
		case "default_parameter":
			name, def := splitDefaultParameter(c)
			kind := ArgPositional
			if seenStar {
				kind = ArgKeywordOnly
			}
			args = append(args, Argument{Name: name, Default: def, Kind: kind})
		case "typed_default_parameter":
			nameNode := c.ChildByFieldName("name")
			typeNode := c.ChildByFieldName("type")
			valueNode := c.ChildByFieldName("value")
			a := Argument{Kind: ArgPositional}
			if seenStar {
				a.Kind = ArgKeywordOnly
			}
			if nameNode != nil {
				a.Name = nameNode.Text()
			}
			if typeNode != nil {
				a.Type = typeNode.Text()
			}
			if valueNode != nil {
				a.Default = valueNode.Text()
			}
			args = append(args, a)
		case "list_splat_pattern":
			seenStar = true
			args = append(args, Argument{Name: splatName(c), Kind: ArgVarArgs})
		case "dictionary_splat_pattern":
			args = append(args, Argument{Name: splatName(c), Kind: ArgVarKwargs})
		case "*":
			// bare "*" marker introducing keyword-only parameters, no name.
			seenStar = true
		}
	}
	return args
}

func splatName(splat *Node) string {
	for _, c := range splat.Children() {
		if c.Kind() == "identifier" {
			return c.Text()
		}
	}
	return strings.TrimLeft(strings.TrimLeft(splat.Text(), "*"), "*")
}

func splitTypedParameter(n *Node) (name, typ string) {
	// typed_parameter has no "name" field: the name is its first child.
	typeNode := n.ChildByFieldName("type")
	if first := n.Child(0); first != nil {
		if first.Kind() == "identifier" {
			name = first.Text()
		} else {
			name = splatName(first)
		}
	}
	if typeNode != nil {
		typ = typeNode.Text()
	}
	return
}

func splitDefaultParameter(n *Node) (name, def string) {
	nameNode := n.ChildByFieldName("name")
	valueNode := n.ChildByFieldName("value")
	if nameNode != nil {
		name = nameNode.Text()
	}
	if valueNode != nil {
		def = valueNode.Text()
	}
	return
}

// ExtractBody returns the textual body of funcDef with any leading
// docstring-only expression statement dropped.
func ExtractBody(funcDef *Node) string {
	block := funcDef.ChildByFieldName("body")
	if block == nil {
		return ""
	}
	stmts := block.Children()
	start := 0
	if len(stmts) > 0 && isDocstringStatement(stmts[0]) {
		start = 1
	}
	if start >= len(stmts) {
		return ""
	}
	var b strings.Builder
	for i := start; i < len(stmts); i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(stmts[i].Text())
	}
	return b.String()
}

func isDocstringStatement(n *Node) bool {
	if n.Kind() != "expression_statement" || n.ChildCount() == 0 {
		return false
	}
	return n.Child(0).Kind() == "string"
}
