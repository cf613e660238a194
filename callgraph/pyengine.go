package callgraph

import (
	"context"
	"strings"

	yast "github.com/manishshettym/yappy/ast"
)

// pythonBuiltins is a representative (not exhaustive) set of names the
// language provides without any import, used to mark BUILTIN callees.
var pythonBuiltins = map[string]bool{
	"len": true, "range": true, "print": true, "str": true, "int": true,
	"float": true, "bool": true, "list": true, "dict": true, "set": true,
	"tuple": true, "open": true, "enumerate": true, "zip": true, "map": true,
	"filter": true, "sorted": true, "sum": true, "min": true, "max": true,
	"abs": true, "isinstance": true, "issubclass": true, "super": true,
	"type": true, "repr": true, "hasattr": true, "getattr": true,
	"setattr": true, "iter": true, "next": true, "format": true, "vars": true,
}

// PythonEngine is the shipped default Engine: an AST-driven call-graph
// builder for Python source, walking the tree-sitter-python parse tree and
// resolving imports against the files under the scanned root. It is the one
// concrete implementation of Engine that Construct is exercised against;
// callers may substitute another Engine (e.g. a wrapper around a more
// precise third-party tool) without touching Construct.
type PythonEngine struct{}

func (PythonEngine) BuildCallGraph(_ context.Context, root string, files []string, maxIter int) (map[string][]string, error) {
	raw := map[string][]string{}
	for _, file := range files {
		tree, err := yast.ParseFile(file)
		if err != nil {
			// A single unparsable file does not fail the whole build;
			// it is simply absent from the graph.
			continue
		}
		yast.AnnotateParents(tree)

		moduleDotted := moduleDottedPath(root, file)
		imports := importsOf(tree)
		localDefs := topLevelDefNames(tree)

		yast.Walk(tree.Root, func(n *yast.Node) {
			if n.Kind() != "function_definition" {
				return
			}
			owner := ownerEntityID(n, moduleDotted)
			selfClass := nearestEnclosingClass(n)

			var calls []*yast.Node
			if body := n.ChildByFieldName("body"); body != nil {
				collectCalls(body, &calls)
			}
			for _, call := range calls {
				callee := resolveCallee(call, imports, localDefs, moduleDotted, selfClass, maxIter)
				if callee == "" {
					continue
				}
				raw[string(owner)] = append(raw[string(owner)], string(callee))
			}
		})
	}
	return raw, nil
}

// collectCalls gathers every "call" node within n's own function scope,
// not descending into nested function/class definitions or lambdas (those
// calls belong to their own, separately-visited, owner entity).
func collectCalls(n *yast.Node, out *[]*yast.Node) {
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
		collectCalls(c, out)
	}
}

// ownerEntityID builds the dotted entity id of the function_definition
// node funcDef, by walking its ancestor chain of enclosing
// function/class definitions.
func ownerEntityID(funcDef *yast.Node, moduleDotted string) EntityID {
	var chain []string
	for cur := funcDef; cur != nil; cur = cur.Parent {
		if cur.Kind() != "function_definition" && cur.Kind() != "class_definition" {
			continue
		}
		nameNode := cur.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		chain = append([]string{nameNode.Text()}, chain...)
	}
	if moduleDotted == "" {
		return EntityID(strings.Join(chain, "."))
	}
	return EntityID(moduleDotted + "." + strings.Join(chain, "."))
}

// nearestEnclosingClass returns the name of the innermost class_definition
// strictly enclosing funcDef, or "" if there is none (used to resolve
// self.method()/cls.method() call sites).
func nearestEnclosingClass(funcDef *yast.Node) string {
	for cur := funcDef.Parent; cur != nil; cur = cur.Parent {
		if cur.Kind() == "class_definition" {
			if nameNode := cur.ChildByFieldName("name"); nameNode != nil {
				return nameNode.Text()
			}
		}
	}
	return ""
}

// topLevelDefNames returns the names of every function/class defined at
// tree's top level.
func topLevelDefNames(tree *yast.Tree) map[string]bool {
	names := map[string]bool{}
	for _, c := range tree.Root.Children() {
		if c.Kind() == "function_definition" || c.Kind() == "class_definition" {
			if nameNode := c.ChildByFieldName("name"); nameNode != nil {
				names[nameNode.Text()] = true
			}
		}
	}
	return names
}

// importsOf maps local names to fully-qualified module paths, as recorded
// by the file's import statements.
func importsOf(tree *yast.Tree) map[string]string {
	imports := map[string]string{}
	yast.Walk(tree.Root, func(n *yast.Node) {
		switch n.Kind() {
		case "import_statement":
			nameNode := n.ChildByFieldName("name")
			if nameNode == nil {
				return
			}
			if nameNode.Kind() == "aliased_import" {
				moduleNode := nameNode.ChildByFieldName("name")
				aliasNode := nameNode.ChildByFieldName("alias")
				if moduleNode != nil && aliasNode != nil {
					imports[aliasNode.Text()] = moduleNode.Text()
				}
			} else if nameNode.Kind() == "dotted_name" {
				imports[nameNode.Text()] = nameNode.Text()
			}

		case "import_from_statement":
			moduleNameNode := n.ChildByFieldName("module_name")
			if moduleNameNode == nil {
				return
			}
			moduleName := moduleNameNode.Text()
			for _, child := range n.Children() {
				if child == moduleNameNode {
					continue
				}
				switch child.Kind() {
				case "aliased_import":
					importNameNode := child.ChildByFieldName("name")
					aliasNode := child.ChildByFieldName("alias")
					if importNameNode != nil && aliasNode != nil {
						imports[aliasNode.Text()] = moduleName + "." + importNameNode.Text()
					}
				case "dotted_name", "identifier":
					imports[child.Text()] = moduleName + "." + child.Text()
				}
			}
		}
	})
	return imports
}

// resolveCallee computes the best-effort entity id of a call node's
// callee, per the matching rules also used by the interprocedural slicer
// (package slicer): a direct name, an attribute access (approximated by the
// attribute name alone when the object is not a plain name), or a call
// whose callable is itself a call (resolved to the inner call's callee).
func resolveCallee(call *yast.Node, imports map[string]string, localDefs map[string]bool, moduleDotted, selfClass string, _ int) EntityID {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Kind() {
	case "identifier":
		name := fn.Text()
		if localDefs[name] {
			return EntityID(moduleDotted + "." + name)
		}
		if fq, ok := imports[name]; ok {
			return EntityID(fq)
		}
		if pythonBuiltins[name] {
			return EntityID(name + "." + builtinMarker)
		}
		return EntityID(name)

	case "attribute":
		attr := fn.ChildByFieldName("attribute")
		if attr == nil {
			return ""
		}
		attrName := attr.Text()
		obj := fn.ChildByFieldName("object")
		if obj == nil {
			return EntityID(attrName)
		}
		if obj.Kind() == "identifier" {
			objName := obj.Text()
			if (objName == "self" || objName == "cls") && selfClass != "" {
				return EntityID(moduleDotted + "." + selfClass + "." + attrName)
			}
			if fq, ok := imports[objName]; ok {
				return EntityID(fq + "." + attrName)
			}
			return EntityID(objName + "." + attrName)
		}
		// obj is a more complex expression (e.g. a chained or nested
		// call); approximate with the attribute name alone.
		return EntityID(attrName)

	case "call":
		// A call expression as the callable, e.g. f()(). Resolve the
		// inner call and reuse its callee name as a best-effort id.
		return resolveCallee(fn, imports, localDefs, moduleDotted, selfClass, 0)

	default:
		return ""
	}
}
