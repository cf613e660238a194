package trace

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	yast "github.com/manishshettym/yappy/ast"
	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/output"
	"github.com/manishshettym/yappy/pdg"
	"github.com/manishshettym/yappy/slicer"
	"github.com/manishshettym/yappy/yerrors"
)

// ParamTrace is the interprocedural slice rooted at one parameter's first
// use within its own function.
type ParamTrace struct {
	Param        string
	FirstUseLine int
	Slice        *slicer.Result
}

// ArgTraceResult is the full argument backward trace for one function:
// one ParamTrace per parameter that is actually read somewhere in the
// function body (an unused parameter contributes nothing and is omitted,
// not an error).
type ArgTraceResult struct {
	Function callgraph.EntityID
	Params   []ParamTrace
}

// ArgumentBackwardTrace implements C9's "argument backward trace" flow:
// locate funcName in file, enumerate its parameters, build the repo call
// graph, and compute for each parameter the interprocedural slice rooted
// at its first use.
func ArgumentBackwardTrace(ctx context.Context, root, file, funcName string, conf config.Config, logger *output.Logger) (*ArgTraceResult, error) {
	tree, err := yast.ParseFile(file)
	if err != nil {
		return nil, &yerrors.ParseError{File: file, Cause: err}
	}
	yast.AnnotateParents(tree)

	def := yast.FindDef(tree, funcName, yast.DefFunction)
	if def == nil {
		return nil, &yerrors.MissingDefinition{EntityID: funcName, File: file}
	}

	cg, _, err := callgraph.Construct(ctx, callgraph.PythonEngine{}, root, conf.MaxIter, logger)
	if err != nil {
		return nil, fmt.Errorf("trace: building call graph: %w", err)
	}

	moduleDotted := moduleDottedPath(root, file)
	id := ownerEntityID(def, moduleDotted)

	idx := NewIndex(cg, conf)
	stopPDG := logger.StartTiming(output.StagePDGBuild)
	graph := buildPDGFor(def, string(id))
	stopPDG()
	idx.seed(id, def, graph)

	stopSlice := logger.StartTiming(output.StageBackwardSlice)
	defer stopSlice()

	var params []ParamTrace
	for _, arg := range yast.ExtractArguments(def) {
		line, ok := firstUseLine(graph, arg.Name)
		if !ok {
			continue
		}
		sliceResult, err := slicer.InterproceduralSlice(cg, id, line, idx.Lookup)
		if err != nil {
			continue
		}
		params = append(params, ParamTrace{Param: arg.Name, FirstUseLine: line, Slice: sliceResult})
	}

	return &ArgTraceResult{Function: id, Params: params}, nil
}

// firstUseLine returns the smallest source line within g at which name is
// read, or false if name is never read.
func firstUseLine(g *pdg.Graph, name string) (int, bool) {
	best := -1
	for _, n := range g.Nodes {
		if n.CFGNode.Instruction == nil {
			continue
		}
		for _, access := range n.CFGNode.Accesses() {
			if !access.IsRead() || access.Name != name {
				continue
			}
			line := int(n.CFGNode.Instruction.StartLine())
			if best == -1 || line < best {
				best = line
			}
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// moduleDottedPath renders file's dotted module path relative to root,
// e.g. root/pkg/sub.py -> "pkg.sub", root/pkg/__init__.py -> "pkg".
// Mirrors callgraph.Construct's identical helper.
func moduleDottedPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return strings.TrimSuffix(filepath.Base(file), ".py")
	}
	rel = strings.TrimSuffix(rel, ".py")
	segs := strings.Split(rel, string(filepath.Separator))
	if len(segs) > 0 && segs[len(segs)-1] == "__init__" {
		segs = segs[:len(segs)-1]
	}
	return strings.Join(segs, ".")
}
