package trace

import (
	"context"
	"fmt"

	yast "github.com/manishshettym/yappy/ast"
	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/output"
	"github.com/manishshettym/yappy/slicer"
	"github.com/manishshettym/yappy/yerrors"
)

// SliceAt computes the interprocedural backward slice of the statement at
// line within funcName (defined in file), used by the CLI's "print
// backward slice of (file, function, statement)" flow.
func SliceAt(ctx context.Context, root, file, funcName string, line int, conf config.Config, logger *output.Logger) (*slicer.Result, error) {
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
	return slicer.InterproceduralSlice(cg, id, line, idx.Lookup)
}
