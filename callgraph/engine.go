package callgraph

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manishshettym/yappy/output"
)

// Engine is the external call-graph oracle: "given a list of files and a
// root, produce caller_id -> [callee_id]". Construct treats any Engine as
// a black box and is responsible only for wrapping its output with
// classification and sanity-checking.
type Engine interface {
	BuildCallGraph(ctx context.Context, root string, files []string, maxIter int) (map[string][]string, error)
}

// Construct builds the repository call graph: it discovers source files
// under repoPath, hands them to engine, loads the resulting mapping into a
// CallGraph (which classifies every callee), and computes a sanity report.
func Construct(ctx context.Context, engine Engine, repoPath string, maxIter int, logger *output.Logger) (*CallGraph, SanityReport, error) {
	stop := logger.StartTiming(output.StageCallGraph)
	defer stop()

	resolver, err := NewResolver(repoPath)
	if err != nil {
		return nil, nil, fmt.Errorf("callgraph: construct: %w", err)
	}

	files := make([]string, 0, len(resolver.modules))
	for _, f := range resolver.modules {
		files = append(files, f)
	}
	sort.Strings(files)

	raw, err := engine.BuildCallGraph(ctx, repoPath, files, maxIter)
	if err != nil {
		return nil, nil, fmt.Errorf("callgraph: engine: %w", err)
	}

	g := Load(resolver, raw)
	sanity := BuildSanityReport(g)
	if logger != nil {
		logger.Statistic("call graph: %d callers, %d sanity warnings",
			len(g.callerOrder), countWarnings(sanity))
	}
	return g, sanity, nil
}

func countWarnings(report SanityReport) int {
	n := 0
	for _, s := range report {
		n += len(s.Warnings)
	}
	return n
}

// moduleDottedPath renders file's dotted module path relative to root,
// e.g. root/pkg/sub.py -> "pkg.sub", root/pkg/__init__.py -> "pkg".
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
