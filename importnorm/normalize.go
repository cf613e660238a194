// Package importnorm rewrites wildcard and relative imports into explicit,
// absolute form on a throwaway copy of a repository, so the call-graph
// builder (package callgraph) always sees a stable namespace. The original
// repository is never mutated.
package importnorm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	yast "github.com/manishshettym/yappy/ast"
	"github.com/manishshettym/yappy/output"
	"github.com/manishshettym/yappy/yerrors"
)

// DefaultTempSuffix is used to name the sibling temp directory when the
// caller does not supply one (config.Config.TempSuffix).
const DefaultTempSuffix = "_temp"

// Result is the outcome of normalizing a repository.
type Result struct {
	// TempRoot is the path to the rewritten, temporary copy of the repo.
	TempRoot string
	// Skipped lists files that failed to parse; they were left untouched
	// in the temp copy and are reported, not fatal.
	Skipped []yerrors.ParseError
}

// NormalizeRepo copies repoPath to a sibling directory named repoPath+suffix
// (deleted first if present) and rewrites every .py file's wildcard and
// relative imports into explicit, absolute form.
func NormalizeRepo(repoPath, suffix string, logger *output.Logger) (*Result, error) {
	stop := logger.StartTiming(output.StageImportNormalize)
	defer stop()

	if suffix == "" {
		suffix = DefaultTempSuffix
	}
	repoPath = filepath.Clean(repoPath)
	tempRoot := repoPath + suffix

	if err := os.RemoveAll(tempRoot); err != nil {
		return nil, fmt.Errorf("importnorm: clearing %s: %w", tempRoot, err)
	}
	if err := copyTree(repoPath, tempRoot); err != nil {
		return nil, fmt.Errorf("importnorm: copying %s: %w", repoPath, err)
	}

	var files []string
	err := filepath.Walk(tempRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importnorm: walking %s: %w", tempRoot, err)
	}
	sort.Strings(files)

	res := &Result{TempRoot: tempRoot}
	for _, file := range files {
		if err := normalizeFile(file, tempRoot); err != nil {
			if logger != nil {
				logger.Warning("skipping %s: %v", file, err)
			}
			res.Skipped = append(res.Skipped, yerrors.ParseError{File: file, Cause: err})
			continue
		}
	}
	return res, nil
}

// normalizeFile rewrites file's wildcard and relative imports in place.
func normalizeFile(file, repoRoot string) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	tree, err := yast.Parse(source)
	if err != nil {
		return err
	}

	type edit struct {
		start, end uint32
		text       string
	}
	var edits []edit

	yast.Walk(tree.Root, func(n *yast.Node) {
		if n.Kind() != "import_from_statement" {
			return
		}
		moduleNode := n.ChildByFieldName("module_name")
		if moduleNode == nil {
			return
		}
		module := moduleNode.Text()

		relative := strings.HasPrefix(module, ".")
		if relative {
			module = resolveRelativeModule(file, module)
		}

		if isWildcardImport(n) {
			if targetFile, ok := resolveModuleToFile(repoRoot, module); ok {
				members, err := moduleMembers(targetFile)
				if err == nil && len(members) > 0 {
					names := strings.Join(members, ", ")
					edits = append(edits, edit{n.StartByte(), n.EndByte(),
						fmt.Sprintf("from %s import %s", module, names)})
					return
				}
			}
		}

		if relative {
			edits = append(edits, edit{n.StartByte(), n.EndByte(), rewriteModule(n, source, module)})
		}
	})

	if len(edits) == 0 {
		return nil
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := append([]byte(nil), source...)
	for _, e := range edits {
		out = append(out[:e.start:e.start], append([]byte(e.text), out[e.end:]...)...)
	}
	return os.WriteFile(file, out, 0o644)
}

func isWildcardImport(n *yast.Node) bool {
	for _, c := range n.Children() {
		if c.Kind() == "wildcard_import" {
			return true
		}
	}
	return false
}

// rewriteModule reconstructs "from <abs> import <original names>" reusing
// the original statement's import-list text verbatim.
func rewriteModule(n *yast.Node, source []byte, absModule string) string {
	importIdx := -1
	children := n.Children()
	for i, c := range children {
		if c.Kind() == "import" {
			importIdx = i
			break
		}
	}
	if importIdx == -1 || importIdx+1 >= len(children) {
		return fmt.Sprintf("from %s import *", absModule)
	}
	tail := string(source[children[importIdx+1].StartByte():n.EndByte()])
	return fmt.Sprintf("from %s import %s", absModule, tail)
}

func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
