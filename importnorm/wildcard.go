package importnorm

import (
	"os"
	"path/filepath"
	"strings"

	yast "github.com/manishshettym/yappy/ast"
)

// resolveModuleToFile resolves a dotted module path to a file under repoRoot,
// trying both "pkg/sub.py" and "pkg/sub/__init__.py" layouts.
func resolveModuleToFile(repoRoot, module string) (string, bool) {
	relPath := strings.ReplaceAll(module, ".", string(os.PathSeparator))

	asFile := filepath.Join(repoRoot, relPath+".py")
	if fileExists(asFile) {
		return asFile, true
	}
	asPackage := filepath.Join(repoRoot, relPath, "__init__.py")
	if fileExists(asPackage) {
		return asPackage, true
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// moduleMembers scans a module file's top level for function/class
// definitions, for expanding "from module import *".
func moduleMembers(file string) ([]string, error) {
	tree, err := yast.ParseFile(file)
	if err != nil {
		return nil, err
	}
	var members []string
	for _, c := range tree.Root.Children() {
		if c.Kind() == "function_definition" || c.Kind() == "class_definition" {
			if name := c.ChildByFieldName("name"); name != nil {
				members = append(members, name.Text())
			}
		}
	}
	return members, nil
}
