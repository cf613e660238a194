package importnorm

import (
	"os"
	"path/filepath"
	"strings"
)

// packageOf returns the dotted package path of file, determined by walking
// up parent directories while each contains an __init__.py marker file.
func packageOf(file string) string {
	dir := filepath.Dir(file)
	var parts []string
	for {
		if _, err := os.Stat(filepath.Join(dir, "__init__.py")); err != nil {
			break
		}
		parts = append([]string{filepath.Base(dir)}, parts...)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return strings.Join(parts, ".")
}

// resolveRelativeModule converts a relative import module spec (as it reads
// textually: a run of dots optionally followed by a dotted sub-path) into an
// absolute dotted module path, relative to file's package.
//
// Level 1 ("." alone, or ".sub") means "within the current package";
// level N means "N-1 packages up from the current package".
func resolveRelativeModule(file, module string) string {
	level := 0
	for level < len(module) && module[level] == '.' {
		level++
	}
	subpath := module[level:]

	pkgParts := splitNonEmpty(packageOf(file))
	if level > 1 {
		drop := level - 1
		if drop > len(pkgParts) {
			drop = len(pkgParts)
		}
		pkgParts = pkgParts[:len(pkgParts)-drop]
	}

	if subpath == "" {
		return strings.Join(pkgParts, ".")
	}
	if len(pkgParts) == 0 {
		return subpath
	}
	return strings.Join(pkgParts, ".") + "." + subpath
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}
