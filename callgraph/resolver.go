package callgraph

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Resolver maps dotted module paths to on-disk files within one repository
// root, and resolves entity ids to their owning module by longest-prefix
// match.
type Resolver struct {
	Root     string
	modules  map[string]string // dotted module path -> file
	prefixes []string          // modules' keys, sorted longest-first
}

// NewResolver indexes every source file under root into its dotted module
// path ("pkg.sub.mod" for pkg/sub/mod.py, "pkg.sub" for pkg/sub/__init__.py).
func NewResolver(root string) (*Resolver, error) {
	r := &Resolver{Root: root, modules: map[string]string{}}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".py") {
			return nil
		}
		mod, err := modulePath(root, path)
		if err != nil {
			return err
		}
		if mod != "" {
			r.modules[mod] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("callgraph: indexing %s: %w", root, err)
	}
	r.prefixes = make([]string, 0, len(r.modules))
	for m := range r.modules {
		r.prefixes = append(r.prefixes, m)
	}
	sort.Slice(r.prefixes, func(i, j int) bool { return len(r.prefixes[i]) > len(r.prefixes[j]) })
	return r, nil
}

// modulePath computes the dotted module path of a file relative to root.
// "__init__.py" names the enclosing package itself, not a submodule.
func modulePath(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, ".py")
	segs := strings.Split(rel, string(filepath.Separator))
	if len(segs) > 0 && segs[len(segs)-1] == "__init__" {
		segs = segs[:len(segs)-1]
	}
	return strings.Join(segs, "."), nil
}

// FileOf returns the file a dotted module path resolves to, if any.
func (r *Resolver) FileOf(module string) (string, bool) {
	f, ok := r.modules[module]
	return f, ok
}

// ResolveModule finds the longest dotted prefix of id that names an
// existing module, preferring function-level over method-level resolution
// (the longest-prefix search naturally prefers the closest-matching
// module over any outer package).
func (r *Resolver) ResolveModule(id EntityID) Module {
	s := string(id)
	for _, candidate := range r.prefixes {
		if s == candidate || strings.HasPrefix(s, candidate+".") {
			return Module{Path: candidate, File: r.modules[candidate]}
		}
	}
	// No existing module prefix: Module.Path is the best-effort guess
	// (everything but the simple name), File stays empty.
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		return Module{Path: s[:idx]}
	}
	return Module{Path: s}
}
