// Package callgraph builds, classifies, and validates the repository call
// graph: a forward caller→callees mapping, its inverse derivative, and a
// sanity report. Graph construction itself is delegated to an Engine,
// treated as an external oracle; this package's job is to wrap, classify
// and validate whatever the engine produces.
package callgraph

import "strings"

// Kind classifies a callee, assigned once at insertion into the forward
// graph and never overwritten.
type Kind string

const (
	BUILTIN  Kind = "BUILTIN"
	API      Kind = "API"
	LOCAL    Kind = "LOCAL"
	EXTERNAL Kind = "EXTERNAL"
)

// Role classifies an entity when it appears as a caller.
type Role string

const (
	FUNCTION Role = "FUNCTION"
	METHOD   Role = "METHOD"
	CLASS    Role = "CLASS"
	DEFAULT  Role = "DEFAULT"
)

// builtinMarker is the entity-id segment signaling a builtin callee.
const builtinMarker = "<builtin>"

// EntityID is a dotted path "a.b.c.name" identifying a callable. It is the
// map key type everywhere a call graph needs value-like, cheap-to-clone
// identity: two entities are equal iff their ids are equal.
type EntityID string

// Module is a fully-qualified dotted module name together with the on-disk
// file it resolves to, if any.
type Module struct {
	Path string
	File string
}

// Exists reports whether Module resolves to an actual file.
func (m Module) Exists() bool { return m.File != "" }

// Entity is the full metadata record for one EntityID: its resolved module,
// simple name, and (once known) kind/role.
type Entity struct {
	ID     EntityID
	Module Module
	Name   string
	Kind   Kind
	Role   Role
}

// isMarkerSegment reports whether seg is an init marker or an
// anonymous-function marker (e.g. "__init__", "<lambda>", "<genexpr>").
func isMarkerSegment(seg string) bool {
	if seg == "__init__" {
		return true
	}
	return strings.HasPrefix(seg, "<") && strings.HasSuffix(seg, ">")
}

// SimpleName returns id's simple name: its last segment, or the
// penultimate segment if the last is an init/anonymous-function marker.
func SimpleName(id EntityID) string {
	segs := strings.Split(string(id), ".")
	last := segs[len(segs)-1]
	if isMarkerSegment(last) && len(segs) >= 2 {
		return segs[len(segs)-2]
	}
	return last
}

// IsBuiltinMarked reports whether id carries the "<builtin>" segment.
func IsBuiltinMarked(id EntityID) bool {
	return strings.Contains(string(id), builtinMarker)
}
