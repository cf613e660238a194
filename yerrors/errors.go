// Package yerrors defines the structured error kinds named in the analysis
// pipeline's error-handling design: ParseError, ResolutionError,
// MissingDefinition, CallsiteNotFound, and NoImmediatePostDominator.
//
// ResolutionError and NoImmediatePostDominator are never returned as
// failures: an unresolvable module shows up as a BUILTIN/API classification
// and a sanity-report warning, and a node without an immediate
// post-dominator is skipped by the PDG builder. ParseError and
// MissingDefinition are returned by the orchestration entry points;
// CallsiteNotFound is recorded per skipped call chain in a slice result.
package yerrors

import "fmt"

// ParseError reports an unreadable or malformed source file. It is fatal to
// analysis of that one file; analysis of the rest of the repository
// continues.
type ParseError struct {
	File  string
	Cause error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.File, e.Cause)
}
func (e ParseError) Unwrap() error { return e.Cause }

// ResolutionError records that an entity id's module does not exist on
// disk. It is not raised as a failure: the callee is still classified
// (BUILTIN or API) and this is surfaced via the sanity report.
type ResolutionError struct {
	EntityID string
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("entity %q has no resolvable module", e.EntityID)
}

// MissingDefinition records a caller id with no matching AST definition in
// its claimed file. The caller is kept in the call graph regardless.
type MissingDefinition struct {
	EntityID string
	File     string
}

func (e MissingDefinition) Error() string {
	return fmt.Sprintf("no definition for %q found in %s", e.EntityID, e.File)
}

// CallsiteNotFound reports that the interprocedural slicer could not locate
// a call-site expression for callee within caller's body. The offending
// call chain is reported and skipped; other chains proceed.
type CallsiteNotFound struct {
	Caller string
	Callee string
}

func (e CallsiteNotFound) Error() string {
	return fmt.Sprintf("no call site for %q found in %q", e.Callee, e.Caller)
}

// NoImmediatePostDominator records that a CFG node has no immediate
// post-dominator (a dead-ending branch). The CD edge-adder skips such nodes
// silently; this type exists so callers that want to know can ask.
type NoImmediatePostDominator struct {
	NodeID string
}

func (e NoImmediatePostDominator) Error() string {
	return fmt.Sprintf("node %q has no immediate post-dominator", e.NodeID)
}
