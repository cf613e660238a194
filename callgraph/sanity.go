package callgraph

import (
	"fmt"
	"strings"

	yast "github.com/manishshettym/yappy/ast"
)

// maxReasonableCallees is the threshold past which a caller's callee count
// triggers a sanity warning.
const maxReasonableCallees = 40

// CallerSanity is one caller's entry in the sanity report.
type CallerSanity struct {
	File           string
	CallCount      int
	UninvokedCalls int
	UnknownCalls   int
	Warnings       []string
}

// SanityReport is informational metadata about the call graph; it never
// alters the graph itself.
type SanityReport map[EntityID]*CallerSanity

// BuildSanityReport inspects every caller with at least one recorded
// callee and records file, callee counts, and warnings.
func BuildSanityReport(g *CallGraph) SanityReport {
	report := SanityReport{}
	for _, pair := range g.Pairs() {
		if len(pair.Callees) == 0 {
			continue
		}
		report[pair.Caller] = sanityFor(g, pair.Caller, pair.Callees)
	}
	return report
}

func sanityFor(g *CallGraph, caller EntityID, callees []EntityID) *CallerSanity {
	callerEntity := g.entity(caller)
	sanity := &CallerSanity{File: callerEntity.Module.File, CallCount: len(callees)}

	if callerEntity.Module.File == "" {
		sanity.Warnings = append(sanity.Warnings,
			fmt.Sprintf("caller %q has no resolvable file", caller))
	} else if !definitionExistsInFile(callerEntity.Module.File, callerEntity.Name) {
		sanity.Warnings = append(sanity.Warnings,
			fmt.Sprintf("caller %q has no matching definition in %s", caller, callerEntity.Module.File))
	}

	if len(callees) > maxReasonableCallees {
		sanity.Warnings = append(sanity.Warnings,
			fmt.Sprintf("caller %q has %d callees (> %d)", caller, len(callees), maxReasonableCallees))
	}

	body := ""
	if callerEntity.Module.File != "" {
		body = callerBody(callerEntity.Module.File, callerEntity.Name)
	}

	for _, callee := range callees {
		calleeEntity := g.entity(callee)
		if !calleeEntity.Module.Exists() {
			sanity.UnknownCalls++
			sanity.Warnings = append(sanity.Warnings,
				fmt.Sprintf("callee %q is unknown (no resolvable file)", callee))
		}
		if body != "" && !strings.Contains(body, calleeEntity.Name) {
			sanity.UninvokedCalls++
			sanity.Warnings = append(sanity.Warnings,
				fmt.Sprintf("callee %q does not textually occur in caller's body", callee))
		}
	}
	return sanity
}

func definitionExistsInFile(file, name string) bool {
	tree, err := yast.ParseFile(file)
	if err != nil {
		return false
	}
	return yast.FindDef(tree, name, "") != nil
}

// callerBody returns the body text of the first definition named name in
// file, or "" if the file does not parse or has no such definition.
func callerBody(file, name string) string {
	tree, err := yast.ParseFile(file)
	if err != nil {
		return ""
	}
	def := yast.FindDef(tree, name, "")
	if def == nil {
		return ""
	}
	return yast.ExtractBody(def)
}
