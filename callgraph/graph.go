package callgraph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Pair is one (caller, callees) entry as yielded by Pairs, in call-graph
// insertion order.
type Pair struct {
	Caller  EntityID
	Callees []EntityID
}

// CallGraph holds the forward caller→callees mapping and its inverse
// derivative, plus entity metadata (kind/role/module) assigned as entities
// are encountered. Entities are identified purely by EntityID.
type CallGraph struct {
	resolver *Resolver

	forward     map[EntityID][]EntityID
	callerOrder []EntityID
	inverse     map[EntityID][]EntityID
	entities    map[EntityID]*Entity
}

// NewCallGraph creates an empty call graph. resolver is used to classify
// callees and resolve modules; it may be nil, in which case every callee
// not carrying the "<builtin>" marker resolves as API (no module ever
// exists).
func NewCallGraph(resolver *Resolver) *CallGraph {
	return &CallGraph{
		resolver: resolver,
		forward:  map[EntityID][]EntityID{},
		inverse:  map[EntityID][]EntityID{},
		entities: map[EntityID]*Entity{},
	}
}

func (g *CallGraph) entity(id EntityID) *Entity {
	e, ok := g.entities[id]
	if !ok {
		e = &Entity{ID: id, Name: SimpleName(id)}
		if g.resolver != nil {
			e.Module = g.resolver.ResolveModule(id)
		}
		g.entities[id] = e
	}
	return e
}

// Entity returns the metadata record for id, creating it (unclassified) if
// this is the first time id has been seen.
func (g *CallGraph) Entity(id EntityID) *Entity { return g.entity(id) }

// AddCall records that caller calls callee (one record per call-site
// occurrence; duplicates are allowed and preserved in order). The callee's
// Kind is classified exactly once, the first time it is added.
func (g *CallGraph) AddCall(caller, callee EntityID) {
	callerEntity := g.entity(caller)
	if callerEntity.Role == "" {
		callerEntity.Role = FUNCTION
	}

	calleeEntity := g.entity(callee)
	if calleeEntity.Kind == "" {
		if g.resolver != nil {
			calleeEntity.Kind = Classify(g.resolver, caller, callee)
		} else if IsBuiltinMarked(callee) {
			calleeEntity.Kind = BUILTIN
		} else {
			calleeEntity.Kind = API
		}
	}

	if _, seen := g.forward[caller]; !seen {
		g.callerOrder = append(g.callerOrder, caller)
	}
	g.forward[caller] = append(g.forward[caller], callee)
	g.inverse[callee] = append(g.inverse[callee], caller)
}

// Callees returns caller's recorded callees, in insertion order.
func (g *CallGraph) Callees(caller EntityID) []EntityID { return g.forward[caller] }

// Callers returns callee's recorded callers (the inverse mapping), in the
// order they were added.
func (g *CallGraph) Callers(callee EntityID) []EntityID { return g.inverse[callee] }

// Pairs yields (caller, callees) in insertion order of callers.
func (g *CallGraph) Pairs() []Pair {
	pairs := make([]Pair, 0, len(g.callerOrder))
	for _, caller := range g.callerOrder {
		pairs = append(pairs, Pair{Caller: caller, Callees: g.forward[caller]})
	}
	return pairs
}

// ToDict renders the forward graph as caller-id -> [callee-id, ...],
// matching the on-disk cg.json shape.
func (g *CallGraph) ToDict() map[string][]string {
	dict := make(map[string][]string, len(g.forward))
	for caller, callees := range g.forward {
		ids := make([]string, len(callees))
		for i, c := range callees {
			ids[i] = string(c)
		}
		dict[string(caller)] = ids
	}
	return dict
}

// InverseToDict renders the inverse graph as callee-id -> [caller-id, ...].
func (g *CallGraph) InverseToDict() map[string][]string {
	dict := make(map[string][]string, len(g.inverse))
	for callee, callers := range g.inverse {
		ids := make([]string, len(callers))
		for i, c := range callers {
			ids[i] = string(c)
		}
		dict[string(callee)] = ids
	}
	return dict
}

// Load rebuilds a CallGraph from a caller-id -> [callee-id, ...] dict (as
// decoded from cg.json). Since Go maps have no stable iteration order,
// callerOrder here is only as stable as dict's own (random) iteration;
// ToDict(Load(dict)) is equal to dict as a set of entries regardless.
func Load(resolver *Resolver, dict map[string][]string) *CallGraph {
	g := NewCallGraph(resolver)
	for caller, callees := range dict {
		for _, callee := range callees {
			g.AddCall(EntityID(caller), EntityID(callee))
		}
	}
	return g
}

// LoadFromFile reads a cg.json-shaped file and builds a CallGraph from it.
func LoadFromFile(resolver *Resolver, path string) (*CallGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("callgraph: reading %s: %w", path, err)
	}
	var dict map[string][]string
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("callgraph: decoding %s: %w", path, err)
	}
	return Load(resolver, dict), nil
}

// WriteToFile writes the forward graph as JSON to path.
func (g *CallGraph) WriteToFile(path string) error {
	data, err := json.MarshalIndent(g.ToDict(), "", "  ")
	if err != nil {
		return fmt.Errorf("callgraph: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("callgraph: writing %s: %w", path, err)
	}
	return nil
}

// WriteInverseToFile writes the inverse graph as JSON to path.
func (g *CallGraph) WriteInverseToFile(path string) error {
	data, err := json.MarshalIndent(g.InverseToDict(), "", "  ")
	if err != nil {
		return fmt.Errorf("callgraph: encoding inverse: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("callgraph: writing %s: %w", path, err)
	}
	return nil
}
