package callgraph

// Classify applies the callee-classification rule: applied once,
// at insertion into forward, and never overwritten.
//
//   - callee carries the "<builtin>" marker and its module does not exist -> BUILTIN
//   - else the callee's module does not exist                             -> API
//   - else caller's module path equals callee's module path                -> LOCAL
//   - else                                                                  -> EXTERNAL
func Classify(resolver *Resolver, caller, callee EntityID) Kind {
	calleeModule := resolver.ResolveModule(callee)

	if IsBuiltinMarked(callee) && !calleeModule.Exists() {
		return BUILTIN
	}
	if !calleeModule.Exists() {
		return API
	}
	callerModule := resolver.ResolveModule(caller)
	if callerModule.Path == calleeModule.Path {
		return LOCAL
	}
	return EXTERNAL
}
