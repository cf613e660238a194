package output

// VerbosityLevel controls how much of the pipeline's progress and timing
// the Logger prints to stderr while a repository is being analyzed.
type VerbosityLevel int

const (
	// VerbosityDefault prints only warnings and errors.
	VerbosityDefault VerbosityLevel = iota
	// VerbosityVerbose additionally prints Progress and Statistic messages
	// (such as the call-graph statistics) and the timing summary once a run
	// finishes.
	VerbosityVerbose
	// VerbosityDebug additionally prints Debug messages, each prefixed with
	// the time elapsed since the logger was created.
	VerbosityDebug
)
