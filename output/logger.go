package output

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Stage names one phase of the analysis pipeline, for timing purposes.
// A call site that spans a stage wraps itself in StartTiming(stage)/done()
// so a --verbose run can report where the wall-clock time went.
type Stage string

const (
	// StageImportNormalize covers rewriting wildcard and relative imports
	// onto the throwaway copy of the repository (package importnorm).
	StageImportNormalize Stage = "import-normalize"
	// StageCallGraph covers building the repository's caller/callee graph
	// and its sanity report (callgraph.Construct).
	StageCallGraph Stage = "callgraph-construct"
	// StagePDGBuild covers building one function's CFG, dataflow facts,
	// and program dependence graph on demand (package trace).
	StagePDGBuild Stage = "pdg-build"
	// StageBackwardSlice covers the interprocedural backward slice itself
	// (package slicer), once the owning function's PDG is available.
	StageBackwardSlice Stage = "backward-slice"
)

// Logger writes pipeline progress, warnings, and per-stage timings to an
// io.Writer (stderr by default), gated by a VerbosityLevel.
type Logger struct {
	verbosity VerbosityLevel
	writer    io.Writer
	startTime time.Time
	timings   map[Stage]time.Duration
}

// NewLogger creates a logger that writes to stderr, keeping stdout clean
// for cg.json/icg.json and slice output.
func NewLogger(verbosity VerbosityLevel) *Logger {
	return &Logger{
		verbosity: verbosity,
		writer:    os.Stderr,
		startTime: time.Now(),
		timings:   make(map[Stage]time.Duration),
	}
}

// NewLoggerWithWriter creates a logger against a caller-supplied writer,
// for capturing output in tests.
func NewLoggerWithWriter(verbosity VerbosityLevel, w io.Writer) *Logger {
	return &Logger{
		verbosity: verbosity,
		writer:    w,
		startTime: time.Now(),
		timings:   make(map[Stage]time.Duration),
	}
}

// Progress reports high-level pipeline progress, e.g. "building call graph
// for <repo>". Shown at VerbosityVerbose and above.
func (l *Logger) Progress(format string, args ...interface{}) {
	if l.verbosity >= VerbosityVerbose {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// Statistic reports a count produced by a stage, e.g. caller/callee totals
// or sanity-warning counts. Shown at VerbosityVerbose and above.
func (l *Logger) Statistic(format string, args ...interface{}) {
	if l.verbosity >= VerbosityVerbose {
		fmt.Fprintf(l.writer, format+"\n", args...)
	}
}

// Debug reports fine-grained diagnostics (e.g. per-file parse skips),
// prefixed with elapsed time since the logger was created. Shown only at
// VerbosityDebug.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbosity >= VerbosityDebug {
		elapsed := time.Since(l.startTime)
		prefix := formatDuration(elapsed)
		fmt.Fprintf(l.writer, "[%s] %s\n", prefix, fmt.Sprintf(format, args...))
	}
}

// Warning is always shown, e.g. a file skipped during import normalization
// because it failed to parse.
func (l *Logger) Warning(format string, args ...interface{}) {
	fmt.Fprintf(l.writer, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// Error is always shown.
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Fprintf(l.writer, "Error: %s\n", fmt.Sprintf(format, args...))
}

// StartTiming begins timing stage and returns a func to call when the
// stage finishes. Safe to call on a nil *Logger, since several pipeline
// entry points (trace.SliceAt, trace.ArgumentBackwardTrace, importnorm.
// NormalizeRepo) accept an optional logger.
func (l *Logger) StartTiming(stage Stage) func() {
	if l == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.timings[stage] = time.Since(start)
	}
}

// GetTiming returns the recorded duration for stage, or zero if stage was
// never timed.
func (l *Logger) GetTiming(stage Stage) time.Duration {
	return l.timings[stage]
}

// PrintTimingSummary prints every recorded stage timing. Shown only at
// VerbosityVerbose and above, so a default run stays silent.
func (l *Logger) PrintTimingSummary() {
	if l.verbosity < VerbosityVerbose {
		return
	}
	fmt.Fprintln(l.writer, "\nTiming Summary:")
	for stage, duration := range l.timings {
		fmt.Fprintf(l.writer, "  %s: %s\n", stage, duration.Round(time.Millisecond))
	}
}

// formatDuration formats d as MM:SS.mmm.
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}
