package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/manishshettym/yappy/analytics"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/output"
	"github.com/manishshettym/yappy/slicer"
	"github.com/manishshettym/yappy/trace"
)

var sliceCmd = &cobra.Command{
	Use:   "slice",
	Short: "Print the interprocedural backward slice of a statement",
	Long: `Slice computes the interprocedural backward slice of the statement at
--line within --function (defined in --file), and prints every contributing
statement grouped by the function it belongs to, highlighted in the
terminal.

Example:
  yappy slice --project . --file pkg/mod.py --function handle_request --line 42`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		project, _ := cmd.Flags().GetString("project")
		file, _ := cmd.Flags().GetString("file")
		function, _ := cmd.Flags().GetString("function")
		line, _ := cmd.Flags().GetInt("line")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if project == "" || file == "" || function == "" || line == 0 {
			return fmt.Errorf("--project, --file, --function, and --line are all required")
		}
		absProject, err := filepath.Abs(project)
		if err != nil {
			return fmt.Errorf("failed to resolve project path: %w", err)
		}
		absFile, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve file path: %w", err)
		}

		verbosity := output.VerbosityDefault
		if verbose {
			verbosity = output.VerbosityVerbose
		}
		logger := output.NewLogger(verbosity)

		conf := config.Load(filepath.Join(absProject, ".env"))
		result, err := trace.SliceAt(context.Background(), absProject, absFile, function, line, conf, logger)
		if err != nil {
			analytics.ReportEvent(analytics.ErrorOccurred)
			return fmt.Errorf("failed to compute slice: %w", err)
		}

		printSlice(result)
		for _, skipped := range result.Skipped {
			color.Yellow("skipped chain %v: %v", skipped.Chain, skipped.Err)
		}
		logger.PrintTimingSummary()

		analytics.ReportEvent(analytics.SliceComputed)
		return nil
	},
}

type sliceLine struct {
	function string
	line     int
	text     string
}

func printSlice(result *slicer.Result) {
	lines := make([]sliceLine, 0, len(result.Nodes))
	for _, ref := range result.Nodes {
		if ref.Node.CFGNode.Instruction == nil {
			continue
		}
		lines = append(lines, sliceLine{
			function: string(ref.Function),
			line:     int(ref.Node.CFGNode.Instruction.StartLine()),
			text:     strings.TrimSpace(ref.Node.CFGNode.Instruction.Text()),
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].function != lines[j].function {
			return lines[i].function < lines[j].function
		}
		return lines[i].line < lines[j].line
	})

	currentFn := ""
	for _, l := range lines {
		if l.function != currentFn {
			currentFn = l.function
			color.Cyan("\n# %s", currentFn)
		}
		color.Green("%4d: %s", l.line, l.text)
	}
}

func init() {
	rootCmd.AddCommand(sliceCmd)
	sliceCmd.Flags().StringP("project", "p", "", "Path to the repository to analyze (required)")
	sliceCmd.Flags().StringP("file", "f", "", "File defining the target function (required)")
	sliceCmd.Flags().String("function", "", "Name of the function containing the target statement (required)")
	sliceCmd.Flags().Int("line", 0, "Source line of the target statement (required)")
	sliceCmd.Flags().Bool("verbose", false, "Print stage timings after the slice")
	sliceCmd.MarkFlagRequired("project")  //nolint:errcheck
	sliceCmd.MarkFlagRequired("file")     //nolint:errcheck
	sliceCmd.MarkFlagRequired("function") //nolint:errcheck
	sliceCmd.MarkFlagRequired("line")     //nolint:errcheck
}
