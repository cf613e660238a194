package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/manishshettym/yappy/analytics"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/output"
	"github.com/manishshettym/yappy/trace"
)

var argtraceCmd = &cobra.Command{
	Use:   "argtrace",
	Short: "Trace every parameter of a function back through the repository",
	Long: `Argtrace locates a function, enumerates its parameters, and for each one
computes the interprocedural backward slice rooted at the parameter's first
use, printing a readable chain of contributing statements.

Example:
  yappy argtrace --project . --file pkg/mod.py --function handle_request`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		project, _ := cmd.Flags().GetString("project")
		file, _ := cmd.Flags().GetString("file")
		function, _ := cmd.Flags().GetString("function")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if project == "" || file == "" || function == "" {
			return fmt.Errorf("--project, --file, and --function are all required")
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
		result, err := trace.ArgumentBackwardTrace(context.Background(), absProject, absFile, function, conf, logger)
		if err != nil {
			analytics.ReportEvent(analytics.ErrorOccurred)
			return fmt.Errorf("failed to compute argument trace: %w", err)
		}

		if len(result.Params) == 0 {
			fmt.Printf("%s has no parameters that are ever read\n", result.Function)
			return nil
		}

		for _, pt := range result.Params {
			color.Cyan("\n== parameter %s (first used at line %d) ==", pt.Param, pt.FirstUseLine)
			printSlice(pt.Slice)
			for _, skipped := range pt.Slice.Skipped {
				color.Yellow("skipped chain %v: %v", skipped.Chain, skipped.Err)
			}
		}
		logger.PrintTimingSummary()

		analytics.ReportEvent(analytics.ArgTraceRun)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(argtraceCmd)
	argtraceCmd.Flags().StringP("project", "p", "", "Path to the repository to analyze (required)")
	argtraceCmd.Flags().StringP("file", "f", "", "File defining the target function (required)")
	argtraceCmd.Flags().String("function", "", "Name of the function whose parameters should be traced (required)")
	argtraceCmd.Flags().Bool("verbose", false, "Print stage timings after the trace")
	argtraceCmd.MarkFlagRequired("project")  //nolint:errcheck
	argtraceCmd.MarkFlagRequired("file")     //nolint:errcheck
	argtraceCmd.MarkFlagRequired("function") //nolint:errcheck
}
