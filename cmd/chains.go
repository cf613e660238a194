package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/manishshettym/yappy/analytics"
	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/output"
	"github.com/manishshettym/yappy/trace"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List every call chain reaching a target entity",
	Long: `List enumerates every acyclic call chain from a root (uncalled) function
down to a target entity id, via the inverse call graph.

Example:
  yappy chains --project . --target pkg.mod.target_function`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		project, _ := cmd.Flags().GetString("project")
		target, _ := cmd.Flags().GetString("target")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if project == "" {
			return fmt.Errorf("--project flag is required")
		}
		if target == "" {
			return fmt.Errorf("--target flag is required")
		}
		absProject, err := filepath.Abs(project)
		if err != nil {
			return fmt.Errorf("failed to resolve project path: %w", err)
		}

		verbosity := output.VerbosityDefault
		if verbose {
			verbosity = output.VerbosityVerbose
		}
		logger := output.NewLogger(verbosity)

		conf := config.Load(filepath.Join(absProject, ".env"))
		cg, _, err := callgraph.Construct(context.Background(), callgraph.PythonEngine{}, absProject, conf.MaxIter, logger)
		if err != nil {
			analytics.ReportEvent(analytics.ErrorOccurred)
			return fmt.Errorf("failed to build call graph: %w", err)
		}

		chains := trace.ListCallChains(cg, callgraph.EntityID(target))
		if len(chains) == 0 {
			fmt.Printf("no call chains reach %s\n", target)
			return nil
		}
		for _, chain := range chains {
			names := make([]string, len(chain))
			for i, id := range chain {
				names[i] = string(id)
			}
			fmt.Println(joinArrow(names))
		}
		logger.PrintTimingSummary()

		analytics.ReportEvent(analytics.ChainsListed)
		return nil
	},
}

func joinArrow(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " <- "
		}
		out += n
	}
	return out
}

func init() {
	rootCmd.AddCommand(chainsCmd)
	chainsCmd.Flags().StringP("project", "p", "", "Path to the repository to analyze (required)")
	chainsCmd.Flags().StringP("target", "t", "", "Entity id to find call chains for (required)")
	chainsCmd.Flags().Bool("verbose", false, "Print stage timings after listing chains")
	chainsCmd.MarkFlagRequired("project") //nolint:errcheck
	chainsCmd.MarkFlagRequired("target")  //nolint:errcheck
}
