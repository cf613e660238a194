package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manishshettym/yappy/analytics"
)

var rootCmd = &cobra.Command{
	Use:   "yappy",
	Short: "yappy builds call graphs, program-dependence graphs, and backward slices for Python",
	Long: `yappy is a static-analysis toolkit: given a repository, it constructs a call
graph, per-function control-flow and program-dependence graphs, and computes
interprocedural backward program slices from them.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
	},
}

// Execute runs the root command; its error (if any) should set the
// process exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")
}
