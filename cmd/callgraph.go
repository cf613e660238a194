package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	sarif "github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/spf13/cobra"

	"github.com/manishshettym/yappy/analytics"
	"github.com/manishshettym/yappy/callgraph"
	"github.com/manishshettym/yappy/config"
	"github.com/manishshettym/yappy/output"
)

var callgraphCmd = &cobra.Command{
	Use:   "callgraph",
	Short: "Build a repository's call graph and dump it to cg.json/icg.json",
	Long: `Build builds the forward and inverse call graphs for a Python repository
and writes them as cg.json/icg.json (caller-id -> [callee-id, ...]).

Examples:
  yappy callgraph --project /path/to/repo
  yappy callgraph --project . --out-dir build/ --sanity-sarif sanity.sarif`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		project, _ := cmd.Flags().GetString("project")
		outDir, _ := cmd.Flags().GetString("out-dir")
		sanitySarif, _ := cmd.Flags().GetString("sanity-sarif")
		verbose, _ := cmd.Flags().GetBool("verbose")

		if project == "" {
			return fmt.Errorf("--project flag is required")
		}
		absProject, err := filepath.Abs(project)
		if err != nil {
			return fmt.Errorf("failed to resolve project path: %w", err)
		}

		conf := config.Load(filepath.Join(absProject, ".env"))
		verbosity := output.VerbosityDefault
		if verbose {
			verbosity = output.VerbosityVerbose
		}
		logger := output.NewLogger(verbosity)

		cg, sanity, err := callgraph.Construct(context.Background(), callgraph.PythonEngine{}, absProject, conf.MaxIter, logger)
		if err != nil {
			analytics.ReportEvent(analytics.ErrorOccurred)
			return fmt.Errorf("failed to build call graph: %w", err)
		}

		cgPath := filepath.Join(outDir, "cg.json")
		icgPath := filepath.Join(outDir, "icg.json")
		if err := cg.WriteToFile(cgPath); err != nil {
			return err
		}
		if err := cg.WriteInverseToFile(icgPath); err != nil {
			return err
		}
		log.Printf("wrote %s and %s\n", cgPath, icgPath)

		if sanitySarif != "" {
			if err := writeSanitySARIF(sanity, sanitySarif); err != nil {
				return fmt.Errorf("failed to write sanity SARIF report: %w", err)
			}
			log.Printf("wrote %s\n", sanitySarif)
		}
		logger.PrintTimingSummary()

		analytics.ReportEvent(analytics.CallGraphBuilt)
		return nil
	},
}

// writeSanitySARIF renders a call-graph sanity report as a SARIF 2.1.0
// log: one rule per warning category, one result per (caller, warning).
func writeSanitySARIF(report callgraph.SanityReport, path string) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("yappy callgraph sanity", "https://github.com/manishshettym/yappy")
	run.AddRule("callgraph-sanity").
		WithDescription("A call-graph caller entry failed a sanity check (missing file/definition, excessive callee count, or an unresolved callee).").
		WithName("CallGraphSanity").
		WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("warning"))

	for callerID, entry := range report {
		for _, warning := range entry.Warnings {
			result := run.CreateResultForRule("callgraph-sanity").
				WithMessage(sarif.NewTextMessage(fmt.Sprintf("%s: %s", callerID, warning)))
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().WithArtifactLocation(
					sarif.NewArtifactLocation().WithUri(entry.File),
				),
			)
			result.AddLocation(location)
		}
	}
	doc.AddRun(run)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func init() {
	rootCmd.AddCommand(callgraphCmd)
	callgraphCmd.Flags().StringP("project", "p", "", "Path to the repository to analyze (required)")
	callgraphCmd.Flags().String("out-dir", ".", "Directory to write cg.json/icg.json into")
	callgraphCmd.Flags().String("sanity-sarif", "", "Optional path to write the sanity report as SARIF")
	callgraphCmd.Flags().Bool("verbose", false, "Print build progress and statistics")
	callgraphCmd.MarkFlagRequired("project") //nolint:errcheck
}
