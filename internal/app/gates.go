package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scorecard/internal/config"
	"github.com/blackwell-systems/scorecard/internal/gates"
	"github.com/blackwell-systems/scorecard/internal/output"
)

var (
	gatesFlagFormat     string
	gatesFlagOutput     string
	gatesFlagBlocking   bool
	gatesFlagThresholds string
	gatesFlagCategories string
	gatesFlagNoHistory  bool
)

var gatesCmd = &cobra.Command{
	Use:   "gates [path]",
	Short: "Evaluate quality gates for CI pipelines",
	Long: `Gates scores the project, applies the configured pass/warn/fail thresholds,
and emits the result in the syntax of the detected (or requested) CI platform.

In blocking mode a failed blocking gate makes the command exit non-zero after
the report has been written, so pipelines can gate deployments on it.
Non-blocking gates can warn but never flip the overall decision.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGates,
}

func init() {
	gatesCmd.Flags().StringVar(&gatesFlagFormat, "format", "auto", "Output format: auto, github-actions, gitlab-ci, jenkins, generic")
	gatesCmd.Flags().StringVar(&gatesFlagOutput, "output", "", "Write the gate report to a file instead of stdout")
	gatesCmd.Flags().BoolVar(&gatesFlagBlocking, "blocking", true, "Exit non-zero when a blocking gate fails")
	gatesCmd.Flags().StringVar(&gatesFlagThresholds, "thresholds", "", `Threshold overrides as JSON, e.g. '{"overall":{"min":75},"quality":{"min":16,"warn":18}}'`)
	gatesCmd.Flags().StringVar(&gatesFlagCategories, "categories", "all", "Comma-separated category list, or 'all'")
	gatesCmd.Flags().BoolVar(&gatesFlagNoHistory, "no-history", false, "Skip saving this run to score history")
	rootCmd.AddCommand(gatesCmd)
}

func runGates(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor()

	// All gate configuration problems surface here, before any analysis.
	format, err := gates.ParseFormat(gatesFlagFormat)
	if err != nil {
		return err
	}
	if format == gates.FormatAuto {
		format = gates.DetectFormat()
	}

	defs := cfg.Definitions()
	gateSet := gates.Derive(defs,
		cfg.Gates.OverallMin, cfg.Gates.OverallWarn,
		cfg.Gates.MinScale, cfg.Gates.WarnScale)
	gateSet, err = gates.ParseOverrides(gatesFlagThresholds, gateSet)
	if err != nil {
		return err
	}
	if err := gates.ValidateSet(gateSet, defs); err != nil {
		return err
	}

	r, err := runPipeline(cmd.Context(), cfg, projectRoot(args), gatesFlagCategories)
	if err != nil {
		return err
	}

	gatesReport := gates.Evaluate(gateSet, r)

	if !gatesFlagNoHistory {
		if db, snapshotID := saveSnapshot(r); db != nil {
			saveGateResults(db, snapshotID, gatesReport)
			_ = db.Close()
		}
	}

	var w io.Writer = os.Stdout
	if gatesFlagOutput != "" {
		f, err := os.Create(gatesFlagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
		output.SetNoColor(true)
	}

	if err := gates.Emit(w, gatesReport, format); err != nil {
		return err
	}

	// Exit status is decided only after the report is fully written.
	if gatesFlagBlocking && !gatesReport.Passed {
		return gates.ErrBlocked
	}
	return nil
}
