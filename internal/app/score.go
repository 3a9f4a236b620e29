package app

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scorecard/internal/config"
	"github.com/blackwell-systems/scorecard/internal/output"
	"github.com/blackwell-systems/scorecard/internal/report"
)

var (
	scoreFlagCategories      string
	scoreFlagFormat          string
	scoreFlagOutput          string
	scoreFlagDetailed        bool
	scoreFlagRecommendations bool
	scoreFlagNoHistory       bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [path]",
	Short: "Analyze a project and print its quality score",
	Long: `Score runs all configured analyzers against the project at the given path
(default: current directory), aggregates the weighted category scores into an
overall score and letter grade, and prints the result.

A failing analyzer only zeroes its own category; the run always produces a
complete report. The command exits non-zero if an unknown category is
requested or the result fails its consistency validation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreFlagCategories, "categories", "all", "Comma-separated category list, or 'all'")
	scoreCmd.Flags().StringVar(&scoreFlagFormat, "format", "console", "Output format: console, json, summary, html")
	scoreCmd.Flags().StringVar(&scoreFlagOutput, "output", "", "Write the report to a file instead of stdout")
	scoreCmd.Flags().BoolVar(&scoreFlagDetailed, "detailed", false, "Show per-category issues")
	scoreCmd.Flags().BoolVar(&scoreFlagRecommendations, "recommendations", false, "Show prioritized recommendations")
	scoreCmd.Flags().BoolVar(&scoreFlagNoHistory, "no-history", false, "Skip saving this run to score history")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor()

	r, err := runPipeline(cmd.Context(), cfg, projectRoot(args), scoreFlagCategories)
	if err != nil {
		return err
	}

	if !scoreFlagNoHistory {
		if db, _ := saveSnapshot(r); db != nil {
			_ = db.Close()
		}
	}

	var w io.Writer = os.Stdout
	if scoreFlagOutput != "" {
		f, err := os.Create(scoreFlagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
		output.SetNoColor(true)
	}

	switch scoreFlagFormat {
	case "console":
		err = report.WriteConsole(w, r, report.ConsoleOptions{
			Detailed:        scoreFlagDetailed,
			Recommendations: scoreFlagRecommendations,
		})
	case "json":
		err = report.WriteJSON(w, r)
	case "summary":
		err = report.WriteSummaryJSON(w, r)
	case "html":
		err = report.WriteHTML(w, r)
	default:
		return fmt.Errorf("unsupported format: %s", scoreFlagFormat)
	}
	if err != nil {
		return err
	}

	// The report was emitted either way; an inconsistent one still fails
	// the command so CI callers notice.
	if !r.Validation.IsValid {
		return fmt.Errorf("report validation failed: %v", r.Validation.Errors)
	}
	return nil
}
