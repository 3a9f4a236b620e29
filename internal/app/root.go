// Package app contains the Cobra command tree for scorecard.
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scorecard/internal/gates"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "scorecard",
	Short: "Score a project's engineering quality and gate CI pipelines on it",
	Long: `scorecard evaluates a software project across weighted quality categories
(structure, code quality, performance, testing, security, developer
experience, completeness), producing a composite score, a letter grade, and
prioritized improvement recommendations. Quality gates turn the scores into
a CI pass/fail decision.

Run 'scorecard score .' to score the current directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("scorecard", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  score       Analyze a project and print its quality score")
		fmt.Println("  gates       Evaluate quality gates for CI pipelines")
		fmt.Println("  categories  List scoring categories and their weights")
		fmt.Println("  history     Show score history for a project")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Blocking-gate failures have already emitted their report; they
		// only need the non-zero exit status.
		if !errors.Is(err, gates.ErrBlocked) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/scorecard/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
