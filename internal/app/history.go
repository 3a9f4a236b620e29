package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scorecard/internal/config"
	"github.com/blackwell-systems/scorecard/internal/output"
	"github.com/blackwell-systems/scorecard/internal/store"
)

var (
	historyFlagLimit int
	historyFlagJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "Show score history for a project",
	Long: `History lists the persisted scoring runs for the project at the given path
(default: current directory) and shows how each category moved since the
previous run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyFlagLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&historyFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	setupColor()

	root, err := filepath.Abs(projectRoot(args))
	if err != nil {
		return fmt.Errorf("resolving project path: %w", err)
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer func() { _ = db.Close() }()

	snapshots, err := db.ListSnapshots(root, historyFlagLimit)
	if err != nil {
		return fmt.Errorf("listing snapshots: %w", err)
	}

	diff, err := db.Diff(root)
	if err != nil {
		return fmt.Errorf("comparing snapshots: %w", err)
	}

	if historyFlagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Snapshots []store.Snapshot    `json:"snapshots"`
			Diff      *store.SnapshotDiff `json:"diff,omitempty"`
		}{snapshots, diff})
	}

	if len(snapshots) == 0 {
		fmt.Println(output.StyleMuted.Render("No score history for this project yet. Run 'scorecard score' first."))
		return nil
	}

	fmt.Println(output.Section("Score History"))
	fmt.Println()

	tbl := output.NewTable("When", "Score", "Grade", "Errors")
	for _, s := range snapshots {
		errStr := output.StyleMuted.Render("-")
		if s.HasErrors {
			errStr = output.StyleError.Render("yes")
		}
		tbl.AddRow(
			s.TakenAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f/%.0f", s.Score, s.MaxScore),
			output.GradeStyle(s.Grade).Render(s.Grade),
			errStr,
		)
	}
	tbl.Print()

	if diff != nil && diff.Previous != nil {
		fmt.Println(output.Section("Change Since Previous Run"))
		fmt.Println()
		for _, d := range diff.Deltas {
			fmt.Printf(" %s %s\n",
				output.StyleLabel.Render(d.Category+":"),
				output.TrendArrow(d.Delta, true))
		}
		overallDelta := diff.Current.Score - diff.Previous.Score
		pctDelta := float64(diff.Current.Percentage - diff.Previous.Percentage)
		fmt.Printf(" %s %s %s\n",
			output.StyleLabel.Render("overall:"),
			output.TrendArrow(overallDelta, true),
			output.TrendArrowPercent(pctDelta, true))
	}

	return nil
}
