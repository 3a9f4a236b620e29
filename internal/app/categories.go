package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/scorecard/internal/config"
	"github.com/blackwell-systems/scorecard/internal/gates"
	"github.com/blackwell-systems/scorecard/internal/output"
)

var categoriesFlagJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List scoring categories and their weights",
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesFlagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	setupColor()

	defs := cfg.Definitions()

	if categoriesFlagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(defs)
	}

	gateSet := gates.Derive(defs,
		cfg.Gates.OverallMin, cfg.Gates.OverallWarn,
		cfg.Gates.MinScale, cfg.Gates.WarnScale)
	gateBy := make(map[string]gates.Definition, len(gateSet))
	for _, g := range gateSet {
		gateBy[g.Scope] = g
	}

	fmt.Println(output.Section("Scoring Categories"))
	fmt.Println()

	tbl := output.NewTable("Key", "Name", "Weight", "Gate Min", "Gate Warn")
	var total float64
	for _, def := range defs {
		g := gateBy[string(def.Key)]
		tbl.AddRow(string(def.Key), def.Name,
			fmt.Sprintf("%.0f", def.MaxScore),
			fmt.Sprintf("%.1f", g.Min),
			fmt.Sprintf("%.1f", g.Warn))
		total += def.MaxScore
	}
	tbl.Print()

	fmt.Printf("\n %s %s\n",
		output.StyleLabel.Render("Total weight:"),
		output.StyleValue.Render(fmt.Sprintf("%.0f", total)))
	return nil
}
