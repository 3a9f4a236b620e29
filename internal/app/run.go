package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blackwell-systems/scorecard/internal/analyzer"
	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/config"
	"github.com/blackwell-systems/scorecard/internal/gates"
	"github.com/blackwell-systems/scorecard/internal/output"
	"github.com/blackwell-systems/scorecard/internal/project"
	"github.com/blackwell-systems/scorecard/internal/report"
	"github.com/blackwell-systems/scorecard/internal/score"
	"github.com/blackwell-systems/scorecard/internal/store"
)

// runPipeline executes the full scoring pipeline for one project: metadata
// detection, analyzer fan-out, score calculation, and report assembly.
func runPipeline(ctx context.Context, cfg *config.Config, root, categoriesCSV string) (*report.Report, error) {
	defs := cfg.Definitions()
	keys, err := category.ParseList(categoriesCSV, defs)
	if err != nil {
		return nil, err
	}

	meta, err := project.Detect(root)
	if err != nil {
		return nil, err
	}

	opts := []analyzer.Option{
		analyzer.WithConcurrency(cfg.Concurrency),
		analyzer.WithIgnoreDirs(cfg.IgnoreDirs),
	}
	if flagVerbose {
		opts = append(opts, analyzer.WithProgress(func(key category.Key, failed bool) {
			status := "ok"
			if failed {
				status = "failed"
			}
			fmt.Fprintf(os.Stderr, "analyzed %s: %s\n", key, status)
		}))
	}

	orch := analyzer.NewOrchestrator(defs, opts...)
	results, err := orch.Run(ctx, meta, keys)
	if err != nil {
		return nil, err
	}

	categories, overall := score.Calculate(results, defs)
	return report.Build(meta, categories, overall), nil
}

// projectRoot resolves the positional project path argument, defaulting to
// the current directory.
func projectRoot(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// saveSnapshot persists a run to the history database and returns the new
// snapshot ID. History is best effort: a storage failure degrades to a
// warning, never a failed run.
func saveSnapshot(r *report.Report) (*store.DB, int64) {
	db, err := store.Open(config.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: score history unavailable: %v\n", err)
		return nil, 0
	}

	snapshotID, err := db.SaveSnapshot(&store.Snapshot{
		TakenAt:     time.Now().UTC(),
		Project:     r.Project.Root,
		ProjectType: string(r.Project.Type),
		AppVersion:  appVersion,
		Score:       r.Overall.Score,
		MaxScore:    r.Overall.MaxScore,
		Percentage:  r.Overall.Percentage,
		Grade:       r.Overall.Grade,
		HasErrors:   r.Overall.HasErrors,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving score snapshot: %v\n", err)
		_ = db.Close()
		return nil, 0
	}

	for _, c := range r.Categories {
		err := db.InsertCategoryScore(&store.CategoryRow{
			SnapshotID: snapshotID,
			Category:   string(c.Key),
			Score:      c.Score,
			MaxScore:   c.MaxScore,
			Percentage: c.Percentage,
			Grade:      c.Grade,
			IssueCount: len(c.Issues),
			Err:        c.Err,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: saving category score: %v\n", err)
			break
		}
	}
	return db, snapshotID
}

// saveGateResults records the per-gate outcomes against a saved snapshot.
func saveGateResults(db *store.DB, snapshotID int64, gr *gates.GatesReport) {
	if db == nil {
		return
	}
	for _, g := range gr.Gates {
		err := db.InsertGateResult(&store.GateRow{
			SnapshotID: snapshotID,
			Name:       g.Name,
			Scope:      g.Scope,
			Score:      g.Score,
			Threshold:  g.Threshold,
			Passed:     g.Passed,
			Warning:    g.Warning,
			Blocking:   g.Blocking,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: saving gate result: %v\n", err)
			return
		}
	}
}

// setupColor applies the --no-color flag and TTY detection.
func setupColor() {
	if flagNoColor {
		output.SetNoColor(true)
	}
	output.AutoDetectColor()
}
