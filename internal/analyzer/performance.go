package analyzer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// PerformanceAnalyzer scores performance hygiene: oversized assets committed
// to the repository and runaway dependency counts.
type PerformanceAnalyzer struct{}

func (a *PerformanceAnalyzer) Key() category.Key { return category.Performance }

const (
	largeFileBytes = 5 * 1024 * 1024
	hugeFileBytes  = 50 * 1024 * 1024
)

func (a *PerformanceAnalyzer) Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error) {
	var (
		largeFiles int
		hugeFiles  int
		totalBytes int64
	)

	err := project.WalkFiles(meta.Root, cfg.IgnoreDirs, func(f project.FileInfo) {
		totalBytes += f.Size
		if f.Size > hugeFileBytes {
			hugeFiles++
		} else if f.Size > largeFileBytes {
			largeFiles++
		}
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	depCount := countDependencies(meta.Root)

	var score float64
	var issues []string
	var recs []Recommendation

	// Committed asset sizes: 0.5 of the weight.
	switch {
	case hugeFiles > 0:
		issues = append(issues, "Very large files (>50MB) committed to the repository")
		recs = append(recs, Recommendation{
			Suggestion:  "Move large binaries out of the repository",
			Description: "Large committed files slow clones and CI checkouts; use release storage or Git LFS.",
			Impact:      0.5 * cfg.MaxScore,
			Category:    category.Performance,
		})
	case largeFiles > 2:
		score += 0.25 * cfg.MaxScore
		issues = append(issues, "Multiple large files (>5MB) committed to the repository")
	default:
		score += 0.5 * cfg.MaxScore
	}

	// Dependency count: 0.5 of the weight. Thresholds are generous; only
	// clearly heavy dependency trees lose points.
	switch {
	case depCount <= 30:
		score += 0.5 * cfg.MaxScore
	case depCount <= 80:
		score += 0.3 * cfg.MaxScore
		issues = append(issues, "Large number of direct dependencies")
	default:
		issues = append(issues, "Very large number of direct dependencies")
		recs = append(recs, Recommendation{
			Suggestion:  "Audit and prune dependencies",
			Description: "Every dependency adds install, build, and supply-chain cost.",
			Impact:      0.5 * cfg.MaxScore,
			Category:    category.Performance,
		})
	}

	metrics := map[string]float64{
		"large_files":  float64(largeFiles),
		"huge_files":   float64(hugeFiles),
		"total_bytes":  float64(totalBytes),
		"dependencies": float64(depCount),
	}
	return result(category.Performance, cfg, score, issues, recs, metrics), nil
}

// countDependencies counts direct dependencies declared in package.json.
// Non-node projects report zero, which is treated as lightweight.
func countDependencies(root string) int {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return 0
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return 0
	}
	return len(pkg.Dependencies) + len(pkg.DevDependencies)
}
