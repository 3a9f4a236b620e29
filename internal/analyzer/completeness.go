package analyzer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// CompletenessAnalyzer scores release readiness: package metadata, license,
// and changelog.
type CompletenessAnalyzer struct{}

func (a *CompletenessAnalyzer) Key() category.Key { return category.Completeness }

func (a *CompletenessAnalyzer) Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error) {
	var (
		hasLicense   bool
		hasChangelog bool
	)

	err := project.WalkFiles(meta.Root, cfg.IgnoreDirs, func(f project.FileInfo) {
		if topDir(f.RelPath) != "" {
			return
		}
		base := strings.ToLower(filepath.Base(f.RelPath))
		if strings.HasPrefix(base, "license") || strings.HasPrefix(base, "licence") {
			hasLicense = true
		}
		if strings.HasPrefix(base, "changelog") || base == "history.md" {
			hasChangelog = true
		}
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var score float64
	var issues []string
	var recs []Recommendation

	if hasLicense {
		score += 0.4 * cfg.MaxScore
	} else {
		issues = append(issues, "No LICENSE file")
		recs = append(recs, Recommendation{
			Suggestion:  "Add a LICENSE file",
			Description: "Without a license the project's terms of use are undefined.",
			Impact:      0.4 * cfg.MaxScore,
			Category:    category.Completeness,
		})
	}

	if hasChangelog {
		score += 0.2 * cfg.MaxScore
	}

	// Declared metadata: 0.4 of the weight, from package.json fields or the
	// detected version.
	fieldScore := metadataFieldScore(meta)
	score += 0.4 * cfg.MaxScore * fieldScore
	if fieldScore < 1 {
		issues = append(issues, "Package metadata is incomplete (name/version/description)")
		recs = append(recs, Recommendation{
			Suggestion:  "Fill in package metadata",
			Description: "Declare name, version, and description so the project is publishable.",
			Impact:      0.4 * cfg.MaxScore * (1 - fieldScore),
			Category:    category.Completeness,
		})
	}

	return result(category.Completeness, cfg, score, issues, recs, nil), nil
}

// metadataFieldScore returns the fraction of expected metadata fields that
// are declared, in [0, 1].
func metadataFieldScore(meta *project.Metadata) float64 {
	data, err := os.ReadFile(filepath.Join(meta.Root, "package.json"))
	if err != nil {
		// Non-node projects: version detection is the only signal.
		if meta.Version != "" {
			return 1
		}
		if meta.Type == project.TypeGoModule {
			// go.mod carries the name; versions live in tags.
			return 1
		}
		return 0.5
	}

	var pkg struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return 0
	}

	declared := 0
	if pkg.Name != "" {
		declared++
	}
	if pkg.Version != "" {
		declared++
	}
	if pkg.Description != "" {
		declared++
	}
	return float64(declared) / 3
}
