package analyzer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// StructureAnalyzer scores project layout and organization.
//
// Scoring breakdown (fractions of the category weight):
//   - README present:          0.25
//   - source directory layout: 0.25
//   - .gitignore present:      0.15
//   - docs/ directory:         0.15
//   - shallow root directory:  0.20 (penalized when too many loose files)
type StructureAnalyzer struct{}

func (a *StructureAnalyzer) Key() category.Key { return category.Structure }

func (a *StructureAnalyzer) Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error) {
	var (
		hasReadme    bool
		hasGitignore bool
		hasDocs      bool
		hasSrcLayout bool
		rootFiles    int
	)

	err := project.WalkFiles(meta.Root, cfg.IgnoreDirs, func(f project.FileInfo) {
		base := strings.ToLower(filepath.Base(f.RelPath))
		dir := topDir(f.RelPath)

		if dir == "" {
			rootFiles++
			if strings.HasPrefix(base, "readme") {
				hasReadme = true
			}
			if base == ".gitignore" {
				hasGitignore = true
			}
		}
		switch dir {
		case "src", "lib", "internal", "pkg", "app", "cmd":
			hasSrcLayout = true
		case "docs", "doc":
			hasDocs = true
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

	if hasReadme {
		score += 0.25 * cfg.MaxScore
	} else {
		issues = append(issues, "No README file found")
		recs = append(recs, Recommendation{
			Suggestion:  "Add a README",
			Description: "A README documents what the project does and how to run it.",
			Impact:      0.25 * cfg.MaxScore,
			Category:    category.Structure,
		})
	}

	if hasSrcLayout {
		score += 0.25 * cfg.MaxScore
	} else {
		issues = append(issues, "No dedicated source directory (src/, lib/, internal/, ...)")
		recs = append(recs, Recommendation{
			Suggestion:  "Organize code into a source directory",
			Description: "Moving code out of the repository root clarifies the project layout.",
			Impact:      0.25 * cfg.MaxScore,
			Category:    category.Structure,
		})
	}

	if hasGitignore {
		score += 0.15 * cfg.MaxScore
	} else {
		issues = append(issues, "No .gitignore file")
		recs = append(recs, Recommendation{
			Suggestion:  "Add a .gitignore",
			Description: "Keeps build artifacts and local files out of version control.",
			Impact:      0.15 * cfg.MaxScore,
			Category:    category.Structure,
		})
	}

	if hasDocs {
		score += 0.15 * cfg.MaxScore
	}

	// Root clutter: full points up to 12 loose files, none beyond 30.
	switch {
	case rootFiles <= 12:
		score += 0.20 * cfg.MaxScore
	case rootFiles <= 30:
		score += 0.10 * cfg.MaxScore
		issues = append(issues, "Repository root is cluttered")
	default:
		issues = append(issues, "Repository root is cluttered")
	}

	metrics := map[string]float64{
		"root_files": float64(rootFiles),
	}
	return result(category.Structure, cfg, score, issues, recs, metrics), nil
}

// topDir returns the first path element of a slash-separated relative path,
// or "" for files directly in the root.
func topDir(rel string) string {
	idx := strings.IndexByte(rel, '/')
	if idx < 0 {
		return ""
	}
	return rel[:idx]
}
