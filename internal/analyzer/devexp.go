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

// DevExpAnalyzer scores developer experience: how quickly a new contributor
// can build, run, and contribute to the project.
type DevExpAnalyzer struct{}

func (a *DevExpAnalyzer) Key() category.Key { return category.DevExp }

func (a *DevExpAnalyzer) Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error) {
	var (
		readmeSize      int64
		hasContributing bool
		hasEditorConfig bool
		hasTaskRunner   bool
	)

	err := project.WalkFiles(meta.Root, cfg.IgnoreDirs, func(f project.FileInfo) {
		base := strings.ToLower(filepath.Base(f.RelPath))
		if topDir(f.RelPath) != "" {
			return
		}
		switch {
		case strings.HasPrefix(base, "readme"):
			readmeSize = f.Size
		case strings.HasPrefix(base, "contributing"):
			hasContributing = true
		case base == ".editorconfig":
			hasEditorConfig = true
		case base == "makefile" || base == "justfile" || base == "taskfile.yml":
			hasTaskRunner = true
		}
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !hasTaskRunner {
		hasTaskRunner = hasNpmScripts(meta.Root)
	}

	var score float64
	var issues []string
	var recs []Recommendation

	// README depth: 0.4 of the weight (full above 1KB, half above 200B).
	switch {
	case readmeSize > 1024:
		score += 0.4 * cfg.MaxScore
	case readmeSize > 200:
		score += 0.2 * cfg.MaxScore
		issues = append(issues, "README is very short")
	default:
		issues = append(issues, "README is missing or nearly empty")
		recs = append(recs, Recommendation{
			Suggestion:  "Document setup and usage in the README",
			Description: "New contributors need install, build, and run instructions.",
			Impact:      0.4 * cfg.MaxScore,
			Category:    category.DevExp,
		})
	}

	// Task runner / scripts: 0.3 of the weight.
	if hasTaskRunner {
		score += 0.3 * cfg.MaxScore
	} else {
		issues = append(issues, "No task runner or package scripts found")
		recs = append(recs, Recommendation{
			Suggestion:  "Add build and test scripts",
			Description: "A Makefile or package scripts give contributors one obvious entry point.",
			Impact:      0.3 * cfg.MaxScore,
			Category:    category.DevExp,
		})
	}

	// Contributor docs and editor config: 0.15 each.
	if hasContributing {
		score += 0.15 * cfg.MaxScore
	}
	if hasEditorConfig {
		score += 0.15 * cfg.MaxScore
	}

	metrics := map[string]float64{
		"readme_bytes": float64(readmeSize),
	}
	return result(category.DevExp, cfg, score, issues, recs, metrics), nil
}

// hasNpmScripts reports whether package.json declares any scripts.
func hasNpmScripts(root string) bool {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return false
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return false
	}
	return len(pkg.Scripts) > 0
}
