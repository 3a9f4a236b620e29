package analyzer

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// sourceExtensions are the file types counted as source code.
var sourceExtensions = []string{
	".go", ".js", ".jsx", ".ts", ".tsx", ".py", ".rb", ".java", ".rs", ".c", ".cc", ".cpp", ".h",
}

// QualityAnalyzer scores code quality signals: lint configuration, formatting
// configuration, file sizes, and leftover TODO/FIXME markers.
type QualityAnalyzer struct{}

func (a *QualityAnalyzer) Key() category.Key { return category.Quality }

// lintConfigs are recognized linter configuration files.
var lintConfigs = []string{
	".eslintrc", ".eslintrc.js", ".eslintrc.json", ".eslintrc.yml", "eslint.config.js",
	"eslint.config.mjs", ".golangci.yml", ".golangci.yaml", "ruff.toml", ".ruff.toml",
	".rubocop.yml", "biome.json", "tslint.json",
}

// formatConfigs are recognized formatter configuration files.
var formatConfigs = []string{
	".prettierrc", ".prettierrc.json", ".prettierrc.yml", "prettier.config.js",
	".editorconfig", ".clang-format", "rustfmt.toml",
}

func (a *QualityAnalyzer) Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error) {
	var (
		hasLintConfig   bool
		hasFormatConfig bool
		sourceFiles     int
		longFiles       int
		todoCount       int
	)

	var sourcePaths []string
	err := project.WalkFiles(meta.Root, cfg.IgnoreDirs, func(f project.FileInfo) {
		base := filepath.Base(f.RelPath)
		if containsString(lintConfigs, base) {
			hasLintConfig = true
		}
		if containsString(formatConfigs, base) {
			hasFormatConfig = true
		}
		if project.HasExtension(f.RelPath, sourceExtensions...) {
			sourceFiles++
			sourcePaths = append(sourcePaths, f.RelPath)
		}
	})
	if err != nil {
		return nil, err
	}

	// Line-level scan, bounded so huge repositories stay cheap.
	const maxScanned = 400
	for i, rel := range sourcePaths {
		if i >= maxScanned {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lines, todos := scanSourceFile(filepath.Join(meta.Root, rel))
		if lines > 500 {
			longFiles++
		}
		todoCount += todos
	}

	var score float64
	var issues []string
	var recs []Recommendation

	if hasLintConfig {
		score += 0.35 * cfg.MaxScore
	} else {
		issues = append(issues, "No linter configuration found")
		recs = append(recs, Recommendation{
			Suggestion:  "Add a linter configuration",
			Description: "Automated linting catches defects before review.",
			Impact:      0.35 * cfg.MaxScore,
			Category:    category.Quality,
		})
	}

	if hasFormatConfig {
		score += 0.20 * cfg.MaxScore
	} else {
		issues = append(issues, "No formatter configuration found")
		recs = append(recs, Recommendation{
			Suggestion:  "Add a formatter configuration",
			Description: "Consistent formatting removes style churn from diffs.",
			Impact:      0.20 * cfg.MaxScore,
			Category:    category.Quality,
		})
	}

	// File length: full points when under 10% of files are oversized.
	if sourceFiles == 0 || float64(longFiles)/float64(sourceFiles) <= 0.10 {
		score += 0.25 * cfg.MaxScore
	} else {
		issues = append(issues, "Several source files exceed 500 lines")
		recs = append(recs, Recommendation{
			Suggestion:  "Split oversized source files",
			Description: "Long files are harder to review and test in isolation.",
			Impact:      0.25 * cfg.MaxScore,
			Category:    category.Quality,
		})
	}

	// TODO density: tolerate one marker per ten files.
	if sourceFiles == 0 || float64(todoCount) <= float64(sourceFiles)/10+3 {
		score += 0.20 * cfg.MaxScore
	} else {
		issues = append(issues, "High TODO/FIXME density in source files")
	}

	metrics := map[string]float64{
		"source_files": float64(sourceFiles),
		"long_files":   float64(longFiles),
		"todo_count":   float64(todoCount),
	}
	return result(category.Quality, cfg, score, issues, recs, metrics), nil
}

// scanSourceFile counts lines and TODO/FIXME markers in one file.
func scanSourceFile(path string) (lines, todos int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines++
		text := scanner.Text()
		if strings.Contains(text, "TODO") || strings.Contains(text, "FIXME") {
			todos++
		}
	}
	return lines, todos
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
