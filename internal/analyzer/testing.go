package analyzer

import (
	"context"
	"strings"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// TestingAnalyzer scores test presence: test file ratio against source files
// and whether CI is configured to run anything at all.
type TestingAnalyzer struct{}

func (a *TestingAnalyzer) Key() category.Key { return category.Testing }

func (a *TestingAnalyzer) Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error) {
	var (
		sourceFiles int
		testFiles   int
		hasCI       bool
	)

	err := project.WalkFiles(meta.Root, cfg.IgnoreDirs, func(f project.FileInfo) {
		if isCIConfig(f.RelPath) {
			hasCI = true
		}
		if !project.HasExtension(f.RelPath, sourceExtensions...) {
			return
		}
		if isTestFile(f.RelPath) {
			testFiles++
		} else {
			sourceFiles++
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

	// Test ratio: 0.7 of the weight, scaled linearly up to 1 test file per
	// 3 source files.
	if testFiles == 0 {
		issues = append(issues, "No test files found")
		recs = append(recs, Recommendation{
			Suggestion:  "Add automated tests",
			Description: "Tests protect behavior during refactors and catch regressions in CI.",
			Impact:      0.7 * cfg.MaxScore,
			Category:    category.Testing,
		})
	} else {
		ratio := float64(testFiles) / float64(max(sourceFiles, 1))
		coverage := ratio / 0.33
		if coverage > 1 {
			coverage = 1
		}
		score += 0.7 * cfg.MaxScore * coverage
		if coverage < 0.5 {
			issues = append(issues, "Low test-to-source file ratio")
			recs = append(recs, Recommendation{
				Suggestion:  "Expand test coverage",
				Description: "Most source files have no corresponding tests.",
				Impact:      0.35 * cfg.MaxScore,
				Category:    category.Testing,
			})
		}
	}

	// CI presence: 0.3 of the weight.
	if hasCI {
		score += 0.3 * cfg.MaxScore
	} else {
		issues = append(issues, "No CI configuration found")
		recs = append(recs, Recommendation{
			Suggestion:  "Run tests in CI",
			Description: "A CI pipeline keeps the test suite honest on every change.",
			Impact:      0.3 * cfg.MaxScore,
			Category:    category.Testing,
		})
	}

	metrics := map[string]float64{
		"source_files": float64(sourceFiles),
		"test_files":   float64(testFiles),
	}
	return result(category.Testing, cfg, score, issues, recs, metrics), nil
}

// isTestFile recognizes common test file naming conventions across languages.
func isTestFile(rel string) bool {
	lower := strings.ToLower(rel)
	base := lower
	if idx := strings.LastIndexByte(lower, '/'); idx >= 0 {
		base = lower[idx+1:]
	}
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.Contains(base, ".test."),
		strings.Contains(base, ".spec."),
		strings.HasPrefix(base, "test_"):
		return true
	}
	return strings.Contains(lower, "__tests__/") ||
		strings.HasPrefix(lower, "tests/") || strings.Contains(lower, "/tests/") ||
		strings.HasPrefix(lower, "test/") || strings.Contains(lower, "/test/")
}

// isCIConfig recognizes common CI pipeline definitions.
func isCIConfig(rel string) bool {
	lower := strings.ToLower(rel)
	return strings.HasPrefix(lower, ".github/workflows/") ||
		lower == ".gitlab-ci.yml" ||
		lower == "jenkinsfile" ||
		lower == ".circleci/config.yml" ||
		lower == ".travis.yml"
}
