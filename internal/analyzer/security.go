package analyzer

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// SecurityAnalyzer scores security hygiene: committed env files, hardcoded
// secret patterns, and dependency lockfile presence.
type SecurityAnalyzer struct{}

func (a *SecurityAnalyzer) Key() category.Key { return category.Security }

// secretPattern matches common hardcoded credential assignments. It is a
// heuristic, not a scanner; short values are excluded to limit noise.
var secretPattern = regexp.MustCompile(`(?i)(api[_-]?key|secret|password|token|private[_-]?key)\s*[:=]\s*['"][A-Za-z0-9+/_\-]{16,}['"]`)

// lockfiles are recognized dependency lockfiles.
var lockfiles = []string{
	"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb",
	"go.sum", "poetry.lock", "uv.lock", "Cargo.lock", "Gemfile.lock",
}

func (a *SecurityAnalyzer) Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error) {
	var (
		envFiles    []string
		hasLockfile bool
		sourcePaths []string
	)

	err := project.WalkFiles(meta.Root, cfg.IgnoreDirs, func(f project.FileInfo) {
		base := filepath.Base(f.RelPath)
		if isEnvFile(base) {
			envFiles = append(envFiles, f.RelPath)
		}
		if containsString(lockfiles, base) {
			hasLockfile = true
		}
		if project.HasExtension(f.RelPath, sourceExtensions...) {
			sourcePaths = append(sourcePaths, f.RelPath)
		}
	})
	if err != nil {
		return nil, err
	}

	secretHits := 0
	const maxScanned = 400
	for i, rel := range sourcePaths {
		if i >= maxScanned {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		secretHits += countSecretHits(filepath.Join(meta.Root, rel))
	}

	var score float64
	var issues []string
	var recs []Recommendation

	// Committed env files: 0.3 of the weight.
	if len(envFiles) == 0 {
		score += 0.3 * cfg.MaxScore
	} else {
		issues = append(issues, "Environment files committed: "+strings.Join(envFiles, ", "))
		recs = append(recs, Recommendation{
			Suggestion:  "Remove committed .env files",
			Description: "Environment files often contain credentials; keep them out of version control.",
			Impact:      0.3 * cfg.MaxScore,
			Category:    category.Security,
		})
	}

	// Hardcoded secrets: 0.4 of the weight.
	if secretHits == 0 {
		score += 0.4 * cfg.MaxScore
	} else {
		issues = append(issues, "Possible hardcoded secrets in source files")
		recs = append(recs, Recommendation{
			Suggestion:  "Move secrets to environment configuration",
			Description: "Credential-like literals were found in source; rotate them and load from the environment.",
			Impact:      0.4 * cfg.MaxScore,
			Category:    category.Security,
		})
	}

	// Lockfile: 0.3 of the weight.
	if hasLockfile {
		score += 0.3 * cfg.MaxScore
	} else {
		issues = append(issues, "No dependency lockfile found")
		recs = append(recs, Recommendation{
			Suggestion:  "Commit a dependency lockfile",
			Description: "Lockfiles pin dependency versions against supply-chain drift.",
			Impact:      0.3 * cfg.MaxScore,
			Category:    category.Security,
		})
	}

	metrics := map[string]float64{
		"env_files":   float64(len(envFiles)),
		"secret_hits": float64(secretHits),
	}
	return result(category.Security, cfg, score, issues, recs, metrics), nil
}

// isEnvFile matches .env and its variants, excluding example templates.
func isEnvFile(base string) bool {
	lower := strings.ToLower(base)
	if !strings.HasPrefix(lower, ".env") {
		return false
	}
	return !strings.HasSuffix(lower, ".example") && !strings.HasSuffix(lower, ".sample") &&
		!strings.HasSuffix(lower, ".template")
}

// countSecretHits counts credential-like lines in one file.
func countSecretHits(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	hits := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if secretPattern.MatchString(scanner.Text()) {
			hits++
		}
	}
	return hits
}
