// Package analyzer defines the analyzer contract, the concrete category
// analyzers, and the orchestrator that fans them out per run.
package analyzer

import (
	"context"

	"github.com/blackwell-systems/scorecard/internal/category"
	"github.com/blackwell-systems/scorecard/internal/project"
)

// Recommendation is one actionable improvement produced by an analyzer.
// Suggestion doubles as the deduplication key when recommendations from
// multiple categories are merged.
type Recommendation struct {
	Suggestion  string       `json:"suggestion"`
	Description string       `json:"description"`
	Impact      float64      `json:"impact"`
	Category    category.Key `json:"category"`
}

// Result is the raw outcome of one analyzer run. Score is always within
// [0, MaxScore]. Err is non-empty only when the analyzer failed; a failed
// category keeps its MaxScore so the total-weight invariant holds.
type Result struct {
	Key             category.Key       `json:"key"`
	Score           float64            `json:"score"`
	MaxScore        float64            `json:"max_score"`
	Issues          []string           `json:"issues,omitempty"`
	Recommendations []Recommendation   `json:"recommendations,omitempty"`
	Metrics         map[string]float64 `json:"metrics,omitempty"`
	Err             string             `json:"error,omitempty"`
}

// Config carries the per-category settings handed to each analyzer.
type Config struct {
	MaxScore   float64
	IgnoreDirs []string
	Verbose    bool
}

// Analyzer inspects a project and produces a raw result for one category.
// Implementations return errors only for unexpected failures; expected
// findings are reported as issues with a reduced score.
type Analyzer interface {
	Key() category.Key
	Analyze(ctx context.Context, meta *project.Metadata, cfg Config) (*Result, error)
}

// clamp bounds a score to [0, max].
func clamp(score, max float64) float64 {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}

// result assembles a Result with the score clamped to the category weight.
func result(key category.Key, cfg Config, score float64, issues []string, recs []Recommendation, metrics map[string]float64) *Result {
	return &Result{
		Key:             key,
		Score:           clamp(score, cfg.MaxScore),
		MaxScore:        cfg.MaxScore,
		Issues:          issues,
		Recommendations: recs,
		Metrics:         metrics,
	}
}
