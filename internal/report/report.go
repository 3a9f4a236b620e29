// Package report validates, aggregates, and formats the final scoring result.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/blackwell-systems/scorecard/internal/analyzer"
	"github.com/blackwell-systems/scorecard/internal/project"
	"github.com/blackwell-systems/scorecard/internal/score"
)

// scoreSumTolerance is the allowed floating drift between the sum of category
// scores and the overall score before validation flags an aggregation bug.
const scoreSumTolerance = 0.1

// Report is the full structured result of one scoring run.
type Report struct {
	Project         *project.Metadata         `json:"project"`
	Categories      []score.CategoryScore     `json:"categories"`
	Overall         score.OverallScore        `json:"overall"`
	Recommendations []analyzer.Recommendation `json:"recommendations,omitempty"`
	Validation      Validation                `json:"validation"`
}

// Validation holds the consistency-check outcome for a report. Violations are
// reported, never silently corrected.
type Validation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}

// Summary is the compact report shape for quick programmatic consumers.
type Summary struct {
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage int     `json:"percentage"`
	Grade      string  `json:"grade"`
	Categories int     `json:"categories"`
	HasErrors  bool    `json:"has_errors"`
	Timestamp  string  `json:"timestamp"`
}

// Build assembles a validated report from the calculator's output. The
// returned report is complete even when validation fails; callers inspect
// Validation to decide whether to treat that as fatal.
func Build(meta *project.Metadata, categories []score.CategoryScore, overall score.OverallScore) *Report {
	r := &Report{
		Project:         meta,
		Categories:      categories,
		Overall:         overall,
		Recommendations: AggregateRecommendations(categories),
	}
	r.Validation = Validate(r)
	return r
}

// Validate checks the report's consistency invariants.
func Validate(r *Report) Validation {
	var errs []string

	if r.Project == nil {
		errs = append(errs, "project metadata is missing")
	}
	if len(r.Categories) == 0 {
		errs = append(errs, "no category results present")
	}

	var sum float64
	for _, c := range r.Categories {
		sum += c.Score
	}
	if math.Abs(sum-r.Overall.Score) > scoreSumTolerance {
		errs = append(errs, fmt.Sprintf(
			"category scores sum to %.2f but overall score is %.2f", sum, r.Overall.Score))
	}

	return Validation{IsValid: len(errs) == 0, Errors: errs}
}

// AggregateRecommendations merges recommendations from all categories into a
// single list sorted by descending impact, with duplicate suggestions removed.
// Because the list is sorted before deduplication, the highest-impact instance
// of each suggestion survives.
func AggregateRecommendations(categories []score.CategoryScore) []analyzer.Recommendation {
	var all []analyzer.Recommendation
	for _, c := range categories {
		all = append(all, c.Recommendations...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Impact > all[j].Impact
	})

	seen := make(map[string]bool, len(all))
	deduped := all[:0]
	for _, rec := range all {
		if seen[rec.Suggestion] {
			continue
		}
		seen[rec.Suggestion] = true
		deduped = append(deduped, rec)
	}
	return deduped
}

// Summarize derives the compact summary shape without re-deriving any scores.
func Summarize(r *Report) Summary {
	return Summary{
		Score:      r.Overall.Score,
		MaxScore:   r.Overall.MaxScore,
		Percentage: r.Overall.Percentage,
		Grade:      r.Overall.Grade,
		Categories: len(r.Categories),
		HasErrors:  r.Overall.HasErrors,
		Timestamp:  r.Overall.Timestamp.Format(time.RFC3339),
	}
}
