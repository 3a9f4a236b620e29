// Package score converts raw analyzer results into weighted category and
// overall scores with letter grades.
package score

import (
	"time"

	"github.com/blackwell-systems/scorecard/internal/analyzer"
	"github.com/blackwell-systems/scorecard/internal/category"
)

// CategoryScore is the weighted, graded result for one category. It is
// derived once from an analyzer result and never mutated afterwards.
type CategoryScore struct {
	Key             category.Key              `json:"key"`
	Name            string                    `json:"name"`
	Score           float64                   `json:"score"`
	MaxScore        float64                   `json:"max_score"`
	Percentage      int                       `json:"percentage"`
	Grade           string                    `json:"grade"`
	Issues          []string                  `json:"issues,omitempty"`
	Recommendations []analyzer.Recommendation `json:"recommendations,omitempty"`
	Err             string                    `json:"error,omitempty"`
}

// OverallScore aggregates all category scores for a run.
type OverallScore struct {
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Percentage int       `json:"percentage"`
	Grade      string    `json:"grade"`
	HasErrors  bool      `json:"has_errors"`
	Timestamp  time.Time `json:"timestamp"`
}
