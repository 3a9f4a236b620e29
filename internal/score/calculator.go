package score

import (
	"time"

	"github.com/blackwell-systems/scorecard/internal/analyzer"
	"github.com/blackwell-systems/scorecard/internal/category"
)

// Calculate converts raw analyzer results into graded category scores and an
// overall score. Categories appear in definition order regardless of analyzer
// completion order. The function is pure apart from the overall timestamp:
// the same results always produce the same scores and grades.
func Calculate(results map[category.Key]*analyzer.Result, defs []category.Definition) ([]CategoryScore, OverallScore) {
	var categories []CategoryScore
	var total, totalMax float64
	hasErrors := false

	for _, def := range defs {
		res, ok := results[def.Key]
		if !ok {
			continue
		}

		pct := Percentage(res.Score, res.MaxScore)
		categories = append(categories, CategoryScore{
			Key:             def.Key,
			Name:            def.Name,
			Score:           res.Score,
			MaxScore:        res.MaxScore,
			Percentage:      pct,
			Grade:           Grade(pct),
			Issues:          res.Issues,
			Recommendations: res.Recommendations,
			Err:             res.Err,
		})

		total += res.Score
		totalMax += res.MaxScore
		if res.Err != "" {
			hasErrors = true
		}
	}

	overallPct := Percentage(total, totalMax)
	overall := OverallScore{
		Score:      total,
		MaxScore:   totalMax,
		Percentage: overallPct,
		Grade:      Grade(overallPct),
		HasErrors:  hasErrors,
		Timestamp:  time.Now().UTC(),
	}

	return categories, overall
}
