package gates

import (
	"fmt"

	"github.com/blackwell-systems/scorecard/internal/report"
)

// Result is the outcome of evaluating one gate.
type Result struct {
	Name      string   `json:"name"`
	Scope     string   `json:"scope"`
	Score     float64  `json:"score"`
	Threshold float64  `json:"threshold"`
	Passed    bool     `json:"passed"`
	Warning   bool     `json:"warning"`
	Blocking  bool     `json:"blocking"`
	Message   string   `json:"message"`
	Issues    []string `json:"issues,omitempty"`
}

// ReportSummary holds the aggregate gate counts.
type ReportSummary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Warnings int     `json:"warnings"`
	PassRate float64 `json:"pass_rate"`
}

// GatesReport aggregates all gate results for a run. Passed is the AND over
// blocking gates only: non-blocking gates may fail or warn without flipping
// the overall decision.
type GatesReport struct {
	Gates   []Result      `json:"gates"`
	Summary ReportSummary `json:"summary"`
	Passed  bool          `json:"passed"`
}

// Evaluate applies each gate to the validated report's scores. The gate set
// must have been validated with ValidateSet beforehand; evaluation itself
// never fails.
func Evaluate(defs []Definition, r *report.Report) *GatesReport {
	gr := &GatesReport{Passed: true}

	for _, def := range defs {
		res := evaluateOne(def, r)
		gr.Gates = append(gr.Gates, res)

		gr.Summary.Total++
		if res.Passed {
			gr.Summary.Passed++
		} else {
			gr.Summary.Failed++
			if res.Blocking {
				gr.Passed = false
			}
		}
		if res.Warning {
			gr.Summary.Warnings++
		}
	}

	if gr.Summary.Total > 0 {
		gr.Summary.PassRate = float64(gr.Summary.Passed) / float64(gr.Summary.Total)
	}
	return gr
}

func evaluateOne(def Definition, r *report.Report) Result {
	res := Result{
		Name:      def.Name,
		Scope:     def.Scope,
		Threshold: def.Min,
		Blocking:  def.BlockOnFailure,
	}

	var issues []string
	if def.Scope == ScopeOverall {
		res.Score = r.Overall.Score
	} else {
		found := false
		for _, c := range r.Categories {
			if string(c.Key) == def.Scope {
				res.Score = c.Score
				issues = c.Issues
				found = true
				break
			}
		}
		if !found {
			res.Message = fmt.Sprintf("category %q was not scored in this run", def.Scope)
			return res
		}
	}

	res.Passed = res.Score >= def.Min
	res.Warning = res.Passed && res.Score < def.Warn

	switch {
	case !res.Passed:
		res.Message = fmt.Sprintf("%s score %.1f is below minimum %.1f", def.Scope, res.Score, def.Min)
		res.Issues = issues
	case res.Warning:
		res.Message = fmt.Sprintf("%s score %.1f passes but is below warning threshold %.1f", def.Scope, res.Score, def.Warn)
	default:
		res.Message = fmt.Sprintf("%s score %.1f meets threshold %.1f", def.Scope, res.Score, def.Min)
	}
	return res
}
