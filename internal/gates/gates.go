// Package gates evaluates threshold policy against validated scores and
// emits the result in CI-pipeline-specific formats.
package gates

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blackwell-systems/scorecard/internal/category"
)

// ScopeOverall is the gate scope targeting the overall score. Every other
// scope names a category key.
const ScopeOverall = "overall"

// ErrBlocked is returned by blocking-mode evaluation when the report failed.
// Callers use it to exit non-zero after the report has been written.
var ErrBlocked = errors.New("quality gates failed")

// Definition is one configured gate: a threshold pair applied to the overall
// score or to a single category's score.
type Definition struct {
	Name           string  `json:"name"`
	Scope          string  `json:"scope"`
	Min            float64 `json:"min"`
	Warn           float64 `json:"warn"`
	BlockOnFailure bool    `json:"block_on_failure"`
}

// ConfigError reports a gate misconfiguration. It is raised at setup time,
// before any evaluation happens.
type ConfigError struct {
	Gate   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Gate == "" {
		return fmt.Sprintf("gate configuration: %s", e.Reason)
	}
	return fmt.Sprintf("gate %q: %s", e.Gate, e.Reason)
}

// Defaults returns the standard gate set for the active categories: one
// blocking overall gate at 70/80 and a non-blocking gate per category at
// 75%/90% of its weight.
func Defaults(defs []category.Definition) []Definition {
	return Derive(defs, 70, 80, 0.75, 0.90)
}

// Derive builds a gate set from configured thresholds: a blocking overall
// gate at overallMin/overallWarn and a non-blocking per-category gate at
// minScale/warnScale of each category's weight.
func Derive(defs []category.Definition, overallMin, overallWarn, minScale, warnScale float64) []Definition {
	gates := []Definition{
		{Name: "overall", Scope: ScopeOverall, Min: overallMin, Warn: overallWarn, BlockOnFailure: true},
	}
	for _, def := range defs {
		gates = append(gates, Definition{
			Name:  string(def.Key),
			Scope: string(def.Key),
			Min:   minScale * def.MaxScore,
			Warn:  warnScale * def.MaxScore,
		})
	}
	return gates
}

// thresholdOverride is the JSON shape accepted by --thresholds.
type thresholdOverride struct {
	Min   *float64 `json:"min"`
	Warn  *float64 `json:"warn"`
	Block *bool    `json:"block"`
}

// ParseOverrides applies a JSON threshold document on top of a gate set.
// Keys are gate scopes ("overall" or a category key); unknown keys are a
// configuration error.
func ParseOverrides(raw string, gates []Definition) ([]Definition, error) {
	if raw == "" {
		return gates, nil
	}

	var overrides map[string]thresholdOverride
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("invalid thresholds JSON: %v", err)}
	}

	out := make([]Definition, len(gates))
	copy(out, gates)

	for scope, ov := range overrides {
		found := false
		for i := range out {
			if out[i].Scope != scope {
				continue
			}
			found = true
			if ov.Min != nil {
				out[i].Min = *ov.Min
			}
			if ov.Warn != nil {
				out[i].Warn = *ov.Warn
			}
			if ov.Block != nil {
				out[i].BlockOnFailure = *ov.Block
			}
		}
		if !found {
			return nil, &ConfigError{Gate: scope, Reason: "no gate with this scope"}
		}
	}
	return out, nil
}

// ValidateSet checks a gate set for misconfiguration: empty sets, warn
// thresholds below minimums, and scopes naming unknown categories.
func ValidateSet(gates []Definition, defs []category.Definition) error {
	if len(gates) == 0 {
		return &ConfigError{Reason: "no gates configured"}
	}
	for _, g := range gates {
		if g.Warn < g.Min {
			return &ConfigError{Gate: g.Name, Reason: fmt.Sprintf(
				"warning threshold %.1f is below minimum %.1f", g.Warn, g.Min)}
		}
		if g.Scope == ScopeOverall {
			continue
		}
		if _, ok := category.Find(category.Key(g.Scope), defs); !ok {
			return &ConfigError{Gate: g.Name, Reason: fmt.Sprintf("unknown scope %q", g.Scope)}
		}
	}
	return nil
}
