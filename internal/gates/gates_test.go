package gates

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/scorecard/internal/category"
)

func TestDefaults(t *testing.T) {
	defs := category.DefaultDefinitions()
	gates := Defaults(defs)

	if len(gates) != len(defs)+1 {
		t.Fatalf("expected %d gates, got %d", len(defs)+1, len(gates))
	}

	overall := gates[0]
	if overall.Scope != ScopeOverall || overall.Min != 70 || overall.Warn != 80 || !overall.BlockOnFailure {
		t.Errorf("unexpected overall gate: %+v", overall)
	}

	for i, g := range gates[1:] {
		def := defs[i]
		if g.Scope != string(def.Key) {
			t.Errorf("gate %d: expected scope %s, got %s", i, def.Key, g.Scope)
		}
		if g.Min != 0.75*def.MaxScore || g.Warn != 0.90*def.MaxScore {
			t.Errorf("gate %s: unexpected thresholds min=%.2f warn=%.2f", g.Scope, g.Min, g.Warn)
		}
		if g.BlockOnFailure {
			t.Errorf("category gate %s should not block by default", g.Scope)
		}
	}
}

func TestDerive_CustomThresholds(t *testing.T) {
	defs := category.DefaultDefinitions()
	gates := Derive(defs, 85, 95, 0.5, 0.6)

	if gates[0].Min != 85 || gates[0].Warn != 95 {
		t.Errorf("unexpected overall gate: %+v", gates[0])
	}
	if gates[1].Min != 10 || gates[1].Warn != 12 {
		t.Errorf("unexpected structure gate: %+v", gates[1])
	}
}

func TestParseOverrides(t *testing.T) {
	gates := Defaults(category.DefaultDefinitions())

	out, err := ParseOverrides(`{"overall":{"min":85,"warn":95},"security":{"block":true}}`, gates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out[0].Min != 85 || out[0].Warn != 95 {
		t.Errorf("overall override not applied: %+v", out[0])
	}
	for _, g := range out {
		if g.Scope == "security" && !g.BlockOnFailure {
			t.Error("security block override not applied")
		}
	}
	// Originals untouched.
	if gates[0].Min != 70 {
		t.Errorf("overrides mutated the input set: %+v", gates[0])
	}
}

func TestParseOverrides_Empty(t *testing.T) {
	gates := Defaults(category.DefaultDefinitions())
	out, err := ParseOverrides("", gates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(gates) {
		t.Errorf("empty override changed the gate set")
	}
}

func TestParseOverrides_UnknownScope(t *testing.T) {
	_, err := ParseOverrides(`{"velocity":{"min":5}}`, Defaults(category.DefaultDefinitions()))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Gate != "velocity" {
		t.Errorf("expected offending scope in error, got %q", cfgErr.Gate)
	}
}

func TestParseOverrides_BadJSON(t *testing.T) {
	_, err := ParseOverrides(`{not json`, Defaults(category.DefaultDefinitions()))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestValidateSet(t *testing.T) {
	defs := category.DefaultDefinitions()

	if err := ValidateSet(Defaults(defs), defs); err != nil {
		t.Errorf("default gates should validate: %v", err)
	}

	if err := ValidateSet(nil, defs); err == nil {
		t.Error("empty gate set should be rejected")
	}

	bad := []Definition{{Name: "overall", Scope: ScopeOverall, Min: 80, Warn: 70}}
	if err := ValidateSet(bad, defs); err == nil {
		t.Error("warn below min should be rejected")
	}

	bad = []Definition{{Name: "velocity", Scope: "velocity", Min: 5, Warn: 8}}
	if err := ValidateSet(bad, defs); err == nil {
		t.Error("unknown scope should be rejected")
	}
}
