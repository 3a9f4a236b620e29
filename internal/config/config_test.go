package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/scorecard/internal/category"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, cfg.Concurrency)
	}
	if cfg.Weights != DefaultWeights {
		t.Errorf("expected default weights, got %+v", cfg.Weights)
	}
	if cfg.Gates != DefaultGateThresholds {
		t.Errorf("expected default gate thresholds, got %+v", cfg.Gates)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "concurrency: 2\nweights:\n  security: 25\ngates:\n  overall_min: 85\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("expected concurrency 2, got %d", cfg.Concurrency)
	}
	if cfg.Weights.Security != 25 {
		t.Errorf("expected security weight 25, got %f", cfg.Weights.Security)
	}
	// Untouched keys keep their defaults.
	if cfg.Weights.Structure != DefaultWeights.Structure {
		t.Errorf("expected default structure weight, got %f", cfg.Weights.Structure)
	}
	if cfg.Gates.OverallMin != 85 {
		t.Errorf("expected overall min 85, got %f", cfg.Gates.OverallMin)
	}
	if cfg.Gates.OverallWarn != DefaultGateThresholds.OverallWarn {
		t.Errorf("expected default overall warn, got %f", cfg.Gates.OverallWarn)
	}
}

func TestDefinitions_AppliesWeightOverrides(t *testing.T) {
	cfg := &Config{Weights: DefaultWeights}
	cfg.Weights.Quality = 30

	defs := cfg.Definitions()
	for _, def := range defs {
		switch def.Key {
		case category.Quality:
			if def.MaxScore != 30 {
				t.Errorf("expected quality weight 30, got %f", def.MaxScore)
			}
		case category.Structure:
			if def.MaxScore != DefaultWeights.Structure {
				t.Errorf("expected default structure weight, got %f", def.MaxScore)
			}
		}
	}
	// Registration order is preserved.
	if defs[0].Key != category.Structure || defs[len(defs)-1].Key != category.Completeness {
		t.Errorf("unexpected definition order: %v", defs)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}
	if got := expandPath("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("expandPath(~/x/y) = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path should pass through, got %q", got)
	}
}
