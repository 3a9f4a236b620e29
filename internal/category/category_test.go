package category

import (
	"errors"
	"testing"
)

func TestDefaultDefinitions_WeightsSumTo100(t *testing.T) {
	var total float64
	for _, def := range DefaultDefinitions() {
		if def.MaxScore <= 0 {
			t.Errorf("category %s has non-positive weight %f", def.Key, def.MaxScore)
		}
		total += def.MaxScore
	}
	if total != 100 {
		t.Errorf("expected weights to sum to 100, got %f", total)
	}
}

func TestParse_KnownCategory(t *testing.T) {
	defs := DefaultDefinitions()
	key, err := Parse("security", defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != Security {
		t.Errorf("expected %q, got %q", Security, key)
	}
}

func TestParse_NormalizesCaseAndSpace(t *testing.T) {
	defs := DefaultDefinitions()
	key, err := Parse("  Quality ", defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != Quality {
		t.Errorf("expected %q, got %q", Quality, key)
	}
}

func TestParse_UnknownCategory(t *testing.T) {
	defs := DefaultDefinitions()
	_, err := Parse("documentation", defs)
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	var unknownErr *UnknownError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected *UnknownError, got %T", err)
	}
	if unknownErr.Key != "documentation" {
		t.Errorf("expected key %q in error, got %q", "documentation", unknownErr.Key)
	}
}

func TestParseList_All(t *testing.T) {
	defs := DefaultDefinitions()
	for _, raw := range []string{"all", "ALL", ""} {
		keys, err := ParseList(raw, defs)
		if err != nil {
			t.Fatalf("ParseList(%q): unexpected error: %v", raw, err)
		}
		if len(keys) != len(defs) {
			t.Errorf("ParseList(%q): expected %d keys, got %d", raw, len(defs), len(keys))
		}
	}
}

func TestParseList_SubsetKeepsRegistrationOrder(t *testing.T) {
	defs := DefaultDefinitions()
	// Request out of registration order.
	keys, err := ParseList("testing,structure", defs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0] != Structure || keys[1] != Testing {
		t.Errorf("expected [structure testing], got %v", keys)
	}
}

func TestParseList_UnknownAborts(t *testing.T) {
	defs := DefaultDefinitions()
	_, err := ParseList("quality,nope,testing", defs)
	if err == nil {
		t.Fatal("expected error for unknown category in list")
	}
}
