// Package category defines the closed set of quality categories and their weights.
// It has no dependencies on other internal packages so every layer of the
// pipeline can share these types.
package category

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies one weighted quality category.
type Key string

// The full category set. Weights across the default definitions sum to 100.
const (
	Structure    Key = "structure"
	Quality      Key = "quality"
	Performance  Key = "performance"
	Testing      Key = "testing"
	Security     Key = "security"
	DevExp       Key = "devexp"
	Completeness Key = "completeness"
)

// Definition describes one category: its key, display name, and the maximum
// points (weight) it contributes to the overall score.
type Definition struct {
	Key      Key     `json:"key"`
	Name     string  `json:"name"`
	MaxScore float64 `json:"max_score"`
}

// DefaultDefinitions returns the standard category set in registration order.
// The order is stable so downstream output is deterministic.
func DefaultDefinitions() []Definition {
	return []Definition{
		{Key: Structure, Name: "Project Structure", MaxScore: 20},
		{Key: Quality, Name: "Code Quality", MaxScore: 20},
		{Key: Performance, Name: "Performance", MaxScore: 15},
		{Key: Testing, Name: "Testing", MaxScore: 15},
		{Key: Security, Name: "Security", MaxScore: 15},
		{Key: DevExp, Name: "Developer Experience", MaxScore: 10},
		{Key: Completeness, Name: "Completeness", MaxScore: 5},
	}
}

// UnknownError reports a requested category that is not registered.
type UnknownError struct {
	Key   string
	Known []Key
}

func (e *UnknownError) Error() string {
	known := make([]string, len(e.Known))
	for i, k := range e.Known {
		known[i] = string(k)
	}
	sort.Strings(known)
	return fmt.Sprintf("unknown category %q (known: %s)", e.Key, strings.Join(known, ", "))
}

// Parse validates a raw category name against the known set.
func Parse(raw string, known []Definition) (Key, error) {
	normalized := Key(strings.ToLower(strings.TrimSpace(raw)))
	for _, def := range known {
		if def.Key == normalized {
			return def.Key, nil
		}
	}
	keys := make([]Key, len(known))
	for i, def := range known {
		keys[i] = def.Key
	}
	return "", &UnknownError{Key: raw, Known: keys}
}

// ParseList validates a comma-separated category list. The literal "all" (or
// an empty string) selects every known category. Order of the returned keys
// follows registration order, not request order, so output stays stable.
func ParseList(raw string, known []Definition) ([]Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		keys := make([]Key, len(known))
		for i, def := range known {
			keys[i] = def.Key
		}
		return keys, nil
	}

	requested := make(map[Key]bool)
	for _, part := range strings.Split(raw, ",") {
		key, err := Parse(part, known)
		if err != nil {
			return nil, err
		}
		requested[key] = true
	}

	var keys []Key
	for _, def := range known {
		if requested[def.Key] {
			keys = append(keys, def.Key)
		}
	}
	return keys, nil
}

// Find returns the definition for a key, or false if it is not registered.
func Find(key Key, defs []Definition) (Definition, bool) {
	for _, def := range defs {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}
