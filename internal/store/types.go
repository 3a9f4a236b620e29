// Package store provides SQLite database access for scorecard run history.
package store

import "time"

// Snapshot represents one persisted scoring run.
type Snapshot struct {
	ID          int64     `json:"id"`
	TakenAt     time.Time `json:"taken_at"`
	Project     string    `json:"project"`
	ProjectType string    `json:"project_type"`
	AppVersion  string    `json:"app_version"`
	Score       float64   `json:"score"`
	MaxScore    float64   `json:"max_score"`
	Percentage  int       `json:"percentage"`
	Grade       string    `json:"grade"`
	HasErrors   bool      `json:"has_errors"`
}

// CategoryRow represents one category's score within a snapshot.
type CategoryRow struct {
	ID         int64   `json:"id"`
	SnapshotID int64   `json:"snapshot_id"`
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage int     `json:"percentage"`
	Grade      string  `json:"grade"`
	IssueCount int     `json:"issue_count"`
	Err        string  `json:"error,omitempty"`
}

// GateRow represents one gate result within a snapshot.
type GateRow struct {
	ID         int64   `json:"id"`
	SnapshotID int64   `json:"snapshot_id"`
	Name       string  `json:"name"`
	Scope      string  `json:"scope"`
	Score      float64 `json:"score"`
	Threshold  float64 `json:"threshold"`
	Passed     bool    `json:"passed"`
	Warning    bool    `json:"warning"`
	Blocking   bool    `json:"blocking"`
}

// SnapshotDiff represents the comparison between two scoring runs.
type SnapshotDiff struct {
	Previous *Snapshot       `json:"previous"`
	Current  *Snapshot       `json:"current"`
	Deltas   []CategoryDelta `json:"deltas"`
}

// CategoryDelta represents the change in one category between runs.
type CategoryDelta struct {
	Category string  `json:"category"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Delta    float64 `json:"delta"`
}
