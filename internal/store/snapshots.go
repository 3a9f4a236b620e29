package store

import (
	"database/sql"
	"time"
)

// SaveSnapshot inserts a new scoring run and returns its ID.
func (db *DB) SaveSnapshot(s *Snapshot) (int64, error) {
	takenAt := s.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}
	result, err := db.conn.Exec(
		`INSERT INTO snapshots
		 (taken_at, project, project_type, app_version, score, max_score, percentage, grade, has_errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		takenAt.Format(time.RFC3339), s.Project, s.ProjectType, s.AppVersion,
		s.Score, s.MaxScore, s.Percentage, s.Grade, s.HasErrors,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertCategoryScore inserts a category score for a snapshot.
func (db *DB) InsertCategoryScore(cr *CategoryRow) error {
	_, err := db.conn.Exec(
		`INSERT INTO category_scores
		 (snapshot_id, category, score, max_score, percentage, grade, issue_count, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cr.SnapshotID, cr.Category, cr.Score, cr.MaxScore,
		cr.Percentage, cr.Grade, cr.IssueCount, nullIfEmpty(cr.Err),
	)
	return err
}

// InsertGateResult inserts a gate result for a snapshot.
func (db *DB) InsertGateResult(gr *GateRow) error {
	_, err := db.conn.Exec(
		`INSERT INTO gate_results
		 (snapshot_id, name, scope, score, threshold, passed, warning, blocking)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		gr.SnapshotID, gr.Name, gr.Scope, gr.Score, gr.Threshold,
		gr.Passed, gr.Warning, gr.Blocking,
	)
	return err
}

// GetLatestSnapshot returns the most recent snapshot for a project, or nil
// if none exist.
func (db *DB) GetLatestSnapshot(project string) (*Snapshot, error) {
	row := db.conn.QueryRow(
		snapshotSelect+" WHERE project = ? ORDER BY id DESC LIMIT 1", project)
	return scanSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot for a project
// (1 = latest, 2 = previous, etc.).
func (db *DB) GetSnapshotN(project string, n int) (*Snapshot, error) {
	row := db.conn.QueryRow(
		snapshotSelect+" WHERE project = ? ORDER BY id DESC LIMIT 1 OFFSET ?",
		project, n-1)
	return scanSnapshot(row)
}

// ListSnapshots returns up to limit most recent snapshots for a project,
// newest first.
func (db *DB) ListSnapshots(project string, limit int) ([]Snapshot, error) {
	rows, err := db.conn.Query(
		snapshotSelect+" WHERE project = ? ORDER BY id DESC LIMIT ?",
		project, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var takenAt string
		if err := rows.Scan(&s.ID, &takenAt, &s.Project, &s.ProjectType, &s.AppVersion,
			&s.Score, &s.MaxScore, &s.Percentage, &s.Grade, &s.HasErrors); err != nil {
			return nil, err
		}
		s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// GetCategoryScores returns all category scores for a snapshot.
func (db *DB) GetCategoryScores(snapshotID int64) ([]CategoryRow, error) {
	rows, err := db.conn.Query(
		`SELECT id, snapshot_id, category, score, max_score, percentage, grade, issue_count, error
		 FROM category_scores WHERE snapshot_id = ?`,
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scores []CategoryRow
	for rows.Next() {
		var cr CategoryRow
		var errStr sql.NullString
		if err := rows.Scan(&cr.ID, &cr.SnapshotID, &cr.Category, &cr.Score,
			&cr.MaxScore, &cr.Percentage, &cr.Grade, &cr.IssueCount, &errStr); err != nil {
			return nil, err
		}
		cr.Err = errStr.String
		scores = append(scores, cr)
	}
	return scores, rows.Err()
}

// Diff compares the two most recent snapshots for a project and returns
// per-category deltas. A nil Previous means there is nothing to compare.
func (db *DB) Diff(project string) (*SnapshotDiff, error) {
	current, err := db.GetSnapshotN(project, 1)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	diff := &SnapshotDiff{Current: current}
	previous, err := db.GetSnapshotN(project, 2)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return diff, nil
	}
	diff.Previous = previous

	currScores, err := db.GetCategoryScores(current.ID)
	if err != nil {
		return nil, err
	}
	prevScores, err := db.GetCategoryScores(previous.ID)
	if err != nil {
		return nil, err
	}

	prevByCategory := make(map[string]float64, len(prevScores))
	for _, cr := range prevScores {
		prevByCategory[cr.Category] = cr.Score
	}
	for _, cr := range currScores {
		prev := prevByCategory[cr.Category]
		diff.Deltas = append(diff.Deltas, CategoryDelta{
			Category: cr.Category,
			Previous: prev,
			Current:  cr.Score,
			Delta:    cr.Score - prev,
		})
	}
	return diff, nil
}

const snapshotSelect = `SELECT id, taken_at, project, project_type, app_version,
	score, max_score, percentage, grade, has_errors FROM snapshots`

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.Project, &s.ProjectType, &s.AppVersion,
		&s.Score, &s.MaxScore, &s.Percentage, &s.Grade, &s.HasErrors)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
