package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at     TEXT NOT NULL,
			project      TEXT NOT NULL,
			project_type TEXT NOT NULL,
			app_version  TEXT NOT NULL,
			score        REAL NOT NULL,
			max_score    REAL NOT NULL,
			percentage   INTEGER NOT NULL,
			grade        TEXT NOT NULL,
			has_errors   BOOLEAN NOT NULL DEFAULT false
		)`,

		`CREATE TABLE IF NOT EXISTS category_scores (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
			category    TEXT NOT NULL,
			score       REAL NOT NULL,
			max_score   REAL NOT NULL,
			percentage  INTEGER NOT NULL,
			grade       TEXT NOT NULL,
			issue_count INTEGER NOT NULL DEFAULT 0,
			error       TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS gate_results (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
			name        TEXT NOT NULL,
			scope       TEXT NOT NULL,
			score       REAL NOT NULL,
			threshold   REAL NOT NULL,
			passed      BOOLEAN NOT NULL,
			warning     BOOLEAN NOT NULL DEFAULT false,
			blocking    BOOLEAN NOT NULL DEFAULT false
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_category_scores_snapshot ON category_scores(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gate_results_snapshot ON gate_results(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
