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
		// One row per app per day. The unique pair is the journal's
		// core guarantee: logging the same app twice on a day is a
		// correction, not a second entry.
		`CREATE TABLE IF NOT EXISTS usage_records (
			id            TEXT PRIMARY KEY,
			app_name      TEXT NOT NULL,
			minutes_spent REAL NOT NULL,
			date          TEXT NOT NULL,
			created_at    TEXT,
			intention     TEXT,
			found_it      TEXT NOT NULL DEFAULT 'unknown',
			logged_at     TEXT NOT NULL,
			UNIQUE(app_name, date)
		)`,

		`CREATE TABLE IF NOT EXISTS score_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at      TEXT NOT NULL,
			period_days   INTEGER NOT NULL,
			total_minutes REAL NOT NULL,
			days_active   INTEGER NOT NULL,
			risk_score    INTEGER NOT NULL,
			risk_level    TEXT NOT NULL,
			honesty_score INTEGER NOT NULL,
			regret_score  INTEGER NOT NULL,
			regret_level  TEXT NOT NULL,
			version       TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_usage_records_date ON usage_records(date)`,
		`CREATE INDEX IF NOT EXISTS idx_usage_records_app ON usage_records(app_name)`,
		`CREATE INDEX IF NOT EXISTS idx_score_snapshots_taken ON score_snapshots(taken_at)`,
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
