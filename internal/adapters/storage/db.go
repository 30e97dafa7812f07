package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS goal (
		id TEXT PRIMARY KEY,
		mushaf_type TEXT NOT NULL,
		mushaf_name TEXT NOT NULL,
		total_pages INTEGER NOT NULL,
		start_page INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		target_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS progress_log (
		id TEXT PRIMARY KEY,
		page_number INTEGER NOT NULL,
		occurred_at TEXT NOT NULL,
		pages_read INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS progress_summary (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		current_page INTEGER NOT NULL,
		last_updated TEXT NOT NULL,
		total_pages_read INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_target (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		pages_needed INTEGER NOT NULL,
		pages_remaining INTEGER NOT NULL,
		days_remaining INTEGER NOT NULL,
		is_impossible INTEGER NOT NULL DEFAULT 0,
		computed_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS setting (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS milestone_sent (
		goal_id TEXT NOT NULL,
		threshold INTEGER NOT NULL,
		sent_at TEXT NOT NULL,
		PRIMARY KEY (goal_id, threshold)
	);

	CREATE INDEX IF NOT EXISTS idx_progress_log_occurred_at ON progress_log(occurred_at);
	CREATE INDEX IF NOT EXISTS idx_progress_log_page_number ON progress_log(page_number);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
