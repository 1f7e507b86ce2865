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

	// Create tables. Registration uniqueness per (student, event) is
	// deliberately NOT a constraint here: the workflow performs a
	// pre-insert existence check and owns that rule.
	schema := `
	CREATE TABLE IF NOT EXISTS student (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		section TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL DEFAULT 0,
		poster TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'Other',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS registration (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		FOREIGN KEY (student_id) REFERENCES student(id),
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE INDEX IF NOT EXISTS idx_registration_student ON registration(student_id);
	CREATE INDEX IF NOT EXISTS idx_registration_event ON registration(event_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
