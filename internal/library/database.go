// Package library persists generated series and their posts to a dedicated
// sqlite database, separate from the read-only corpus databases.
package library

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens the library database at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite); cascade delete of
	// posts depends on it.
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the library tables. It is idempotent and can be run
// multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS series_library (
			series_id TEXT PRIMARY KEY,
			series_title TEXT NOT NULL,
			topic TEXT,
			num_posts INTEGER,
			audience TEXT,
			style TEXT,
			post_length TEXT,
			date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
			source_corpora TEXT,
			total_words INTEGER,
			total_cost REAL,
			status TEXT DEFAULT 'draft',
			tags TEXT,
			notes TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS posts (
			post_id TEXT PRIMARY KEY,
			series_id TEXT NOT NULL,
			post_number INTEGER NOT NULL,
			post_title TEXT,
			html_content TEXT,
			markdown_content TEXT,
			word_count INTEGER,
			sources_used TEXT,
			date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (series_id) REFERENCES series_library(series_id) ON DELETE CASCADE
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
