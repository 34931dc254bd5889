package db

import (
	"database/sql"
	"fmt"

	"github.com/examtools/quizshuffle/utils"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

// InitDB opens the run archive, creating the schema on first use.
func InitDB(dbPath string) (*DB, error) {
	utils.LogStartup("Initializing run archive at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		utils.LogError("Failed to open archive: %v", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		utils.LogError("Failed to ping archive: %v", err)
		return nil, err
	}

	if err := createTables(db); err != nil {
		utils.LogError("Failed to create archive tables: %v", err)
		return nil, err
	}

	utils.LogStartup("Run archive ready")
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		// One row per generation run
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source_file TEXT NOT NULL,
			source_digest TEXT NOT NULL,
			question_count INTEGER NOT NULL,
			multiple_choice INTEGER NOT NULL,
			true_false INTEGER NOT NULL,
			num_versions INTEGER NOT NULL,
			shuffle_questions BOOLEAN NOT NULL,
			shuffle_alternatives BOOLEAN NOT NULL,
			max_consecutive INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// One row per written version file
		`CREATE TABLE IF NOT EXISTS versions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			filename TEXT NOT NULL,
			answer_key TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
	}

	for i, query := range queries {
		utils.LogDB("Creating table %d/%d", i+1, len(queries))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_runs_source_file ON runs(source_file)",
		"CREATE INDEX IF NOT EXISTS idx_versions_run_id ON versions(run_id)",
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			utils.LogDB("Failed to create index (non-fatal): %v", err)
		}
	}

	return nil
}
