package db

import (
	"encoding/json"
	"time"

	"github.com/examtools/quizshuffle/models"
	"github.com/examtools/quizshuffle/utils"
)

// RecordRun stores a completed generation run and its version rows in a
// single transaction.
func (db *DB) RecordRun(run models.RunRecord, versions []models.VersionRecord) error {
	utils.LogDB("Recording run %s (%d versions)", run.ID, len(versions))
	start := time.Now()

	tx, err := db.Begin()
	if err != nil {
		utils.LogError("Failed to start transaction: %v", err)
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, source_file, source_digest, question_count, multiple_choice, true_false,
		                  num_versions, shuffle_questions, shuffle_alternatives, max_consecutive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourceFile, run.SourceDigest, run.QuestionCount, run.MultipleChoice, run.TrueFalse,
		run.NumVersions, run.ShuffleQuestions, run.ShuffleAlternatives, run.MaxConsecutive)
	if err != nil {
		utils.LogError("Failed to insert run: %v", err)
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO versions (run_id, filename, answer_key) VALUES (?, ?, ?)")
	if err != nil {
		utils.LogError("Failed to prepare statement: %v", err)
		return err
	}
	defer stmt.Close()

	for _, v := range versions {
		keyJSON, err := json.Marshal(v.Key)
		if err != nil {
			utils.LogError("Failed to marshal answer key for %s: %v", v.File, err)
			return err
		}
		if _, err := stmt.Exec(run.ID, v.File, string(keyJSON)); err != nil {
			utils.LogError("Failed to insert version %s: %v", v.File, err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		return err
	}

	utils.LogDB("Run %s recorded in %v", run.ID, time.Since(start))
	return nil
}

// RecentRuns returns the latest archived runs, newest first, each with its
// stored version count.
func (db *DB) RecentRuns(limit int) ([]models.RunSummary, error) {
	utils.LogDB("Listing up to %d recent runs", limit)
	start := time.Now()

	rows, err := db.Query(`
		SELECT r.id, r.source_file, r.source_digest, r.question_count, r.multiple_choice, r.true_false,
		       r.num_versions, r.shuffle_questions, r.shuffle_alternatives, r.max_consecutive, r.created_at,
		       COUNT(v.id) AS version_count
		FROM runs r
		LEFT JOIN versions v ON v.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		utils.LogError("RecentRuns query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	var summaries []models.RunSummary
	for rows.Next() {
		var s models.RunSummary
		err := rows.Scan(&s.ID, &s.SourceFile, &s.SourceDigest, &s.QuestionCount, &s.MultipleChoice,
			&s.TrueFalse, &s.NumVersions, &s.ShuffleQuestions, &s.ShuffleAlternatives,
			&s.MaxConsecutive, &s.CreatedAt, &s.VersionCount)
		if err != nil {
			utils.LogError("Failed to scan run row: %v", err)
			return nil, err
		}
		summaries = append(summaries, s)
	}

	utils.LogDB("RecentRuns completed: %d runs in %v", len(summaries), time.Since(start))
	return summaries, nil
}

// VersionsForRun returns the version rows of one archived run in insertion
// order.
func (db *DB) VersionsForRun(runID string) ([]models.VersionRecord, error) {
	rows, err := db.Query("SELECT filename, answer_key FROM versions WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		utils.LogError("VersionsForRun(%s) query failed: %v", runID, err)
		return nil, err
	}
	defer rows.Close()

	var versions []models.VersionRecord
	for rows.Next() {
		var v models.VersionRecord
		var keyJSON string
		if err := rows.Scan(&v.File, &keyJSON); err != nil {
			utils.LogError("Failed to scan version row: %v", err)
			return nil, err
		}
		if keyJSON != "" {
			json.Unmarshal([]byte(keyJSON), &v.Key)
		}
		versions = append(versions, v)
	}

	return versions, nil
}
