package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table and column names shared by the schema and the query builders.
const (
	tableResults = "results"

	colID             = "id"
	colSequence       = "sequence"
	colTimestamp      = "timestamp"
	colStudentID      = "student_id"
	colTestID         = "test_id"
	colRank           = "rank"
	colSublevel       = "sublevel"
	colAnswers        = "answers"
	colAnswerCount    = "answer_count"
	colClientRank     = "client_rank"
	colClientSublevel = "client_sublevel"
	colReconciled     = "reconciled"
	colSource         = "source"
)

var resultColumns = []string{
	colID,
	colSequence,
	colTimestamp,
	colStudentID,
	colTestID,
	colRank,
	colSublevel,
	colAnswers,
	colAnswerCount,
	colClientRank,
	colClientSublevel,
	colReconciled,
	colSource,
}

// schemaStatements creates the results table. Timestamps are stored as Unix
// nanoseconds so range filters compare numerically.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		student_id TEXT NOT NULL,
		test_id TEXT NOT NULL DEFAULT '',
		rank INTEGER NOT NULL,
		sublevel INTEGER NOT NULL,
		answers TEXT NOT NULL,
		answer_count INTEGER NOT NULL,
		client_rank INTEGER,
		client_sublevel INTEGER,
		reconciled INTEGER NOT NULL DEFAULT 1,
		source TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS results_student_id ON results (student_id)`,
	`CREATE INDEX IF NOT EXISTS results_timestamp ON results (timestamp)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
