// Package store persists collected answer records. It provides a
// SQLite-backed store for incremental collection runs and a JSON
// loader for result files produced by earlier collection tooling.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/brandscope/brandscope/internal/domain"
	"github.com/brandscope/brandscope/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS answers (
	task        TEXT NOT NULL,
	question_id TEXT NOT NULL,
	category    TEXT NOT NULL,
	question    TEXT,
	model_name  TEXT NOT NULL,
	answer      TEXT,
	refs        TEXT,
	collected_at TIMESTAMP,
	PRIMARY KEY (task, question_id, model_name)
);
CREATE INDEX IF NOT EXISTS idx_answers_task ON answers(task);
`

// SQLiteStore persists answer records in a SQLite database. The
// primary key on (task, question_id, model_name) makes saves
// idempotent: re-collecting a question replaces the earlier answer.
type SQLiteStore struct {
	db *sql.DB
}

var _ ports.ResultStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and ensures
// the schema exists. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveAnswers upserts the records for the task in a single
// transaction.
func (s *SQLiteStore) SaveAnswers(ctx context.Context, task string, records []domain.AnswerRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO answers (task, question_id, category, question, model_name, answer, refs, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (task, question_id, model_name) DO UPDATE SET
			category = excluded.category,
			question = excluded.question,
			answer = excluded.answer,
			refs = excluded.refs,
			collected_at = excluded.collected_at`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		refs, err := json.Marshal(record.Response.References)
		if err != nil {
			return fmt.Errorf("encoding references for %s: %w", record.QuestionID, err)
		}

		if _, err := stmt.ExecContext(ctx,
			task,
			record.QuestionID,
			record.Category,
			record.Question,
			record.ModelName,
			record.Response.Answer,
			string(refs),
			record.CollectedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("inserting answer %s: %w", record.QuestionID, err)
		}
	}

	return tx.Commit()
}

// LoadAnswers returns every record stored for the task.
func (s *SQLiteStore) LoadAnswers(ctx context.Context, task string) ([]domain.AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, category, question, model_name, answer, refs, collected_at
		FROM answers WHERE task = ?`, task)
	if err != nil {
		return nil, fmt.Errorf("querying answers: %w", err)
	}
	defer rows.Close()

	var records []domain.AnswerRecord
	for rows.Next() {
		var record domain.AnswerRecord
		var refs, collectedAt string

		if err := rows.Scan(
			&record.QuestionID,
			&record.Category,
			&record.Question,
			&record.ModelName,
			&record.Response.Answer,
			&refs,
			&collectedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning answer row: %w", err)
		}

		if refs != "" && refs != "null" {
			if err := json.Unmarshal([]byte(refs), &record.Response.References); err != nil {
				return nil, fmt.Errorf("decoding references for %s: %w", record.QuestionID, err)
			}
		}
		if collectedAt != "" {
			if ts, err := time.Parse(time.RFC3339Nano, collectedAt); err == nil {
				record.CollectedAt = ts
			}
		}

		records = append(records, record)
	}
	return records, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
