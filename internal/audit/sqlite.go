package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS screening_records (
	application_id TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL,
	status         TEXT NOT NULL,
	payload        TEXT NOT NULL,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
)`

// SQLiteSink persists screening records in a single-file sqlite database,
// one row per application.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (and if necessary creates) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, createTableStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("create screening_records table: %w", err)
	}

	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Write upserts the record for its application. The original created_at is
// preserved across rewrites.
func (s *SQLiteSink) Write(ctx context.Context, record Record) error {
	if record.ApplicationID == "" {
		return fmt.Errorf("record application id is required")
	}

	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	// On a rewrite the payload carries the original created_at, matching the
	// column the upsert leaves untouched.
	var existing string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM screening_records WHERE application_id = ?`,
		record.ApplicationID,
	).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("read existing screening record: %w", err)
	default:
		if t, perr := time.Parse(time.RFC3339Nano, existing); perr == nil {
			record.CreatedAt = t
		}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO screening_records (application_id, run_id, status, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(application_id) DO UPDATE SET
			run_id = excluded.run_id,
			status = excluded.status,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		record.ApplicationID,
		record.RunID,
		record.Status,
		string(payload),
		record.CreatedAt.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write screening record: %w", err)
	}

	return nil
}

func (s *SQLiteSink) Get(ctx context.Context, applicationID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at, updated_at FROM screening_records WHERE application_id = ?`,
		applicationID,
	)

	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *SQLiteSink) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload, created_at, updated_at FROM screening_records ORDER BY application_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list screening records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

func scanRecord(scan func(dest ...any) error) (*Record, error) {
	var payload, createdAt, updatedAt string
	if err := scan(&payload, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("unmarshal record payload: %w", err)
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		record.UpdatedAt = t
	}

	return &record, nil
}
