package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

const trackerSchemaLockID int64 = 2026090101

// FileTracker records one row per processed report in file_tracker and
// answers the idempotency check before a file is opened. A file counts
// as processed only when a prior run finished SUCCESS or PARTIAL, so
// failed loads are always retried.
type FileTracker struct {
	db *sql.DB
}

func NewFileTracker(db *sql.DB) *FileTracker {
	return &FileTracker{db: db}
}

func (t *FileTracker) EnsureSchema(ctx context.Context) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, trackerSchemaLockID); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS file_tracker (
    id            BIGSERIAL PRIMARY KEY,
    run_id        TEXT        NOT NULL,
    source_file   TEXT        NOT NULL,
    load_date     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    status        TEXT        NOT NULL,
    rows_loaded   BIGINT      NOT NULL DEFAULT 0,
    error_message TEXT
);
CREATE INDEX IF NOT EXISTS idx_file_tracker_source_status
    ON file_tracker (source_file, status);
`
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("apply file_tracker schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (t *FileTracker) AlreadyProcessed(ctx context.Context, filename string) (bool, error) {
	const query = `
SELECT COUNT(*)
FROM file_tracker
WHERE source_file = $1 AND status IN ('SUCCESS', 'PARTIAL')
`
	var count int64
	if err := t.db.QueryRowContext(ctx, query, filename).Scan(&count); err != nil {
		return false, fmt.Errorf("check file tracker: %w", err)
	}
	return count > 0, nil
}

func (t *FileTracker) RecordFileStatus(ctx context.Context, runID string, outcome domain.FileOutcome) error {
	const query = `
INSERT INTO file_tracker (run_id, source_file, load_date, status, rows_loaded, error_message)
VALUES ($1, $2, NOW(), $3, $4, $5)
`
	var errMsg sql.NullString
	if msg := outcome.ErrorSummary(); msg != "" {
		errMsg = sql.NullString{String: msg, Valid: true}
	}

	_, err := t.db.ExecContext(ctx, query,
		runID, outcome.Filename, string(outcome.Status), int64(outcome.RowsLoaded), errMsg,
	)
	if err != nil {
		return fmt.Errorf("record file status: %w", err)
	}
	return nil
}
