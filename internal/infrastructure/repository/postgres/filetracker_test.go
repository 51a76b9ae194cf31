package postgres

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
)

func newTrackerWithMock(t *testing.T) (*FileTracker, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock: %v", err)
	}
	return NewFileTracker(db), mock, func() { _ = db.Close() }
}

func TestEnsureSchemaLocksAndApplies(t *testing.T) {
	tracker, mock, closer := newTrackerWithMock(t)
	defer closer()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
		WithArgs(trackerSchemaLockID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS file_tracker`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := tracker.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("expected schema apply to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlreadyProcessedCountsTerminalStatuses(t *testing.T) {
	tracker, mock, closer := newTrackerWithMock(t)
	defer closer()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("audit.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	processed, err := tracker.AlreadyProcessed(context.Background(), "audit.pdf")
	if err != nil {
		t.Fatalf("expected check to succeed, got %v", err)
	}
	if !processed {
		t.Fatal("expected file to count as processed")
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("fresh.pdf").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	processed, err = tracker.AlreadyProcessed(context.Background(), "fresh.pdf")
	if err != nil {
		t.Fatalf("expected check to succeed, got %v", err)
	}
	if processed {
		t.Fatal("expected fresh file to count as unprocessed")
	}
}

func TestAlreadyProcessedPropagatesQueryError(t *testing.T) {
	tracker, mock, closer := newTrackerWithMock(t)
	defer closer()

	queryErr := errors.New("connection refused")
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("audit.pdf").
		WillReturnError(queryErr)

	_, err := tracker.AlreadyProcessed(context.Background(), "audit.pdf")
	if !errors.Is(err, queryErr) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestRecordFileStatusStoresSectionFailures(t *testing.T) {
	tracker, mock, closer := newTrackerWithMock(t)
	defer closer()

	mock.ExpectExec(`INSERT INTO file_tracker`).
		WithArgs("run-1", "audit.pdf", "PARTIAL", int64(42), "failed sections: hotel_journal, no_show").
		WillReturnResult(sqlmock.NewResult(1, 1))

	outcome := domain.FileOutcome{
		Filename:       "audit.pdf",
		Status:         domain.StatusPartial,
		RowsLoaded:     42,
		FailedSections: []string{"hotel_journal", "no_show"},
	}
	if err := tracker.RecordFileStatus(context.Background(), "run-1", outcome); err != nil {
		t.Fatalf("expected record to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordFileStatusNullErrorOnSuccess(t *testing.T) {
	tracker, mock, closer := newTrackerWithMock(t)
	defer closer()

	mock.ExpectExec(`INSERT INTO file_tracker`).
		WithArgs("run-1", "audit.pdf", "SUCCESS", int64(42), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	outcome := domain.FileOutcome{
		Filename:   "audit.pdf",
		Status:     domain.StatusSuccess,
		RowsLoaded: 42,
	}
	if err := tracker.RecordFileStatus(context.Background(), "run-1", outcome); err != nil {
		t.Fatalf("expected record to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
