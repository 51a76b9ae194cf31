package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/hotelops/nightaudit-etl/internal/core/domain"
	"github.com/hotelops/nightaudit-etl/internal/infrastructure/resilience"
)

func newStoreWithMock(t *testing.T, executor *resilience.Executor) (*RowStore, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock: %v", err)
	}
	store := NewRowStore(db, executor)
	return store, mock, func() { _ = db.Close() }
}

func agingRows() *domain.RowSet {
	rows := domain.NewRowSet("account", "total")
	rows.Append("DIRECT BILL", 1250.0)
	rows.Append("GROUP MASTER", nil)
	return rows
}

func TestInsertRowsCommitsBatch(t *testing.T) {
	store, mock, closer := newStoreWithMock(t, nil)
	defer closer()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO "ar_aging"`)
	prep.ExpectExec().
		WithArgs("DIRECT BILL", 1250.0, "audit.pdf", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("GROUP MASTER", nil, "audit.pdf", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.InsertRows(context.Background(), "ar_aging", agingRows(), "audit.pdf"); err != nil {
		t.Fatalf("expected insert to succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertRowsEmptySetIsNoop(t *testing.T) {
	store, mock, closer := newStoreWithMock(t, nil)
	defer closer()

	if err := store.InsertRows(context.Background(), "ar_aging", domain.NewRowSet("account"), "audit.pdf"); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertRowsRejectsBadIdentifiers(t *testing.T) {
	store, _, closer := newStoreWithMock(t, nil)
	defer closer()

	rows := domain.NewRowSet("account")
	rows.Append("DIRECT BILL")

	err := store.InsertRows(context.Background(), `ar_aging; DROP TABLE file_tracker`, rows, "audit.pdf")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for table name, got %v", err)
	}

	bad := domain.NewRowSet(`total"`)
	bad.Append(1.0)
	err = store.InsertRows(context.Background(), "ar_aging", bad, "audit.pdf")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for column name, got %v", err)
	}
}

func TestInsertRowsRollsBackFailedExec(t *testing.T) {
	store, mock, closer := newStoreWithMock(t, nil)
	defer closer()

	execErr := errors.New("connection reset")
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO "ar_aging"`)
	prep.ExpectExec().
		WithArgs("DIRECT BILL", 1250.0, "audit.pdf", sqlmock.AnyArg()).
		WillReturnError(execErr)
	mock.ExpectRollback()

	err := store.InsertRows(context.Background(), "ar_aging", agingRows(), "audit.pdf")
	if !errors.Is(err, execErr) {
		t.Fatalf("expected exec error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertRowsRetriesTransientFailure(t *testing.T) {
	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		RetryMultiplier:     1.0,
		BreakerEnabled:      false,
	})
	store, mock, closer := newStoreWithMock(t, executor)
	defer closer()

	mock.ExpectBegin().WillReturnError(errors.New("server restarting"))

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO "ar_aging"`)
	prep.ExpectExec().
		WithArgs("DIRECT BILL", 1250.0, "audit.pdf", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("GROUP MASTER", nil, "audit.pdf", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.InsertRows(context.Background(), "ar_aging", agingRows(), "audit.pdf"); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
